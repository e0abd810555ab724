package common

// Base virtual resolution for the playfield. The window scales to fit.
const (
	BaseWidth  = 540
	BaseHeight = 860

	// TPS is the fixed logic tick rate all frame timers assume.
	TPS = 60
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SecondsToFrames converts a duration in seconds to logic frames at TPS.
func SecondsToFrames(s float64) int {
	f := int(s*TPS + 0.5)
	if f < 1 && s > 0 {
		return 1
	}
	return f
}
