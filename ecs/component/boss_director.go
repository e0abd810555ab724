package component

// BossDirector owns boss spawn timing and rotation across encounters.
// The first spawn uses a distinct delay from the inter-boss interval, and
// the spawner resumes only after ResumeFrame once a boss dies.
type BossDirector struct {
	NextSpawnFrame int
	Active         bool
	Order          []string
	Index          int
	ResumeFrame    int    // 0 means no pending resume
	Boss           uint64 // current boss entity, 0 when none
}

var BossDirectorComponent = NewComponent[BossDirector]()
