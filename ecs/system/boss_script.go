package system

import (
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
)

// bossScript is a compiled attack script. Scripts receive the boss and
// player positions, the phase, the bullet count, and the tick, and hand
// back a `shots` array of {x, y, vx, vy} maps.
type bossScript struct {
	compiled *tengo.Compiled
}

func (s *BossSystem) getScript(name string) (*bossScript, error) {
	if sc, ok := s.scripts[name]; ok {
		return sc, nil
	}

	src, err := configs.LoadScript(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("boss_x", 0.0)
	_ = script.Add("boss_y", 0.0)
	_ = script.Add("player_x", 0.0)
	_ = script.Add("player_y", 0.0)
	_ = script.Add("phase", 0)
	_ = script.Add("bullets", 0)
	_ = script.Add("tick", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	if s.scripts == nil {
		s.scripts = map[string]*bossScript{}
	}
	sc := &bossScript{compiled: compiled}
	s.scripts[name] = sc
	return sc, nil
}

func (s *BossSystem) runScriptAttack(w *ecs.World, a *component.BossAttack, rt *component.BossRuntime, t *component.Transform, projectile string, now int) {
	sc, err := s.getScript(a.Script)
	if err != nil {
		log.Printf("boss: load attack script %q: %v", a.Script, err)
		return
	}

	px, py, _ := playerPosition(w)
	c := sc.compiled
	_ = c.Set("boss_x", t.X)
	_ = c.Set("boss_y", t.Y)
	_ = c.Set("player_x", px)
	_ = c.Set("player_y", py)
	_ = c.Set("phase", rt.Phase)
	_ = c.Set("bullets", a.Bullets)
	_ = c.Set("tick", now)

	if err := c.Run(); err != nil {
		log.Printf("boss: run attack script %q: %v", a.Script, err)
		return
	}

	for _, item := range c.Get("shots").Array() {
		shot, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		x, okX := scriptFloat(shot["x"])
		y, okY := scriptFloat(shot["y"])
		vx, okVX := scriptFloat(shot["vx"])
		vy, okVY := scriptFloat(shot["vy"])
		if !okX || !okY || !okVX || !okVY {
			continue
		}
		entity.FireBullet(w, s.pools.EnemyBullets, s.registry, projectile, x, y, vx, vy)
	}
}

func scriptFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
