package system

import (
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/event"
)

// GameStateSystem owns the session ledger. It advances the frame and
// survival clocks each tick and is the only writer of score, lives, kills,
// and credits, all of which arrive as bus events from the resolver and the
// boss systems.
type GameStateSystem struct {
	unsubscribe func()
}

func NewGameStateSystem() *GameStateSystem {
	return &GameStateSystem{}
}

// Close drops the system's bus subscription. The session calls it on
// teardown.
func (s *GameStateSystem) Close() {
	if s != nil && s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *GameStateSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.unsubscribe == nil {
		if bus := w.Bus(); bus != nil {
			s.unsubscribe = bus.Subscribe(func(evt any) {
				s.apply(w, evt)
			})
		}
	}

	e, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return
	}
	gs, ok := ecs.Get[component.GameState](w, e, component.GameStateComponent.Kind())
	if !ok {
		return
	}
	gs.Frame++
	if !gs.GameOver {
		gs.SurvivalFrames++
	}
	_ = ecs.Add(w, e, component.GameStateComponent.Kind(), gs)
}

func (s *GameStateSystem) apply(w *ecs.World, evt any) {
	e, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return
	}
	gs, ok := ecs.Get[component.GameState](w, e, component.GameStateComponent.Kind())
	if !ok {
		return
	}

	switch evt := evt.(type) {
	case event.Score:
		gs.Score += evt.Points
	case event.EnemyKilled:
		gs.Kills++
	case event.Credits:
		gs.Credits += evt.Amount
	case event.LevelUp:
		gs.Level = evt.Level
	case event.LifeAwarded:
		gs.Lives++
	case event.LifeLost:
		if gs.GameOver {
			break
		}
		gs.Lives--
		if gs.Lives <= 0 {
			gs.Lives = 0
			gs.GameOver = true
			if bus := w.Bus(); bus != nil {
				bus.Publish(event.GameOver{})
			}
		}
	case event.BossDefeated:
		gs.Score += evt.Score
		// A downed boss is worth a spare life on top of its score.
		if bus := w.Bus(); bus != nil {
			bus.Publish(event.LifeAwarded{})
		}
	}

	_ = ecs.Add(w, e, component.GameStateComponent.Kind(), gs)
}
