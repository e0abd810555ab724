package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs/system"
)

// Game drives the ebiten loop: it owns the current session, the HUD, and
// the optional config watcher. Edited configs apply on the next restart;
// the running session keeps the tables it started with.
type Game struct {
	registry *configs.Registry
	reporter Reporter
	session  *Session
	render   *system.RenderSystem
	hud      *HUD
	watcher  *configs.Watcher

	seed          int64
	run           int64
	paused        bool
	configsDirty  bool
	restartQueued bool
}

func NewGame(registry *configs.Registry, seed int64, watch bool) (*Game, error) {
	g := &Game{
		registry: registry,
		reporter: NewLogReporter(),
		render:   system.NewRenderSystem(),
		seed:     seed,
	}

	session, err := NewSession(registry, seed, g.reporter)
	if err != nil {
		return nil, err
	}
	g.session = session
	g.hud = NewHUD(g)

	if watch {
		watcher, err := configs.NewWatcher("configs", "configs/scripts")
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.session.GameOver() {
		g.paused = false
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.restartQueued = true
		}
		g.hud.UpdateGameOver(g.session.Stats())
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.paused = !g.paused
		}
		if g.paused {
			g.hud.UpdatePause()
		} else {
			g.session.World.Update()
		}
	}

	if g.restartQueued {
		g.restartQueued = false
		g.restart()
	}

	g.hud.UpdateBar(g.session)
	return nil
}

func (g *Game) restart() {
	if g.configsDirty {
		registry, err := configs.LoadRegistry()
		if err != nil {
			log.Printf("config reload failed, keeping previous tables: %v", err)
		} else {
			g.registry = registry
			log.Printf("config tables reloaded")
		}
		g.configsDirty = false
	}

	g.session.Close()
	g.run++
	session, err := NewSession(g.registry, g.seed+g.run, g.reporter)
	if err != nil {
		log.Printf("restart failed: %v", err)
		return
	}
	g.session = session
	g.paused = false
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("config changed: %s (applies on restart)", name)
			g.configsDirty = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("config watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.session.World, screen)
	g.hud.Draw(screen, g.paused, g.session.GameOver())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
