package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

var backgroundColor = color.NRGBA{R: 0x08, G: 0x08, B: 0x14, A: 0xff}

var (
	hudTextColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	hudPanelColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	hudBtnColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
)

// HUD owns the in-game status bar plus the pause and game-over overlays.
// The overlays are separate UIs so only the active one consumes input.
type HUD struct {
	game *Game

	bar      *ebitenui.UI
	pause    *ebitenui.UI
	gameOver *ebitenui.UI

	statusText *widget.Text
	statsText  *widget.Text

	clipboardOK bool
	lastStats   Stats

	// bossFrac is the live boss's health ratio, or -1 when no boss is up.
	bossFrac float64
}

func NewHUD(g *Game) *HUD {
	h := &HUD{game: g}
	h.clipboardOK = clipboard.Init() == nil

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	h.bar = h.buildBar(&face)
	h.pause = h.buildPause(&face)
	h.gameOver = h.buildGameOver(&face)
	return h
}

func (h *HUD) buildBar(face *ebtext.Face) *ebitenui.UI {
	h.statusText = widget.NewText(
		widget.TextOpts.Text("", face, hudTextColor),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Left: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(h.statusText)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (h *HUD) buildPause(face *ebtext.Face) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(hudPanelColor)
	btnImg := imageui.NewNineSliceColor(hudBtnColor)
	btnTextColor := &widget.ButtonTextColor{Idle: hudTextColor}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", face, hudTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			h.game.paused = false
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (h *HUD) buildGameOver(face *ebtext.Face) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(hudPanelColor)
	btnImg := imageui.NewNineSliceColor(hudBtnColor)
	btnTextColor := &widget.ButtonTextColor{Idle: hudTextColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Game Over", face, hudTextColor),
		widget.TextOpts.WidgetOpts(center),
	)
	h.statsText = widget.NewText(
		widget.TextOpts.Text("", face, hudTextColor),
		widget.TextOpts.WidgetOpts(center),
	)
	restartBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Restart (R)", face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			h.game.restartQueued = true
		}),
	)
	copyBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Copy Stats", face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if h.clipboardOK {
				clipboard.Write(clipboard.FmtText, []byte(h.lastStats.String()))
			}
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(h.statsText)
	panel.AddChild(restartBtn)
	panel.AddChild(copyBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// UpdateBar refreshes the status line from the session ledger.
func (h *HUD) UpdateBar(s *Session) {
	if h == nil || s == nil {
		return
	}
	gs, ok := s.State()
	if !ok {
		return
	}

	hp, maxHP := 0, 0
	if player, ok := ecs.First(s.World, component.PlayerTagComponent.Kind()); ok {
		if health, ok := ecs.Get[component.Health](s.World, player, component.HealthComponent.Kind()); ok {
			hp, maxHP = health.Current, health.Max
		}
	}
	h.statusText.Label = fmt.Sprintf("SCORE %d   HP %d/%d   LIVES %d   LV %d   $%d",
		gs.Score, hp, maxHP, gs.Lives, gs.Level, gs.Credits)

	h.bossFrac = -1
	if boss, ok := ecs.First(s.World, component.BossComponent.Kind()); ok {
		if health, ok := ecs.Get[component.Health](s.World, boss, component.HealthComponent.Kind()); ok && health.Max > 0 {
			h.bossFrac = float64(health.Current) / float64(health.Max)
			if h.bossFrac < 0 {
				h.bossFrac = 0
			}
		}
	}
	h.bar.Update()
}

// UpdatePause runs the pause overlay's input handling.
func (h *HUD) UpdatePause() {
	h.pause.Update()
}

// UpdateGameOver refreshes and runs the game-over overlay.
func (h *HUD) UpdateGameOver(stats Stats) {
	h.lastStats = stats
	h.statsText.Label = stats.String()
	h.gameOver.Update()
}

func (h *HUD) Draw(screen *ebiten.Image, paused, over bool) {
	h.bar.Draw(screen)
	h.drawBossBar(screen)
	if over {
		h.gameOver.Draw(screen)
		return
	}
	if paused {
		h.pause.Draw(screen)
	}
}

// drawBossBar renders the encounter health bar under the status line.
func (h *HUD) drawBossBar(screen *ebiten.Image) {
	if h.bossFrac < 0 {
		return
	}
	const barW, barH, barY = 300.0, 8.0, 26.0
	x := float32(common.BaseWidth-barW) / 2
	vector.DrawFilledRect(screen, x, barY, barW, barH, color.NRGBA{R: 0x40, G: 0x10, B: 0x10, A: 0xc0}, false)
	vector.DrawFilledRect(screen, x, barY, float32(barW*h.bossFrac), barH, color.NRGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}, false)
	vector.StrokeRect(screen, x, barY, barW, barH, 1, hudTextColor, false)
}
