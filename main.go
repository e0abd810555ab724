package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
)

func main() {
	seed := flag.Int64("seed", 0, "fixed RNG seed (0 uses the clock)")
	watch := flag.Bool("watch", false, "reload configs/ edits on restart")
	flag.Parse()

	registry, err := configs.LoadRegistry()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("starblitz")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(registry, *seed, *watch)
	if err != nil {
		log.Fatalf("start game: %v", err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
