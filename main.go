package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sprite2d/logging"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and the collider overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	scene := flag.String("scene", "demo.yaml", "scene spec in prefabs/")
	grid := flag.Float64("grid", 0, "broadphase grid cell size; 0 tests all pairs")
	workers := flag.Int("workers", 0, "goroutines for pair tests; 0 or 1 runs them inline")
	exactCircles := flag.Bool("exact-circles", false, "test circles against polygon edges, not just vertices")
	applyScale := flag.Bool("apply-scale", false, "scale colliders with their entity")
	flag.Parse()

	logger := logging.New(*debug)
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("sprite2d")

	game, err := NewGame(Config{
		Scene:        *scene,
		Debug:        *debug,
		GridCell:     *grid,
		Workers:      *workers,
		ExactCircles: *exactCircles,
		ApplyScale:   *applyScale,
	}, logger)
	if err != nil {
		logger.Error("start game", zap.Error(err))
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run game", zap.Error(err))
		os.Exit(1)
	}
}
