package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/sprite2d/common"
	"github.com/milk9111/sprite2d/ecs"
	"github.com/milk9111/sprite2d/ecs/system"
	"github.com/milk9111/sprite2d/logging"
	"github.com/milk9111/sprite2d/physics"
	"github.com/milk9111/sprite2d/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const overlayLineHeight = 14

// Config is the demo's command-line configuration.
type Config struct {
	Scene        string
	Debug        bool
	GridCell     float64
	Workers      int
	ExactCircles bool
	ApplyScale   bool
}

func (c Config) scalePolicy() physics.ScalePolicy {
	if c.ApplyScale {
		return physics.ApplyScale
	}
	return physics.IgnoreScale
}

func (c Config) scannerOptions(log *zap.Logger) []physics.Option {
	opts := []physics.Option{
		physics.WithScalePolicy(c.scalePolicy()),
		physics.WithWorkers(c.Workers),
		physics.WithLogger(log),
	}
	if c.GridCell > 0 {
		opts = append(opts, physics.WithBroadphase(physics.Grid(c.GridCell)))
	}
	if c.ExactCircles {
		opts = append(opts, physics.WithCircleMode(physics.CircleExact))
	}
	return opts
}

// scene is one loaded scene spec and the schedule that runs it.
type scene struct {
	name  string
	world *ecs.World
	sched *ecs.Scheduler
}

type Game struct {
	cfg Config
	log *zap.Logger

	scene      *scene
	collisions *system.CollisionSystem
	eventLog   *system.EventLogSystem
	watcher    *prefabs.Watcher

	pauseUI *ebitenui.UI
	paused  bool
	face    text.Face
	status  string
	frames  int
}

func NewGame(cfg Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = logging.New(cfg.Debug)
	}
	scanner := physics.NewScanner(cfg.scannerOptions(logging.Named(log, "scanner"))...)
	g := &Game{
		cfg:        cfg,
		log:        log,
		collisions: system.NewCollisionSystem(scanner, logging.Named(log, "collision")),
		eventLog:   system.NewEventLogSystem(0),
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
	if err := g.reload(); err != nil {
		return nil, err
	}

	watcher, err := prefabs.NewWatcher(logging.Named(log, "watch"),
		prefabs.Dir,
		filepath.Join(prefabs.Dir, "scripts"),
		filepath.Join(prefabs.Dir, "colliders"),
	)
	if err != nil {
		log.Warn("hot reload disabled", zap.Error(err))
	} else {
		g.watcher = watcher
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// loadScene builds a fresh world for the named scene spec. The collision
// and event log systems are shared across scenes.
func loadScene(name string, collisions *system.CollisionSystem, eventLog *system.EventLogSystem, log *zap.Logger) (*scene, error) {
	spec, err := prefabs.LoadScene(name)
	if err != nil {
		return nil, err
	}

	var src []byte
	if spec.Script != "" {
		src, err = prefabs.LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("scene %s: load script %s: %w", name, spec.Script, err)
		}
	}
	scripts, err := system.NewScriptSystem(src, logging.Named(log, "script"))
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}

	w := ecs.NewWorld()
	if _, err := prefabs.Build(w, spec, nil); err != nil {
		return nil, err
	}

	return &scene{
		name:  spec.Name,
		world: w,
		sched: ecs.NewScheduler(system.NewMovementSystem(), collisions, scripts, eventLog),
	}, nil
}

// reload swaps in a freshly built scene. On failure the running scene is
// kept. Contacts of the old scene end before the swap.
func (g *Game) reload() error {
	next, err := loadScene(g.cfg.Scene, g.collisions, g.eventLog, g.log)
	if err != nil {
		g.status = "reload failed: " + err.Error()
		return err
	}
	if g.scene != nil {
		g.collisions.Reset(g.scene.world)
		g.eventLog.Record(g.scene.world.Events().Drain()...)
	}
	g.scene = next
	g.status = "loaded " + next.name
	g.log.Info("scene loaded", zap.String("scene", next.name), zap.Int("entities", len(ecs.Entities(next.world))))
	return nil
}

// applyChange reacts to a prefab file changing on disk.
func (g *Game) applyChange(path string) {
	switch prefabs.Classify(path) {
	case prefabs.FileCollider:
		n, err := prefabs.ReloadColliders(g.scene.world, filepath.Base(path), nil)
		if err != nil {
			g.log.Warn("collider reload failed", zap.String("file", path), zap.Error(err))
			g.status = "collider reload failed: " + err.Error()
			return
		}
		g.log.Info("colliders reloaded", zap.String("file", path), zap.Int("entities", n))
	case prefabs.FileScene, prefabs.FileScript:
		if err := g.reload(); err != nil {
			g.log.Warn("scene reload failed", zap.String("file", path), zap.Error(err))
		}
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reload(); err != nil {
			g.log.Warn("scene reload failed", zap.Error(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.cfg.Debug = !g.cfg.Debug
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.scene.world.Update(g.scene.sched)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	system.DrawColliders(g.scene.world, screen, g.cfg.scalePolicy())

	lines := []string{
		fmt.Sprintf("Frames: %d    FPS: %.2f    Tick: %d", g.frames, ebiten.ActualFPS(), g.scene.world.Tick()),
		g.status,
	}
	if g.cfg.Debug {
		lines = append(lines, "", "events:")
		lines = append(lines, g.eventLog.Lines()...)
	}
	g.drawText(screen, strings.Join(lines, "\n"), 10, 10, color.White)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = overlayLineHeight
	text.Draw(screen, s, g.face, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
