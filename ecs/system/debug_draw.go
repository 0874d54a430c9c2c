package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/sprite2d/collider"
	"github.com/milk9111/sprite2d/ecs"
	"github.com/milk9111/sprite2d/ecs/component"
	"github.com/milk9111/sprite2d/physics"
)

const debugStrokeWidth = 1.5

var (
	debugIdleColor      = color.NRGBA{R: 0x33, G: 0xff, B: 0x33, A: 0xe6}
	debugCollidingColor = color.NRGBA{R: 0xff, G: 0x33, B: 0x33, A: 0xe6}
	debugDisabledColor  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x99}
)

// DrawColliders outlines every collider in world space. Entities in contact
// are drawn red, disabled ones grey. Scale follows the scanner's policy so
// the outline matches what is tested.
func DrawColliders(w *ecs.World, screen *ebiten.Image, policy physics.ScalePolicy) {
	if w == nil || screen == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, c *component.Collider) {
			shape := physics.Entity{
				Translation: collider.Pt(t.X, t.Y),
				Rotation:    t.Rotation,
				Scale:       t.Scale,
				Collider:    c.Shape,
			}.Shape(policy)

			clr := debugIdleColor
			switch {
			case !c.Enabled:
				clr = debugDisabledColor
			case ecs.Has(w, e, component.CollidingComponent.Kind()):
				clr = debugCollidingColor
			}
			drawShape(screen, shape, clr)
		})
}

func drawShape(screen *ebiten.Image, s collider.Shape, clr color.Color) {
	if s.Degenerate() {
		return
	}
	switch s.Kind {
	case collider.KindCircle:
		vector.StrokeCircle(screen, float32(s.Center.X), float32(s.Center.Y), float32(s.Radius), debugStrokeWidth, clr, true)
	case collider.KindPolygon:
		for i := range s.Points {
			a := s.Points[i]
			b := s.Points[(i+1)%len(s.Points)]
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), debugStrokeWidth, clr, true)
		}
	}
}
