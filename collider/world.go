package collider

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Transform places a local-space collider in the world.
type Transform struct {
	Translation Point
	Rotation    float64
}

// Shape is a collider resolved to world space for a single frame.
type Shape struct {
	Kind   Kind
	Center Point
	Radius float64
	Points []Point
	Bounds cp.BB
}

// Degenerate reports whether the shape can never take part in a collision:
// no geometry, a non-positive radius, non-finite numbers, or a polygon that
// encloses no area (fewer than three points, or all of them on one line).
func (s Shape) Degenerate() bool {
	switch s.Kind {
	case KindCircle:
		return !(s.Radius > 0) || math.IsInf(s.Radius, 0) || !finite(s.Center)
	case KindPolygon:
		if len(s.Points) < 3 {
			return true
		}
		for _, p := range s.Points {
			if !finite(p) {
				return true
			}
		}
		return CheckConvexity(s.Points) == ConvexityUnknown
	default:
		return true
	}
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// WorldPoints returns the world-space vertex list of c. A circle yields its
// center, which rotation doesn't affect. None yields nil.
func WorldPoints(c Collider, rotation float64, translation Point) []Point {
	switch c.Kind {
	case KindCircle:
		return []Point{translation}
	case KindPolygon:
		out := make([]Point, len(c.Points))
		for i, p := range c.Points {
			out[i] = Translate(Rotate(p, rotation), translation)
		}
		return out
	default:
		return nil
	}
}

// Resolve computes the world-space shape of c under t.
func Resolve(c Collider, t Transform) Shape {
	switch c.Kind {
	case KindCircle:
		return Shape{
			Kind:   KindCircle,
			Center: t.Translation,
			Radius: c.Radius,
			Bounds: cp.NewBBForCircle(t.Translation, max(c.Radius, 0)),
		}
	case KindPolygon:
		pts := WorldPoints(c, t.Rotation, t.Translation)
		return Shape{
			Kind:   KindPolygon,
			Center: t.Translation,
			Points: pts,
			Bounds: Bounds(pts),
		}
	default:
		return Shape{Kind: KindNone}
	}
}
