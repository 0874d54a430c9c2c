package physics

import "github.com/milk9111/sprite2d/collider"

// Entity is the per-frame snapshot of something that may collide. Scanners
// read it and never keep it past the frame.
type Entity struct {
	Label            string
	Translation      collider.Point
	Rotation         float64
	Scale            float64
	Collider         collider.Collider
	CollisionEnabled bool
}

// ScalePolicy decides whether an entity's scale changes its collider.
type ScalePolicy uint8

const (
	// IgnoreScale keeps colliders in their authored size whatever the sprite
	// scale is.
	IgnoreScale ScalePolicy = iota
	// ApplyScale multiplies collider geometry by the entity scale.
	ApplyScale
)

func (p ScalePolicy) String() string {
	if p == ApplyScale {
		return "apply"
	}
	return "ignore"
}

// Shape resolves e to world space under policy.
func (e Entity) Shape(policy ScalePolicy) collider.Shape {
	c := e.Collider
	if policy == ApplyScale && e.Scale > 0 && e.Scale != 1 {
		c = c.Scaled(e.Scale)
	}
	return collider.Resolve(c, collider.Transform{Translation: e.Translation, Rotation: e.Rotation})
}
