package component

import "github.com/milk9111/sprite2d/collider"

// Collider attaches a local-space collision shape. Source is the sidecar
// file the shape came from, empty for inline shapes; hot reload uses it.
type Collider struct {
	Shape   collider.Collider
	Enabled bool
	Source  string
}

var ColliderComponent = NewNamedComponent[Collider]("collider")

// Colliding marks an entity that currently overlaps at least one other.
// The collision system keeps Count in step with Begin/End events.
type Colliding struct {
	Count int
}

var CollidingComponent = NewNamedComponent[Colliding]("colliding")
