package system

import (
	"github.com/milk9111/sprite2d/ecs"
	"github.com/milk9111/sprite2d/ecs/component"
)

// MovementSystem integrates velocity into transforms once per tick.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, v *component.Velocity, t *component.Transform) {
			t.X += v.X
			t.Y += v.Y
			t.Rotation += v.Angular
		})
}
