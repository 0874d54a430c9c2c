package prefabs

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/sprite2d/collider"
	"github.com/milk9111/sprite2d/ecs"
	"github.com/milk9111/sprite2d/ecs/component"
)

const defaultEntityName = "entity"

// Build spawns every entity of the scene into w. Colliders are resolved
// before anything is created, so a bad scene leaves w untouched. load reads
// sidecar collider files; nil means LoadColliderFile.
func Build(w *ecs.World, scene SceneSpec, load func(string) ([]byte, error)) ([]ecs.Entity, error) {
	shapes := make([]collider.Collider, len(scene.Entities))
	for i, spec := range scene.Entities {
		c, err := spec.Collider.Collider(load)
		if err != nil {
			return nil, fmt.Errorf("prefabs: scene %s entity %d (%s): %w", scene.Name, i, entityName(spec), err)
		}
		shapes[i] = c
	}

	out := make([]ecs.Entity, 0, len(scene.Entities))
	for i, spec := range scene.Entities {
		e := ecs.CreateEntity(w)
		if err := addEntity(w, e, spec, shapes[i]); err != nil {
			return out, fmt.Errorf("prefabs: scene %s entity %d: %w", scene.Name, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func addEntity(w *ecs.World, e ecs.Entity, spec EntitySpec, shape collider.Collider) error {
	label := spec.Label
	if label == "" {
		label = AutoLabel(entityName(spec))
	}
	scale := spec.Transform.Scale
	if scale == 0 {
		scale = 1
	}

	if err := ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{Name: label}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.Transform.X,
		Y:        spec.Transform.Y,
		Rotation: spec.Transform.Rotation,
		Scale:    scale,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Shape:   shape,
		Enabled: !spec.Disabled,
		Source:  spec.Collider.File,
	}); err != nil {
		return err
	}
	if v := spec.Velocity; v != nil {
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: v.X, Y: v.Y, Angular: v.Angular}); err != nil {
			return err
		}
	}
	return nil
}

// AutoLabel returns a label that is unique across scene reloads.
func AutoLabel(name string) string {
	if name == "" {
		name = defaultEntityName
	}
	return name + "-" + uuid.NewString()
}

func entityName(spec EntitySpec) string {
	switch {
	case spec.Label != "":
		return spec.Label
	case spec.Name != "":
		return spec.Name
	}
	return defaultEntityName
}

// ReloadColliders re-reads the sidecar of every entity whose collider came
// from file and returns how many were replaced. Entities whose file no
// longer decodes keep their previous shape and the first error is returned.
func ReloadColliders(w *ecs.World, file string, load func(string) ([]byte, error)) (int, error) {
	want := subPath("colliders", file)
	var (
		n        int
		firstErr error
	)
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(_ ecs.Entity, c *component.Collider) {
		if c.Source == "" || subPath("colliders", c.Source) != want {
			return
		}
		shape, err := ColliderSpec{File: c.Source}.Collider(load)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		c.Shape = shape
		n++
	})
	return n, firstErr
}
