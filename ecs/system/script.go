package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/sprite2d/ecs"
	"github.com/milk9111/sprite2d/ecs/component"
	"github.com/milk9111/sprite2d/physics"
	"go.uber.org/zap"
)

// A scene script defines on_begin(engine, a, b) and on_end(engine, a, b).
// They run once per collision event with the two labels of the pair.
const collisionDispatchScript = `
if __phase == "begin" {
	on_begin(__engine, __a, __b)
} else if __phase == "end" {
	on_end(__engine, __a, __b)
}
`

// ScriptSystem runs the scene's tengo collision handlers for every event
// the collision system queued this tick.
type ScriptSystem struct {
	compiled *tengo.Compiled
	log      *zap.Logger
	index    map[string]ecs.Entity
}

// NewScriptSystem compiles src. An empty src gives a system that does
// nothing.
func NewScriptSystem(src []byte, log *zap.Logger) (*ScriptSystem, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ScriptSystem{log: log}
	if len(src) == 0 {
		return s, nil
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), collisionDispatchScript...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__a", "")
	_ = script.Add("__b", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	s.compiled = compiled
	return s, nil
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || s.compiled == nil || w == nil {
		return
	}
	events := w.Events().Items()
	if len(events) == 0 {
		return
	}
	s.index = LabelIndex(w)
	engine := s.engine(w)
	for _, ev := range events {
		if err := s.dispatch(ev.Event, engine); err != nil {
			s.log.Warn("collision script failed",
				zap.Stringer("pair", ev.Pair),
				zap.Stringer("state", ev.State),
				zap.Error(err))
		}
	}
}

func (s *ScriptSystem) dispatch(ev physics.Event, engine *tengo.ImmutableMap) error {
	if err := s.compiled.Set("__phase", ev.State.String()); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__a", ev.Pair.A); err != nil {
		return err
	}
	if err := s.compiled.Set("__b", ev.Pair.B); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *ScriptSystem) engine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.log.Info(strings.Join(parts, " "), zap.String("source", "script"))
		return tengo.UndefinedValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := lookup(s, w, args, component.TransformComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: t.X}, &tengo.Float{Value: t.Y}}}, nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		e, ok := s.entity(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		kind := component.VelocityComponent.Kind()
		if v, ok := ecs.Get(w, e, kind); ok {
			v.X, v.Y = x, y
			return tengo.TrueValue, nil
		}
		if err := ecs.Add(w, e, kind, &component.Velocity{X: x, Y: y}); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["set_enabled"] = &tengo.UserFunction{Name: "set_enabled", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		c, ok := lookup(s, w, args, component.ColliderComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		c.Enabled = !args[1].IsFalsy()
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (s *ScriptSystem) entity(label tengo.Object) (ecs.Entity, bool) {
	e, ok := s.index[objectAsString(label)]
	return e, ok
}

// lookup resolves the label in args[0] to a component of the given kind.
func lookup[T any](s *ScriptSystem, w *ecs.World, args []tengo.Object, kind component.ComponentKind[T]) (*T, bool) {
	if len(args) < 1 {
		return nil, false
	}
	e, ok := s.entity(args[0])
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, kind)
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	return obj.String()
}
