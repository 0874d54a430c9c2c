package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/sprite2d/collider"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoCollider        = errors.New("prefabs: collider spec is empty")
	ErrAmbiguousCollider = errors.New("prefabs: collider spec sets more than one shape")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec is a demo scene: a set of entities plus an optional tengo script
// with on_begin/on_end collision handlers.
type SceneSpec struct {
	Name     string       `yaml:"name"`
	Script   string       `yaml:"script"`
	Entities []EntitySpec `yaml:"entities"`
}

func LoadScene(filename string) (SceneSpec, error) {
	return LoadSpec[SceneSpec](filename)
}

// EntitySpec describes one entity. An empty Label is replaced with a unique
// one derived from Name.
type EntitySpec struct {
	Name      string        `yaml:"name"`
	Label     string        `yaml:"label"`
	Transform TransformSpec `yaml:"transform"`
	Velocity  *VelocitySpec `yaml:"velocity"`
	Collider  ColliderSpec  `yaml:"collider"`
	Disabled  bool          `yaml:"disabled"`
}

// TransformSpec rotation is in radians. A zero scale means 1.
type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	Scale    float64 `yaml:"scale"`
}

type VelocitySpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Angular float64 `yaml:"angular"`
}

// ColliderSpec sets exactly one of its fields. File names a sidecar under
// prefabs/colliders.
type ColliderSpec struct {
	Circle  *float64     `yaml:"circle"`
	Polygon [][2]float64 `yaml:"polygon"`
	Rect    *RectSpec    `yaml:"rect"`
	File    string       `yaml:"file"`
}

type RectSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Collider builds the described collider, reading sidecar files through
// load. The result is validated.
func (s ColliderSpec) Collider(load func(string) ([]byte, error)) (collider.Collider, error) {
	set := 0
	for _, ok := range []bool{s.Circle != nil, len(s.Polygon) > 0, s.Rect != nil, s.File != ""} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return collider.None(), ErrNoCollider
	case set > 1:
		return collider.None(), ErrAmbiguousCollider
	}

	var c collider.Collider
	switch {
	case s.Circle != nil:
		c = collider.Circle(*s.Circle)
	case s.Rect != nil:
		c = collider.Rect(s.Rect.W, s.Rect.H)
	case len(s.Polygon) > 0:
		points := make([]collider.Point, len(s.Polygon))
		for i, p := range s.Polygon {
			points[i] = collider.Pt(p[0], p[1])
		}
		c = collider.Polygon(points...)
	default:
		if load == nil {
			load = LoadColliderFile
		}
		data, err := load(s.File)
		if err != nil {
			return collider.None(), fmt.Errorf("prefabs: load collider %s: %w", s.File, err)
		}
		decoded, err := collider.Decode(data)
		if err != nil {
			return collider.None(), fmt.Errorf("prefabs: decode collider %s: %w", s.File, err)
		}
		return decoded, nil
	}

	if err := c.Validate(); err != nil {
		return collider.None(), err
	}
	return c, nil
}
