package collider

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ext is the extension of collider sidecar files.
const Ext = ".collider"

var ErrUnknownFormat = errors.New("collider: file has neither circle nor polygon")

// PathFor maps an image asset to its sidecar: "sprites/car.png" becomes
// "sprites/car.collider".
func PathFor(assetPath string) string {
	return strings.TrimSuffix(assetPath, filepath.Ext(assetPath)) + Ext
}

type fileSpec struct {
	Circle  *float64    `yaml:"circle,omitempty"`
	Polygon []pointSpec `yaml:"polygon,omitempty"`
}

type pointSpec struct {
	X float64
	Y float64
}

// MarshalYAML writes a point as a flow pair so files read as "- [x, y]".
func (p pointSpec) MarshalYAML() (any, error) {
	n := &yaml.Node{}
	if err := n.Encode([]float64{p.X, p.Y}); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}

func (p *pointSpec) UnmarshalYAML(value *yaml.Node) error {
	var xy []float64
	if err := value.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("collider: line %d: point needs 2 coordinates, got %d", value.Line, len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Encode serialises c. None can't be written; there is nothing to load back.
func Encode(c Collider) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var spec fileSpec
	switch c.Kind {
	case KindCircle:
		r := c.Radius
		spec.Circle = &r
	case KindPolygon:
		spec.Polygon = make([]pointSpec, len(c.Points))
		for i, p := range c.Points {
			spec.Polygon[i] = pointSpec{X: p.X, Y: p.Y}
		}
	default:
		return nil, ErrUnknownFormat
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&spec); err != nil {
		return nil, fmt.Errorf("collider: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("collider: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a sidecar and validates the result.
func Decode(data []byte) (Collider, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return None(), fmt.Errorf("collider: decode: %w", err)
	}
	var c Collider
	switch {
	case spec.Circle != nil && len(spec.Polygon) > 0:
		return None(), fmt.Errorf("%w: both circle and polygon set", ErrUnknownFormat)
	case spec.Circle != nil:
		c = Circle(*spec.Circle)
	case len(spec.Polygon) > 0:
		pts := make([]Point, len(spec.Polygon))
		for i, p := range spec.Polygon {
			pts[i] = Pt(p.X, p.Y)
		}
		c = Collider{Kind: KindPolygon, Points: pts}
	default:
		return None(), ErrUnknownFormat
	}
	if err := c.Validate(); err != nil {
		return None(), err
	}
	return c, nil
}

// ReadFile loads the sidecar at path.
func ReadFile(path string) (Collider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return None(), fmt.Errorf("collider: read %s: %w", path, err)
	}
	c, err := Decode(data)
	if err != nil {
		return None(), fmt.Errorf("collider: %s: %w", path, err)
	}
	return c, nil
}

// WriteFile replaces the sidecar at path. There is no backup of the old file.
func WriteFile(path string, c Collider) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("collider: write %s: %w", path, err)
	}
	return nil
}
