package component

// Transform places an entity in the world. Rotation is in radians; Scale
// is uniform and 1 means authored size.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
	Scale    float64
}

var TransformComponent = NewNamedComponent[Transform]("transform")
