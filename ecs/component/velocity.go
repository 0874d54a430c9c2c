package component

// Velocity moves an entity every tick: X/Y in units per tick, Angular in
// radians per tick.
type Velocity struct {
	X       float64
	Y       float64
	Angular float64
}

var VelocityComponent = NewNamedComponent[Velocity]("velocity")
