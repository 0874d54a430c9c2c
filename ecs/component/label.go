package component

// Label is the unique name collision events refer to an entity by.
type Label struct {
	Name string
}

var LabelComponent = NewNamedComponent[Label]("label")
