// Package component declares the component kinds stored in the ECS world.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key of one component store. The zero value is
// invalid; create kinds with NewComponentKind.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) Name() string {
	return k.name
}

// ComponentHandle is what packages export for their components.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

// NewNamedComponent is NewComponent with a name used in log output.
func NewNamedComponent[T any](name string) ComponentHandle[T] {
	k := NewComponentKind[T]()
	k.name = name
	return ComponentHandle[T]{kind: k}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
