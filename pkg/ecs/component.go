package ecs

import (
	"reflect"

	"github.com/argus-labs/artemis/pkg/assert"
)

// Component is the interface that all components must implement.
// Components are pure data containers that can be attached to entities.
//
// Components that systems mutate in place should be attached as pointers, so that every holder
// observes the same instance.
type Component interface { //nolint:iface // We may add more methods in the future.
	// Name returns a unique string identifier for the component type.
	// This should be consistent across program executions.
	Name() string
}

// ComponentType identifies a registered component type within a world. Its index is the bit
// position in an entity's component bits and the outer index of the component storage.
type ComponentType struct {
	index int
	name  string
}

// Index returns the index assigned to the component type.
func (t ComponentType) Index() int {
	return t.index
}

// Name returns the component type name.
func (t ComponentType) Name() string {
	return t.name
}

func (t ComponentType) String() string {
	return t.name
}

// componentTypes assigns indexes to component type names. Indexes start at 0 and are assigned on
// first lookup. The registry belongs to a single world, so index assignment is deterministic per
// world and independent worlds never share indexes.
type componentTypes struct {
	catalog map[string]ComponentType // Component name -> component type
	ordered []ComponentType          // Component index -> component type
}

// newComponentTypes creates an empty registry.
func newComponentTypes() componentTypes {
	return componentTypes{
		catalog: make(map[string]ComponentType),
		ordered: make([]ComponentType, 0),
	}
}

// typeFor returns the component type for name, registering it if it hasn't been seen before.
func (r *componentTypes) typeFor(name string) ComponentType {
	assert.That(name != "", "component name cannot be empty")

	if t, exists := r.catalog[name]; exists {
		return t
	}

	t := ComponentType{index: len(r.ordered), name: name}
	r.catalog[name] = t
	r.ordered = append(r.ordered, t)
	assert.That(len(r.ordered) == len(r.catalog), "component index doesn't match number of components")

	return t
}

// lookup returns the component type for name without registering it.
func (r *componentTypes) lookup(name string) (ComponentType, bool) {
	t, exists := r.catalog[name]
	return t, exists
}

// all returns the registered component types in index order.
func (r *componentTypes) all() []ComponentType {
	out := make([]ComponentType, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// componentName returns the name of component type T. Pointer types resolve to their element so
// that Name methods declared on value receivers can be called without a nil dereference.
func componentName[T Component]() string {
	var zero T
	typ := reflect.TypeOf(zero)
	assert.That(typ != nil, "component type parameter must be a concrete type")

	if typ.Kind() == reflect.Pointer {
		c, ok := reflect.New(typ.Elem()).Interface().(Component)
		assert.That(ok, "%s does not implement Component", typ)
		return c.Name()
	}
	return zero.Name()
}

// TypeOf returns the component type of T in world w, registering it on first use.
func TypeOf[T Component](w *World) ComponentType {
	return w.ComponentType(componentName[T]())
}
