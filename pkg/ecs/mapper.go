package ecs

// Mapper gives a system direct access to the storage of one component type. Lookups are a single
// slot read, with no per-entity bookkeeping.
type Mapper struct {
	componentType ComponentType
	components    *Bag[Component]
}

func newMapper(t ComponentType, cm *ComponentManager) *Mapper {
	return &Mapper{componentType: t, components: cm.ComponentsByType(t)}
}

// Type returns the component type the mapper reads.
func (m *Mapper) Type() ComponentType {
	return m.componentType
}

// Get returns the component of e, or nil if e has none. Use it when the system's aspect
// guarantees the component is present.
func (m *Mapper) Get(e *Entity) Component {
	return m.components.Get(e.ID())
}

// GetSafe returns the component of e and whether it is present.
func (m *Mapper) GetSafe(e *Entity) (Component, bool) {
	if !m.components.IsIndexWithinBounds(e.ID()) {
		return nil, false
	}
	c := m.components.Get(e.ID())
	return c, c != nil
}

// Has reports whether e holds a component of the mapper's type.
func (m *Mapper) Has(e *Entity) bool {
	_, ok := m.GetSafe(e)
	return ok
}

// ComponentMapper is a Mapper that returns components as T.
type ComponentMapper[T Component] struct {
	*Mapper
}

// Get returns the component of e as T, or the zero value of T if e has none.
func (m ComponentMapper[T]) Get(e *Entity) T {
	c, _ := m.GetSafe(e)
	return c
}

// GetSafe returns the component of e as T and whether it is present.
func (m ComponentMapper[T]) GetSafe(e *Entity) (T, bool) {
	c, ok := m.Mapper.GetSafe(e)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}

// MapperFor returns the typed mapper of T in world w. The underlying mapper is cached by the
// world, so repeated calls share storage access.
func MapperFor[T Component](w *World) ComponentMapper[T] {
	return ComponentMapper[T]{Mapper: w.Mapper(TypeOf[T](w))}
}
