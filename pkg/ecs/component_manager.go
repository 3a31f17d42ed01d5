package ecs

import "github.com/argus-labs/artemis/pkg/assert"

// ComponentManager owns component storage. Components are kept in a bag per component type, indexed
// by entity id, so a lookup is two slot reads and a whole component type can be scanned without
// touching entities.
//
// Storage for deleted entities isn't released when the deletion is flushed. The entity is queued and
// Clean purges it after every observer has seen the deletion, so observers can still read the
// components of the entity they're being told about.
type ComponentManager struct {
	BaseManager

	componentsByType *Bag[*Bag[Component]] // Component type index -> entity id -> component
	deleted          *Bag[*Entity]         // Entities waiting for Clean
}

var _ Manager = (*ComponentManager)(nil)

func newComponentManager(capacity int) *ComponentManager {
	return &ComponentManager{
		componentsByType: NewBag[*Bag[Component]](capacity),
		deleted:          NewBag[*Entity](capacity),
	}
}

// AddComponent stores c for e under type t and sets the type's bit on the entity.
func (cm *ComponentManager) AddComponent(e *Entity, t ComponentType, c Component) {
	assert.That(c != nil, "cannot add a nil component of type %s", t.Name())

	cm.ComponentsByType(t).Set(e.ID(), c)
	e.ComponentBits().Set(t.Index())
}

// RemoveComponent drops the component of type t from e. It does nothing if e doesn't hold one.
func (cm *ComponentManager) RemoveComponent(e *Entity, t ComponentType) {
	if !e.ComponentBits().Get(t.Index()) {
		return
	}
	cm.ComponentsByType(t).Set(e.ID(), nil)
	e.ComponentBits().Clear(t.Index())
}

// ComponentsByType returns the storage bag of type t, creating it on first use. The bag is indexed
// by entity id and has nil slots for entities without the component.
func (cm *ComponentManager) ComponentsByType(t ComponentType) *Bag[Component] {
	components := cm.componentsByType.Get(t.Index())
	if components == nil {
		components = NewBag[Component](0)
		cm.componentsByType.Set(t.Index(), components)
	}
	return components
}

// Component returns the component of type t held by e, or nil.
func (cm *ComponentManager) Component(e *Entity, t ComponentType) Component {
	components := cm.componentsByType.Get(t.Index())
	if components == nil {
		return nil
	}
	return components.Get(e.ID())
}

// ComponentsFor appends every component held by e to fill, in component type order, and returns it.
func (cm *ComponentManager) ComponentsFor(e *Entity, fill *Bag[Component]) *Bag[Component] {
	bits := e.ComponentBits()
	for i := bits.NextSetBit(0); i >= 0; i = bits.NextSetBit(i + 1) {
		fill.Add(cm.componentsByType.Get(i).Get(e.ID()))
	}
	return fill
}

// Deleted queues e for Clean. Storage is left untouched.
func (cm *ComponentManager) Deleted(e *Entity) {
	cm.deleted.Add(e)
}

// Clean purges the storage of every queued entity and resets its component bits. Each entity is
// purged once per call since World deduplicates deletions before they reach the manager.
func (cm *ComponentManager) Clean() {
	if cm.deleted.IsEmpty() {
		return
	}

	for i := range cm.deleted.Size() {
		e := cm.deleted.Get(i)
		bits := e.ComponentBits()
		for t := bits.NextSetBit(0); t >= 0; t = bits.NextSetBit(t + 1) {
			cm.componentsByType.Get(t).Set(e.ID(), nil)
		}
		bits.Reset()
	}
	cm.deleted.Clear()
}

// pendingDeletions returns the number of entities waiting for Clean.
func (cm *ComponentManager) pendingDeletions() int {
	return cm.deleted.Size()
}
