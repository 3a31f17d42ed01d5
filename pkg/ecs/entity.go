package ecs

import (
	"strconv"

	"github.com/google/uuid"
)

// Entity is a bare identity. It carries no data of its own beyond the bookkeeping bits that record
// which component types it holds and which systems it is active in.
//
// Ids are reused after an entity is deleted and purged. The uuid is regenerated every time an id is
// handed out again, so holding on to a uuid is the way to tell an old entity from the new one that
// took over its id.
type Entity struct {
	id            int
	uuid          uuid.UUID
	componentBits *BitSet
	systemBits    *BitSet
	world         *World
}

func newEntity(w *World, id int) *Entity {
	e := &Entity{
		id:            id,
		componentBits: NewBitSet(),
		systemBits:    NewBitSet(),
		world:         w,
	}
	e.reset()
	return e
}

// reset clears the membership bits and assigns a fresh uuid.
func (e *Entity) reset() {
	e.componentBits.Reset()
	e.systemBits.Reset()
	e.uuid = uuid.New()
}

// ID returns the entity id. The id is unique among active entities only.
func (e *Entity) ID() int {
	return e.id
}

// UUID returns the uuid assigned when the entity was created.
func (e *Entity) UUID() uuid.UUID {
	return e.uuid
}

// ComponentBits returns the set of component type indexes the entity holds.
func (e *Entity) ComponentBits() *BitSet {
	return e.componentBits
}

// SystemBits returns the set of system indexes the entity is active in.
func (e *Entity) SystemBits() *BitSet {
	return e.systemBits
}

func (e *Entity) World() *World {
	return e.world
}

func (e *Entity) String() string {
	return "Entity[" + strconv.Itoa(e.id) + "]"
}

// -------------------------------------------------------------------------------------------------
// Components
// -------------------------------------------------------------------------------------------------

// AddComponent attaches c under the component type named by c.Name(). An existing component of
// the same type is replaced. Systems only see the change after ChangedInWorld and the next flush.
func (e *Entity) AddComponent(c Component) *Entity {
	return e.AddComponentOfType(c, e.world.ComponentType(c.Name()))
}

// AddComponentOfType attaches c under the given component type.
func (e *Entity) AddComponentOfType(c Component, t ComponentType) *Entity {
	e.world.componentManager.AddComponent(e, t, c)
	return e
}

// RemoveComponent detaches the component of the same type as c.
func (e *Entity) RemoveComponent(c Component) *Entity {
	return e.RemoveComponentByType(e.world.ComponentType(c.Name()))
}

// RemoveComponentByType detaches the component of type t. Removing an absent component is a no-op.
func (e *Entity) RemoveComponentByType(t ComponentType) *Entity {
	e.world.componentManager.RemoveComponent(e, t)
	return e
}

// Component returns the component of type t, or nil if the entity doesn't hold one.
func (e *Entity) Component(t ComponentType) Component {
	return e.world.componentManager.Component(e, t)
}

// Components appends every component of the entity to fill and returns it.
func (e *Entity) Components(fill *Bag[Component]) *Bag[Component] {
	return e.world.componentManager.ComponentsFor(e, fill)
}

// -------------------------------------------------------------------------------------------------
// Lifecycle
// -------------------------------------------------------------------------------------------------

// AddToWorld queues the entity to be added on the next flush.
func (e *Entity) AddToWorld() {
	e.world.AddEntity(e)
}

// ChangedInWorld queues the entity so systems re-evaluate it on the next flush.
func (e *Entity) ChangedInWorld() {
	e.world.ChangedEntity(e)
}

// DeleteFromWorld queues the entity for deletion on the next flush.
func (e *Entity) DeleteFromWorld() {
	e.world.DeleteEntity(e)
}

// Enable queues the entity to be enabled on the next flush.
func (e *Entity) Enable() {
	e.world.Enable(e)
}

// Disable queues the entity to be disabled on the next flush. Disabled entities are removed from
// every system until they are enabled again.
func (e *Entity) Disable() {
	e.world.Disable(e)
}

// IsActive reports whether the entity has been added and not deleted. It does not reflect pending
// changes that haven't been flushed.
func (e *Entity) IsActive() bool {
	return e.world.entityManager.IsActive(e.id)
}

// IsEnabled reports whether the entity is not disabled.
func (e *Entity) IsEnabled() bool {
	return e.world.entityManager.IsEnabled(e.id)
}
