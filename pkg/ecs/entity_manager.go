package ecs

import "github.com/argus-labs/artemis/pkg/assert"

// EntityManager hands out entity ids and tracks which entities are active and enabled.
//
// Ids released by a deletion are not reusable right away. They wait in a reclaim queue until the
// world has purged the component storage of the deleted entities, which guarantees a new entity can
// never observe components left behind by the previous owner of its id.
type EntityManager struct {
	BaseManager

	entities  *Bag[*Entity] // Entity id -> active entity, nil when inactive
	owners    *Bag[*Entity] // Entity id -> entity holding the id, nil while the id is free
	disabled  *BitSet       // Ids of disabled entities
	ids       idPool
	reclaimed *Bag[int] // Ids released this tick, returned to the pool after the purge

	active  int
	added   int64
	created int64
	deleted int64
}

var _ Manager = (*EntityManager)(nil)

func newEntityManager(capacity int) *EntityManager {
	return &EntityManager{
		entities:  NewBag[*Entity](capacity),
		owners:    NewBag[*Entity](capacity),
		disabled:  NewBitSet(),
		ids:       newIDPool(capacity),
		reclaimed: NewBag[int](capacity),
	}
}

// CreateEntityInstance creates an entity with a pooled id. The entity is not active until it is
// added to the world and the world is processed.
func (em *EntityManager) CreateEntityInstance() *Entity {
	e := newEntity(em.World(), em.ids.checkOut())
	em.owners.Set(e.ID(), e)
	em.created++
	return e
}

func (em *EntityManager) Added(e *Entity) {
	em.active++
	em.added++
	em.entities.Set(e.ID(), e)
}

func (em *EntityManager) Enabled(e *Entity) {
	em.disabled.Clear(e.ID())
}

func (em *EntityManager) Disabled(e *Entity) {
	em.disabled.Set(e.ID())
}

// Deleted releases e's id. A stale entity, whose id was already released, is ignored.
func (em *EntityManager) Deleted(e *Entity) {
	if em.owners.Get(e.ID()) != e {
		return
	}
	if em.entities.Get(e.ID()) == e {
		em.active--
	}
	em.entities.Set(e.ID(), nil)
	em.owners.Set(e.ID(), nil)
	em.disabled.Clear(e.ID())
	em.reclaimed.Add(e.ID())
	em.deleted++
}

// reclaimIDs returns the ids released since the last call to the pool, in release order, so the
// most recently deleted id is handed out first.
func (em *EntityManager) reclaimIDs() {
	for i := range em.reclaimed.Size() {
		em.ids.checkIn(em.reclaimed.Get(i))
	}
	em.reclaimed.Clear()
}

// IsActive reports whether the entity with the given id has been added and not deleted.
func (em *EntityManager) IsActive(id int) bool {
	return em.entities.Get(id) != nil
}

// IsEnabled reports whether the entity with the given id is not disabled.
func (em *EntityManager) IsEnabled(id int) bool {
	return !em.disabled.Get(id)
}

// Entity returns the active entity with the given id, or nil.
func (em *EntityManager) Entity(id int) *Entity {
	return em.entities.Get(id)
}

// ActiveEntityCount returns the number of entities currently active.
func (em *EntityManager) ActiveEntityCount() int {
	return em.active
}

// TotalCreated returns the number of entities created during the lifetime of the world.
func (em *EntityManager) TotalCreated() int64 {
	return em.created
}

// TotalAdded returns the number of entities added during the lifetime of the world.
func (em *EntityManager) TotalAdded() int64 {
	return em.added
}

// TotalDeleted returns the number of entities deleted during the lifetime of the world.
func (em *EntityManager) TotalDeleted() int64 {
	return em.deleted
}

// -------------------------------------------------------------------------------------------------
// Id pool
// -------------------------------------------------------------------------------------------------

// idPool is a LIFO free list over a monotonically increasing counter. The most recently released
// id is the next one handed out.
type idPool struct {
	free   *Bag[int]
	nextID int
}

func newIDPool(capacity int) idPool {
	return idPool{free: NewBag[int](capacity), nextID: 0}
}

func (p *idPool) checkOut() int {
	if !p.free.IsEmpty() {
		return p.free.RemoveLast()
	}
	id := p.nextID
	p.nextID++
	return id
}

func (p *idPool) checkIn(id int) {
	assert.That(id >= 0 && id < p.nextID, "checked in id %d was never checked out", id)
	p.free.Add(id)
}
