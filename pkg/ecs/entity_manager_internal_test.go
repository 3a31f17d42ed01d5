package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDPool(t *testing.T) {
	t.Parallel()

	p := newIDPool(4)
	assert.Equal(t, 0, p.checkOut())
	assert.Equal(t, 1, p.checkOut())
	assert.Equal(t, 2, p.checkOut())

	p.checkIn(0)
	p.checkIn(2)
	assert.Equal(t, 2, p.checkOut(), "the most recently released id is reused first")
	assert.Equal(t, 0, p.checkOut())
	assert.Equal(t, 3, p.checkOut(), "fresh ids continue from the counter")

	assert.Panics(t, func() { p.checkIn(10) }, "ids that were never handed out can't be returned")
}

func TestEntityManager_Lifecycle(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	em := w.EntityManager()

	e := em.CreateEntityInstance()
	assert.Equal(t, int64(1), em.TotalCreated())
	assert.False(t, em.IsActive(e.ID()), "created entities are inactive until added")
	assert.Nil(t, em.Entity(e.ID()))

	em.Added(e)
	assert.True(t, em.IsActive(e.ID()))
	assert.Same(t, e, em.Entity(e.ID()))
	assert.Equal(t, 1, em.ActiveEntityCount())
	assert.Equal(t, int64(1), em.TotalAdded())

	assert.True(t, em.IsEnabled(e.ID()))
	em.Disabled(e)
	assert.False(t, em.IsEnabled(e.ID()))
	em.Enabled(e)
	assert.True(t, em.IsEnabled(e.ID()))

	em.Disabled(e)
	em.Deleted(e)
	assert.False(t, em.IsActive(e.ID()))
	assert.True(t, em.IsEnabled(e.ID()), "deletion clears the disabled flag")
	assert.Equal(t, 0, em.ActiveEntityCount())
	assert.Equal(t, int64(1), em.TotalDeleted())
}

func TestEntityManager_IDReuse(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	em := w.EntityManager()

	first := em.CreateEntityInstance()
	em.Added(first)
	em.Deleted(first)

	second := em.CreateEntityInstance()
	assert.NotEqual(t, first.ID(), second.ID(), "ids are held back until reclaimed")

	em.reclaimIDs()
	third := em.CreateEntityInstance()
	require.Equal(t, first.ID(), third.ID())
	assert.NotEqual(t, first.UUID(), third.UUID(), "a reused id gets a fresh uuid")
	assert.Equal(t, int64(3), em.TotalCreated())
}

func TestEntityManager_DeletedTwice(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	em := w.EntityManager()

	e := em.CreateEntityInstance()
	em.Added(e)
	em.Deleted(e)
	em.reclaimIDs()
	em.Deleted(e)
	em.reclaimIDs()

	assert.Equal(t, int64(1), em.TotalDeleted())
	assert.Equal(t, 0, em.ActiveEntityCount())
	assert.Equal(t, e.ID(), em.CreateEntityInstance().ID())
	assert.NotEqual(t, e.ID(), em.CreateEntityInstance().ID(), "a released id enters the pool once")

	never := em.CreateEntityInstance()
	em.Deleted(never)
	em.reclaimIDs()
	assert.Equal(t, never.ID(), em.CreateEntityInstance().ID(), "entities that were never added release their id")
}

func TestEntity_Reset(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	e := w.CreateEntity()
	e.ComponentBits().Set(3)
	e.SystemBits().Set(1)
	before := e.UUID()

	e.reset()
	assert.True(t, e.ComponentBits().IsEmpty())
	assert.True(t, e.SystemBits().IsEmpty())
	assert.NotEqual(t, before, e.UUID())
	assert.Equal(t, "Entity[0]", e.String())
}
