package ecs

import (
	"testing"

	. "github.com/argus-labs/artemis/pkg/ecs/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentManager_AddRemove(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	cm := w.ComponentManager()
	health := TypeOf[*Health](w)
	position := TypeOf[*Position](w)

	e := w.CreateEntity()
	hp := &Health{Value: 10}
	cm.AddComponent(e, health, hp)

	// Property: the component bit is set iff storage holds a component of that type.
	assert.True(t, e.ComponentBits().Get(health.Index()))
	assert.Same(t, hp, cm.Component(e, health))
	assert.False(t, e.ComponentBits().Get(position.Index()))
	assert.Nil(t, cm.Component(e, position))

	replacement := &Health{Value: 20}
	cm.AddComponent(e, health, replacement)
	assert.Same(t, replacement, cm.Component(e, health), "adding again replaces the component")

	cm.RemoveComponent(e, health)
	assert.False(t, e.ComponentBits().Get(health.Index()))
	assert.Nil(t, cm.Component(e, health))

	cm.RemoveComponent(e, position)
	assert.False(t, e.ComponentBits().Get(position.Index()), "removing an absent component is a no-op")

	assert.Panics(t, func() { cm.AddComponent(e, health, nil) })
}

func TestComponentManager_ComponentsFor(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	cm := w.ComponentManager()

	hp := &Health{Value: 1}
	pos := &Position{X: 1}
	e := w.CreateEntity().AddComponent(hp).AddComponent(pos)

	fill := cm.ComponentsFor(e, NewBag[Component](0))
	assert.Equal(t, []Component{hp, pos}, fill.Slice(), "components come in type index order")

	other := w.CreateEntity()
	assert.True(t, cm.ComponentsFor(other, NewBag[Component](0)).IsEmpty())
}

func TestComponentManager_ComponentsByType(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	cm := w.ComponentManager()
	health := TypeOf[*Health](w)

	storage := cm.ComponentsByType(health)
	require.NotNil(t, storage)
	assert.Same(t, storage, cm.ComponentsByType(health), "storage is created once")

	e := w.CreateEntity().AddComponent(&Health{Value: 3})
	assert.Equal(t, &Health{Value: 3}, storage.Get(e.ID()))
}

func TestComponentManager_Clean(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	cm := w.ComponentManager()
	health := TypeOf[*Health](w)
	position := TypeOf[*Position](w)

	e := w.CreateEntity().AddComponent(&Health{}).AddComponent(&Position{})
	keep := w.CreateEntity().AddComponent(&Health{Value: 5})

	cm.Deleted(e)
	assert.Equal(t, 1, cm.pendingDeletions())
	assert.NotNil(t, cm.Component(e, health), "deletion only queues the entity")

	cm.Clean()
	assert.Equal(t, 0, cm.pendingDeletions())
	assert.Nil(t, cm.Component(e, health))
	assert.Nil(t, cm.Component(e, position))
	assert.True(t, e.ComponentBits().IsEmpty())
	assert.Equal(t, &Health{Value: 5}, cm.Component(keep, health), "other entities are untouched")

	cm.Clean()
	assert.Equal(t, 0, cm.pendingDeletions(), "clean with nothing queued is a no-op")
}
