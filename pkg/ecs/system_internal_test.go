package ecs

import (
	"testing"

	. "github.com/argus-labs/artemis/pkg/ecs/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicErr runs fn and returns the error it panicked with, or nil.
func panicErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestEntitySystem_Membership(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	var inserted, removed []int
	s := NewEntitySystem("movement", AspectForAll(TypeOf[*Position](w), TypeOf[*Velocity](w)),
		WithInserted(func(e *Entity) { inserted = append(inserted, e.ID()) }),
		WithRemoved(func(e *Entity) { removed = append(removed, e.ID()) }),
	)
	require.NoError(t, w.AddSystem(s, false))
	require.NoError(t, w.Initialize())

	e := addedEntity(t, w, &Position{}, &Velocity{})
	assert.True(t, s.Actives().Contains(e))
	assert.Equal(t, []int{e.ID()}, inserted)
	checkMembership(t, w, e)

	// Component mutations are only seen by systems after a change notification.
	e.RemoveComponent(&Velocity{})
	assert.True(t, s.Actives().Contains(e))
	e.ChangedInWorld()
	w.Process()
	assert.False(t, s.Actives().Contains(e))
	assert.Equal(t, []int{e.ID()}, removed)
	checkMembership(t, w, e)

	e.AddComponent(&Velocity{X: 1})
	e.ChangedInWorld()
	w.Process()
	assert.True(t, s.Actives().Contains(e))

	// Changing an entity that still matches does not reinsert it.
	e.AddComponent(&Health{})
	e.ChangedInWorld()
	w.Process()
	assert.Len(t, inserted, 2)
	assert.Equal(t, 1, s.Actives().Size())

	e.Disable()
	w.Process()
	assert.False(t, s.Actives().Contains(e), "disabled entities leave every system")
	assert.False(t, e.IsEnabled())

	e.Enable()
	w.Process()
	assert.True(t, s.Actives().Contains(e), "enabled entities are re-evaluated")

	e.DeleteFromWorld()
	w.Process()
	assert.False(t, s.Actives().Contains(e))
	assert.Equal(t, []int{e.ID(), e.ID(), e.ID()}, removed)
	checkMembership(t, w, e)
}

func TestEntitySystem_DisabledIgnoresAspect(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	s := NewEntitySystem("health", AspectForAll(TypeOf[*Health](w)))
	require.NoError(t, w.AddSystem(s, false))

	e := w.CreateEntity()
	e.AddToWorld()
	w.Process()

	// The entity never matched, so removal on disable must not fire for it.
	var removedCalls int
	s.hooks.removed = func(*Entity) { removedCalls++ }
	e.Disable()
	w.Process()
	assert.Equal(t, 0, removedCalls)
}

func TestEntitySystem_Dummy(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	frozen := TypeOf[*Frozen](w)
	s := NewEntitySystem("dummy", NewAspect().Exclude(frozen))
	require.NoError(t, w.AddSystem(s, false))
	assert.True(t, s.dummy)

	e := addedEntity(t, w, &Health{})
	assert.True(t, s.Actives().IsEmpty(), "a dummy system never holds entities")
	assert.False(t, e.SystemBits().Get(s.SystemIndex()))
}

func TestEntitySystem_NilAspect(t *testing.T) {
	t.Parallel()

	s := NewEntitySystem("nil", nil)
	require.NotNil(t, s.Aspect())
	assert.True(t, s.Aspect().IsDummy())
	assert.Equal(t, -1, s.SystemIndex())
}

func TestEntitySystem_Unregistered(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	s := NewEntitySystem("loose", AspectForAll(TypeOf[*Health](w)))
	e := w.CreateEntity().AddComponent(&Health{})

	assert.Panics(t, func() { s.Added(e) }, "a system outside a world has no bit to track entities with")
	assert.True(t, s.Actives().IsEmpty())
}

func TestEntitySystem_Process(t *testing.T) {
	t.Parallel()

	t.Run("hooks run in order", func(t *testing.T) {
		t.Parallel()

		w := newTestWorld(t)
		var calls []string
		var seen int
		s := NewEntitySystem("ordered", AspectForAll(TypeOf[*Health](w)),
			WithCheckProcessing(func() bool { return true }),
			WithInserted(func(*Entity) { calls = append(calls, "inserted") }),
			WithBegin(func() { calls = append(calls, "begin") }),
			WithProcessEntities(func(entities *Bag[*Entity]) {
				calls = append(calls, "process")
				seen = entities.Size()
			}),
			WithEnd(func() { calls = append(calls, "end") }),
		)
		require.NoError(t, w.AddSystem(s, false))
		addedEntity(t, w, &Health{})

		// The flush inserts the entity before the system runs in the same Process.
		assert.Equal(t, []string{"inserted", "begin", "process", "end"}, calls)
		assert.Equal(t, 1, seen)
	})

	t.Run("default gate never processes", func(t *testing.T) {
		t.Parallel()

		processed := false
		s := NewEntitySystem("gated", nil,
			WithProcessEntities(func(*Bag[*Entity]) { processed = true }))
		assert.False(t, s.CheckProcessing())
		s.Process()
		assert.False(t, processed)
	})

	t.Run("missing process hook panics", func(t *testing.T) {
		t.Parallel()

		s := NewEntitySystem("unimplemented", nil, WithCheckProcessing(func() bool { return true }))
		err := panicErr(s.Process)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotImplemented)
	})
}

func TestEntitySystem_Mappers(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	var initialized bool
	var s *EntitySystem
	s = NewEntitySystem("reader", nil,
		WithComponentTypes("Health", "Position"),
		WithInitialize(func() {
			initialized = true
			assert.NotNil(t, s.Mapper("Health"), "mappers are wired before initialize")
		}),
	)
	require.NoError(t, w.AddSystem(s, true))
	assert.Nil(t, s.Mapper("Health"))

	require.NoError(t, w.Initialize())
	assert.True(t, initialized)
	assert.Same(t, w.Mapper(TypeOf[*Position](w)), s.Mapper("Position"), "mappers are cached per type")
	assert.Nil(t, s.Mapper("Velocity"))
}
