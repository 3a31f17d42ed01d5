package ecs

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestWorld creates a world that discards its logs.
func newTestWorld(t *testing.T, opts ...WorldOption) *World {
	t.Helper()

	w, err := NewWorld(append([]WorldOption{WithLogger(zerolog.Nop())}, opts...)...)
	require.NoError(t, err)
	return w
}

// addedEntity creates an entity with the given components, adds it and flushes the world.
func addedEntity(t *testing.T, w *World, components ...Component) *Entity {
	t.Helper()

	e := w.CreateEntity()
	for _, c := range components {
		e.AddComponent(c)
	}
	e.AddToWorld()
	w.Process()
	return e
}

// checkMembership asserts that every entity's system bits agree with the active sets of the
// world's systems.
func checkMembership(t *testing.T, w *World, entities ...*Entity) {
	t.Helper()

	for _, s := range w.Systems() {
		es := s.entitySystem()
		for _, e := range entities {
			require.Equal(t, es.Actives().Contains(e), e.SystemBits().Get(es.SystemIndex()),
				"system %s and entity %d disagree on membership", es.Type(), e.ID())
		}
	}
}
