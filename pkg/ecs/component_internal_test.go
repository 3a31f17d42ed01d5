package ecs

import (
	"testing"

	. "github.com/argus-labs/artemis/pkg/ecs/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentTypes_TypeFor(t *testing.T) {
	t.Parallel()

	r := newComponentTypes()

	health := r.typeFor("Health")
	position := r.typeFor("Position")
	assert.Equal(t, 0, health.Index())
	assert.Equal(t, 1, position.Index())
	assert.Equal(t, "Position", position.Name())
	assert.Equal(t, "Position", position.String())

	// Property: a name keeps its index once assigned.
	assert.Equal(t, health, r.typeFor("Health"))
	assert.Len(t, r.all(), 2)

	got, ok := r.lookup("Position")
	require.True(t, ok)
	assert.Equal(t, position, got)

	_, ok = r.lookup("Velocity")
	assert.False(t, ok, "lookup does not register")
	assert.Len(t, r.all(), 2)

	assert.Panics(t, func() { r.typeFor("") })
}

func TestComponentTypes_PerWorld(t *testing.T) {
	t.Parallel()

	w1 := newTestWorld(t)
	w2 := newTestWorld(t)

	w1.ComponentType("Health")
	assert.Equal(t, 1, TypeOf[Position](w1).Index())
	assert.Equal(t, 0, TypeOf[Position](w2).Index(), "each world assigns its own indexes")
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)

	byValue := TypeOf[Velocity](w)
	byPointer := TypeOf[*Velocity](w)
	assert.Equal(t, byValue, byPointer, "pointer and value components share a type")
	assert.Equal(t, "Velocity", byValue.Name())
	assert.Equal(t, []ComponentType{byValue}, w.ComponentTypes())
}
