package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() benchConfig {
	cfg := defaultBenchConfig()
	cfg.Entities = 50
	cfg.Ticks = 300
	return cfg
}

func TestSimulation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := testConfig()
	sim, err := newSimulation(cfg, zerolog.New(&buf))
	require.NoError(t, err)

	for range cfg.Ticks {
		sim.tick(cfg.Delta)
	}
	// Flush the entities queued on the last tick without advancing time.
	sim.world.SetDelta(0)
	sim.world.Process()

	em := sim.world.EntityManager()
	assert.Greater(t, sim.spawned, cfg.Entities, "spawn waves add particles")
	assert.Positive(t, sim.expired, "mortal particles expire")
	assert.Positive(t, sim.moved)
	assert.Equal(t, int64(sim.spawned), em.TotalCreated())
	assert.Equal(t, int64(sim.expired), em.TotalDeleted())
	assert.Equal(t, sim.spawned-sim.expired, em.ActiveEntityCount())

	drifters := sim.groups.Entities(groupDrifters)
	mortals := sim.groups.Entities(groupMortals)
	assert.Len(t, append(drifters, mortals...), em.ActiveEntityCount(), "deleted particles leave their group")
	for _, e := range mortals {
		lifetime, ok := sim.lifetimes.GetSafe(e)
		require.True(t, ok)
		assert.Positive(t, lifetime.Remaining)
	}
	for _, e := range drifters {
		assert.False(t, sim.lifetimes.Has(e))
		assert.True(t, e.IsActive())
	}

	assert.Contains(t, buf.String(), `"message":"simulation stats"`)
	assert.Contains(t, buf.String(), `"system":"stats"`)
}

func TestSimulation_Deterministic(t *testing.T) {
	t.Parallel()

	counts := func() [3]int {
		cfg := testConfig()
		sim, err := newSimulation(cfg, zerolog.Nop())
		require.NoError(t, err)
		for range cfg.Ticks {
			sim.tick(cfg.Delta)
		}
		return [3]int{sim.spawned, sim.expired, sim.moved}
	}
	assert.Equal(t, counts(), counts())
}

// These tests set environment variables and can't run in parallel.

func TestLoadBenchConfig(t *testing.T) {
	t.Setenv("BENCH_ENTITIES", "10")
	t.Setenv("BENCH_PROFILE", "cpu")

	cfg, err := loadBenchConfig()
	require.NoError(t, err)
	want := defaultBenchConfig()
	want.Entities = 10
	want.Profile = "cpu"
	assert.Equal(t, want, cfg)

	t.Setenv("BENCH_PROFILE", "trace")
	_, err = loadBenchConfig()
	require.Error(t, err)

	t.Setenv("BENCH_PROFILE", "")
	t.Setenv("BENCH_TICKS", "0")
	_, err = loadBenchConfig()
	require.Error(t, err)
}
