package main

import (
	"math/rand/v2"

	"github.com/argus-labs/artemis/pkg/ecs"
	"github.com/argus-labs/artemis/pkg/ecs/managers"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Position struct{ X, Y float64 }

func (Position) Name() string { return "Position" }

type Velocity struct{ X, Y float64 }

func (Velocity) Name() string { return "Velocity" }

type Lifetime struct{ Remaining float64 }

func (Lifetime) Name() string { return "Lifetime" }

const (
	groupDrifters = "drifters"
	groupMortals  = "mortals"
	tagLeader     = "leader"
)

// simulation spawns particles in waves, moves them every tick and deletes them when their
// lifetime runs out.
type simulation struct {
	world *ecs.World
	rng   *rand.Rand

	groups *managers.GroupManager
	tags   *managers.TagManager
	stats  *ecs.EntitySystem
	report *ecs.Timer

	positions  ecs.ComponentMapper[*Position]
	velocities ecs.ComponentMapper[*Velocity]
	lifetimes  ecs.ComponentMapper[*Lifetime]

	waveSize int
	spawned  int
	expired  int
	moved    int
}

func newSimulation(cfg benchConfig, logger zerolog.Logger) (*simulation, error) {
	world, err := ecs.NewWorld(ecs.WithLogger(logger))
	if err != nil {
		return nil, eris.Wrap(err, "failed to create world")
	}

	sim := &simulation{
		world:    world,
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)), //nolint:gosec // simulation only
		groups:   managers.NewGroupManager(),
		tags:     managers.NewTagManager(),
		waveSize: max(cfg.Entities/10, 1),
	}
	sim.positions = ecs.MapperFor[*Position](world)
	sim.velocities = ecs.MapperFor[*Velocity](world)
	sim.lifetimes = ecs.MapperFor[*Lifetime](world)

	if err := world.SetManager(sim.groups); err != nil {
		return nil, err
	}
	if err := world.SetManager(sim.tags); err != nil {
		return nil, err
	}

	position := ecs.TypeOf[*Position](world)
	velocity := ecs.TypeOf[*Velocity](world)
	lifetime := ecs.TypeOf[*Lifetime](world)

	movement := ecs.NewEntityProcessingSystem("movement", ecs.AspectForAll(position, velocity), sim.move)

	expiry := ecs.NewDelayedEntityProcessingSystem("expiry", ecs.AspectForAll(lifetime), ecs.DelayedHooks{
		RemainingDelay: func(e *ecs.Entity) float64 { return sim.lifetimes.Get(e).Remaining },
		ProcessDelta:   func(e *ecs.Entity, acc float64) { sim.lifetimes.Get(e).Remaining -= acc },
		ProcessExpired: sim.expire,
	})

	spawner := ecs.NewIntervalEntitySystem("spawner", nil, cfg.SpawnInterval,
		ecs.WithProcessEntities(func(*ecs.Bag[*ecs.Entity]) { sim.spawnWave() }))

	sim.stats = ecs.NewVoidEntitySystem("stats", sim.logStats)

	for _, s := range []struct {
		system  ecs.System
		passive bool
	}{
		{system: spawner},
		{system: movement},
		{system: expiry},
		{system: sim.stats, passive: true},
	} {
		if err := world.AddSystem(s.system, s.passive); err != nil {
			return nil, err
		}
	}

	if err := world.Initialize(); err != nil {
		return nil, err
	}

	sim.report = ecs.NewTimer(cfg.ReportInterval, true, sim.stats.Process)

	for range cfg.Entities {
		sim.spawn()
	}
	return sim, nil
}

// tick advances the simulation by delta.
func (s *simulation) tick(delta float64) {
	s.world.SetDelta(delta)
	s.world.Process()
	s.report.Update(delta)
}

func (s *simulation) spawn() {
	e := s.world.CreateEntity().
		AddComponent(&Position{X: s.rng.Float64() * 100, Y: s.rng.Float64() * 100}).
		AddComponent(&Velocity{X: s.rng.NormFloat64(), Y: s.rng.NormFloat64()})

	// A quarter of the particles live forever.
	if s.rng.IntN(4) == 0 {
		s.groups.Add(e, groupDrifters)
	} else {
		e.AddComponent(&Lifetime{Remaining: 0.5 + s.rng.Float64()*2})
		s.groups.Add(e, groupMortals)
	}
	if !s.tags.IsRegistered(tagLeader) {
		s.tags.Register(tagLeader, e)
	}

	e.AddToWorld()
	s.spawned++
}

func (s *simulation) spawnWave() {
	for range s.waveSize {
		s.spawn()
	}
}

func (s *simulation) move(e *ecs.Entity) {
	pos := s.positions.Get(e)
	vel := s.velocities.Get(e)
	pos.X += vel.X * s.world.Delta()
	pos.Y += vel.Y * s.world.Delta()
	s.moved++
}

func (s *simulation) expire(e *ecs.Entity) {
	e.DeleteFromWorld()
	s.expired++
}

func (s *simulation) logStats() {
	em := s.world.EntityManager()
	event := s.stats.Logger().Info().
		Int("active", em.ActiveEntityCount()).
		Int64("created", em.TotalCreated()).
		Int64("deleted", em.TotalDeleted()).
		Int("drifters", len(s.groups.Entities(groupDrifters))).
		Int("mortals", len(s.groups.Entities(groupMortals))).
		Int("moved", s.moved)
	if leader := s.tags.Entity(tagLeader); leader != nil {
		event = event.Str("leader", leader.UUID().String())
	}
	event.Msg("simulation stats")
}
