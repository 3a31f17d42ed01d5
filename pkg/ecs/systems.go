package ecs

import "github.com/rotisserie/eris"

func notImplemented(systemType, hook string) error {
	return eris.Wrapf(ErrNotImplemented, "system %s has no %s hook", systemType, hook)
}

// -------------------------------------------------------------------------------------------------
// Entity processing system
// -------------------------------------------------------------------------------------------------

// NewEntityProcessingSystem creates a system that processes on every tick and calls processEntity
// once per active entity. Options are applied after the defaults, so they can add begin and end
// hooks or replace the processing gate.
func NewEntityProcessingSystem(
	systemType string, aspect *Aspect, processEntity func(e *Entity), opts ...SystemOption,
) *EntitySystem {
	base := []SystemOption{
		WithCheckProcessing(func() bool { return true }),
		WithProcessEntities(forEachEntity(systemType, processEntity)),
	}
	return NewEntitySystem(systemType, aspect, append(base, opts...)...)
}

func forEachEntity(systemType string, processEntity func(e *Entity)) func(*Bag[*Entity]) {
	return func(entities *Bag[*Entity]) {
		if processEntity == nil {
			panic(notImplemented(systemType, "process entity"))
		}
		for i := range entities.Size() {
			processEntity(entities.Get(i))
		}
	}
}

// -------------------------------------------------------------------------------------------------
// Interval systems
// -------------------------------------------------------------------------------------------------

// IntervalEntitySystem processes at a fixed interval of world time. World deltas accumulate
// between ticks and the overshoot carries over into the next interval.
type IntervalEntitySystem struct {
	*EntitySystem

	interval float64
	acc      float64
}

// NewIntervalEntitySystem creates a system gated on interval. The processing hook still has to be
// supplied with WithProcessEntities.
func NewIntervalEntitySystem(
	systemType string, aspect *Aspect, interval float64, opts ...SystemOption,
) *IntervalEntitySystem {
	s := &IntervalEntitySystem{interval: interval}
	s.EntitySystem = NewEntitySystem(systemType, aspect, append(opts, WithCheckProcessing(s.checkProcessing))...)
	return s
}

func (s *IntervalEntitySystem) checkProcessing() bool {
	s.acc += s.World().Delta()
	if s.acc >= s.interval {
		s.acc -= s.interval
		return true
	}
	return false
}

// Interval returns the processing interval.
func (s *IntervalEntitySystem) Interval() float64 {
	return s.interval
}

// Accumulated returns the world time accumulated towards the next interval.
func (s *IntervalEntitySystem) Accumulated() float64 {
	return s.acc
}

// NewIntervalEntityProcessingSystem creates an interval system that calls processEntity once per
// active entity whenever the interval elapses.
func NewIntervalEntityProcessingSystem(
	systemType string, aspect *Aspect, interval float64, processEntity func(e *Entity), opts ...SystemOption,
) *IntervalEntitySystem {
	opts = append([]SystemOption{WithProcessEntities(forEachEntity(systemType, processEntity))}, opts...)
	return NewIntervalEntitySystem(systemType, aspect, interval, opts...)
}

// -------------------------------------------------------------------------------------------------
// Delayed entity processing system
// -------------------------------------------------------------------------------------------------

// DelayedHooks are the entity callbacks of a DelayedEntityProcessingSystem. All three are required.
type DelayedHooks struct {
	// RemainingDelay returns how long until e should be processed. A non-positive value means e
	// has expired.
	RemainingDelay func(e *Entity) float64

	// ProcessDelta subtracts the time accumulated since the last run from e's own delay.
	ProcessDelta func(e *Entity, accumulatedDelta float64)

	// ProcessExpired handles an entity whose delay has run out.
	ProcessExpired func(e *Entity)
}

// DelayedEntityProcessingSystem runs only when the nearest entity deadline is reached, instead of
// on every tick. Entities offer their delay when they are inserted and after every run, and the
// system keeps the shortest one. When no entities remain after a run the system stops until the
// next entity is inserted.
type DelayedEntityProcessingSystem struct {
	*EntitySystem

	hooks   DelayedHooks
	delay   float64
	acc     float64
	running bool
}

// NewDelayedEntityProcessingSystem creates a delayed system. A user inserted hook supplied through
// opts runs after the entity's delay has been offered.
func NewDelayedEntityProcessingSystem(
	systemType string, aspect *Aspect, hooks DelayedHooks, opts ...SystemOption,
) *DelayedEntityProcessingSystem {
	s := &DelayedEntityProcessingSystem{hooks: hooks}
	s.EntitySystem = NewEntitySystem(systemType, aspect, opts...)

	userInserted := s.EntitySystem.hooks.inserted
	s.EntitySystem.hooks.inserted = func(e *Entity) {
		s.inserted(e)
		if userInserted != nil {
			userInserted(e)
		}
	}
	s.EntitySystem.hooks.checkProcessing = s.checkProcessing
	s.EntitySystem.hooks.processEntities = s.processEntities
	return s
}

func (s *DelayedEntityProcessingSystem) inserted(e *Entity) {
	if delay := s.remainingDelay(e); delay > 0 {
		s.OfferDelay(delay)
	}
}

func (s *DelayedEntityProcessingSystem) checkProcessing() bool {
	if !s.running {
		return false
	}
	s.acc += s.World().Delta()
	return s.acc >= s.delay
}

func (s *DelayedEntityProcessingSystem) processEntities(entities *Bag[*Entity]) {
	if s.hooks.ProcessDelta == nil {
		panic(notImplemented(s.systemType, "process delta"))
	}
	if s.hooks.ProcessExpired == nil {
		panic(notImplemented(s.systemType, "process expired"))
	}

	for i := range entities.Size() {
		e := entities.Get(i)
		s.hooks.ProcessDelta(e, s.acc)
		if remaining := s.remainingDelay(e); remaining <= 0 {
			s.hooks.ProcessExpired(e)
		} else {
			s.OfferDelay(remaining)
		}
	}

	s.acc = 0
	if entities.IsEmpty() {
		s.Stop()
	}
}

func (s *DelayedEntityProcessingSystem) remainingDelay(e *Entity) float64 {
	if s.hooks.RemainingDelay == nil {
		panic(notImplemented(s.systemType, "remaining delay"))
	}
	return s.hooks.RemainingDelay(e)
}

// Restart cancels the current countdown and starts a new one of delay.
func (s *DelayedEntityProcessingSystem) Restart(delay float64) {
	s.delay = delay
	s.acc = 0
	s.running = true
}

// OfferDelay restarts the countdown with delay if the system is stopped or delay is shorter than
// the remaining time. Longer delays are ignored.
func (s *DelayedEntityProcessingSystem) OfferDelay(delay float64) {
	if !s.running || delay < s.RemainingTimeUntilProcessing() {
		s.Restart(delay)
	}
}

// Stop aborts the countdown. OfferDelay or Restart start it again.
func (s *DelayedEntityProcessingSystem) Stop() {
	s.running = false
	s.acc = 0
}

// RemainingTimeUntilProcessing returns the time left in the countdown, or 0 when stopped.
func (s *DelayedEntityProcessingSystem) RemainingTimeUntilProcessing() float64 {
	if s.running {
		return s.delay - s.acc
	}
	return 0
}

// InitialTimeDelay returns the delay the current countdown was started with.
func (s *DelayedEntityProcessingSystem) InitialTimeDelay() float64 {
	return s.delay
}

// IsRunning reports whether the system is counting down.
func (s *DelayedEntityProcessingSystem) IsRunning() bool {
	return s.running
}

// -------------------------------------------------------------------------------------------------
// Void system
// -------------------------------------------------------------------------------------------------

// NewVoidEntitySystem creates a system with no entities that calls processSystem on every tick.
func NewVoidEntitySystem(systemType string, processSystem func(), opts ...SystemOption) *EntitySystem {
	base := []SystemOption{
		WithCheckProcessing(func() bool { return true }),
		WithProcessEntities(func(*Bag[*Entity]) {
			if processSystem == nil {
				panic(notImplemented(systemType, "process system"))
			}
			processSystem()
		}),
	}
	return NewEntitySystem(systemType, NewAspect(), append(base, opts...)...)
}
