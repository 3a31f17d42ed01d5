package ecs

import (
	"github.com/argus-labs/artemis/pkg/assert"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// System is implemented by *EntitySystem and by every type that embeds one. The unexported method
// keeps the set of systems closed over the base system, which owns the membership bookkeeping.
type System interface {
	entitySystem() *EntitySystem
}

// systemHooks are the extension points of an EntitySystem. Every hook has a no-op default except
// processEntities, which panics with ErrNotImplemented when the system is processed without one.
type systemHooks struct {
	initialize      func()
	inserted        func(e *Entity)
	removed         func(e *Entity)
	begin           func()
	end             func()
	checkProcessing func() bool
	processEntities func(entities *Bag[*Entity])
}

// SystemOption configures an EntitySystem.
type SystemOption func(*EntitySystem)

// WithInitialize sets the hook called once by World.Initialize, after the system's mappers are
// wired.
func WithInitialize(fn func()) SystemOption {
	return func(s *EntitySystem) { s.hooks.initialize = fn }
}

// WithInserted sets the hook called after an entity joins the system.
func WithInserted(fn func(e *Entity)) SystemOption {
	return func(s *EntitySystem) { s.hooks.inserted = fn }
}

// WithRemoved sets the hook called after an entity leaves the system.
func WithRemoved(fn func(e *Entity)) SystemOption {
	return func(s *EntitySystem) { s.hooks.removed = fn }
}

// WithBegin sets the hook called before the active entities are processed.
func WithBegin(fn func()) SystemOption {
	return func(s *EntitySystem) { s.hooks.begin = fn }
}

// WithEnd sets the hook called after the active entities are processed.
func WithEnd(fn func()) SystemOption {
	return func(s *EntitySystem) { s.hooks.end = fn }
}

// WithCheckProcessing sets the gate consulted on every Process. Without it a system never
// processes.
func WithCheckProcessing(fn func() bool) SystemOption {
	return func(s *EntitySystem) { s.hooks.checkProcessing = fn }
}

// WithProcessEntities sets the hook that processes the active entities.
func WithProcessEntities(fn func(entities *Bag[*Entity])) SystemOption {
	return func(s *EntitySystem) { s.hooks.processEntities = fn }
}

// WithComponentTypes declares the component types the system reads through mappers. World
// wires a cached mapper for each of them during Initialize, retrievable with Mapper.
func WithComponentTypes(names ...string) SystemOption {
	return func(s *EntitySystem) { s.componentTypes = append(s.componentTypes, names...) }
}

// EntitySystem keeps the set of active entities that match its aspect and drives the processing
// hooks over them.
//
// Membership changes only on world flushes. Added, changed and enabled entities are re-evaluated
// against the aspect. Deleted and disabled entities are removed without looking at the aspect.
type EntitySystem struct {
	systemType  string
	systemIndex int
	aspect      *Aspect
	dummy       bool
	actives     *Bag[*Entity]
	passive     bool

	world          *World
	logger         zerolog.Logger
	hooks          systemHooks
	componentTypes []string           // Component type names declared with WithComponentTypes
	mappers        map[string]*Mapper // Component type name -> mapper, wired by World.Initialize
}

var (
	_ System         = (*EntitySystem)(nil)
	_ EntityObserver = (*EntitySystem)(nil)
)

// NewEntitySystem creates a system of the given type that selects entities with aspect. The
// system type must be unique within a world. A nil aspect is treated as an empty one.
func NewEntitySystem(systemType string, aspect *Aspect, opts ...SystemOption) *EntitySystem {
	if aspect == nil {
		aspect = NewAspect()
	}

	s := &EntitySystem{
		systemType:  systemType,
		systemIndex: -1,
		aspect:      aspect,
		dummy:       aspect.IsDummy(),
		actives:     NewBag[*Entity](0),
		logger:      zerolog.Nop(),
		mappers:     make(map[string]*Mapper),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EntitySystem) entitySystem() *EntitySystem {
	return s
}

// Process runs begin, processEntities and end over the active entities if the processing gate
// allows it.
func (s *EntitySystem) Process() {
	if !s.CheckProcessing() {
		return
	}
	if s.hooks.begin != nil {
		s.hooks.begin()
	}
	s.processEntities(s.actives)
	if s.hooks.end != nil {
		s.hooks.end()
	}
}

// CheckProcessing reports whether the system would process on the next call to Process.
// Variants with accumulating gates advance their accumulators on every call.
func (s *EntitySystem) CheckProcessing() bool {
	if s.hooks.checkProcessing == nil {
		return false
	}
	return s.hooks.checkProcessing()
}

func (s *EntitySystem) processEntities(entities *Bag[*Entity]) {
	if s.hooks.processEntities == nil {
		panic(eris.Wrapf(ErrNotImplemented, "system %s has no entity processing hook", s.systemType))
	}
	s.hooks.processEntities(entities)
}

func (s *EntitySystem) initialize() {
	if s.hooks.initialize != nil {
		s.hooks.initialize()
	}
}

// check re-evaluates whether e belongs to the system and inserts or removes it accordingly.
// Systems with a dummy aspect never hold entities.
func (s *EntitySystem) check(e *Entity) {
	if s.dummy {
		return
	}

	contains := e.SystemBits().Get(s.systemIndex)
	interested := s.aspect.Interested(e.ComponentBits())

	switch {
	case interested && !contains:
		s.insert(e)
	case !interested && contains:
		s.remove(e)
	}
}

func (s *EntitySystem) insert(e *Entity) {
	assert.That(s.systemIndex >= 0, "system %s must be added to a world before it holds entities", s.systemType)
	s.actives.Add(e)
	e.SystemBits().Set(s.systemIndex)
	if s.hooks.inserted != nil {
		s.hooks.inserted(e)
	}
}

func (s *EntitySystem) remove(e *Entity) {
	s.actives.RemoveElement(e)
	e.SystemBits().Clear(s.systemIndex)
	if s.hooks.removed != nil {
		s.hooks.removed(e)
	}
}

func (s *EntitySystem) removeIfActive(e *Entity) {
	if e.SystemBits().Get(s.systemIndex) {
		s.remove(e)
	}
}

func (s *EntitySystem) Added(e *Entity)    { s.check(e) }
func (s *EntitySystem) Changed(e *Entity)  { s.check(e) }
func (s *EntitySystem) Enabled(e *Entity)  { s.check(e) }
func (s *EntitySystem) Deleted(e *Entity)  { s.removeIfActive(e) }
func (s *EntitySystem) Disabled(e *Entity) { s.removeIfActive(e) }

// Actives returns the entities currently in the system. The bag is owned by the system.
func (s *EntitySystem) Actives() *Bag[*Entity] {
	return s.actives
}

// Aspect returns the aspect the system selects entities with.
func (s *EntitySystem) Aspect() *Aspect {
	return s.aspect
}

// IsPassive reports whether World.Process skips the system.
func (s *EntitySystem) IsPassive() bool {
	return s.passive
}

// SetPassive marks the system as passive. Passive systems still track entities but are processed
// only when their owner calls Process.
func (s *EntitySystem) SetPassive(passive bool) {
	s.passive = passive
}

// SystemIndex returns the bit position of the system in entity system bits, or -1 before the
// system is added to a world.
func (s *EntitySystem) SystemIndex() int {
	return s.systemIndex
}

// Type returns the system type name.
func (s *EntitySystem) Type() string {
	return s.systemType
}

func (s *EntitySystem) World() *World {
	return s.world
}

// Logger returns the system's logger, tagged with the system type once the system is added to a
// world.
func (s *EntitySystem) Logger() *zerolog.Logger {
	return &s.logger
}

// Mapper returns the mapper wired for a component type declared with WithComponentTypes, or nil
// before the world is initialized.
func (s *EntitySystem) Mapper(componentName string) *Mapper {
	return s.mappers[componentName]
}
