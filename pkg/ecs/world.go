package ecs

import (
	"reflect"

	"github.com/argus-labs/artemis/pkg/assert"
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// World is the root of the ECS runtime. It owns the entity and component managers, the ordered
// lists of managers and systems, and the queues of entity lifecycle changes.
//
// Lifecycle changes (add, change, delete, enable, disable) are queued and only reach managers and
// systems when Process flushes them, so a system never sees membership change in the middle of its
// own iteration. Component mutations on an entity apply to storage immediately.
//
// A World is not safe for concurrent use.
type World struct {
	logger zerolog.Logger
	config worldConfig

	entityManager    *EntityManager
	componentManager *ComponentManager
	componentTypes   componentTypes
	mappers          map[int]*Mapper // Component type index -> cached mapper

	// Managers.
	managers       *Bag[Manager]
	managersByType map[reflect.Type]Manager

	// Systems.
	systems       *Bag[System]
	systemsByType map[string]System
	systemIndices map[string]int // System type -> system index, never released

	delta float64

	// Pending lifecycle changes, flushed by Process.
	added         *Bag[*Entity]
	changed       *Bag[*Entity]
	deleted       *Bag[*Entity]
	enabled       *Bag[*Entity]
	disabled      *Bag[*Entity]
	pendingDelete bitmap.Bitmap // Ids already in the deleted queue

	initialized   bool
	currentSystem string // Type of the system being processed, for panic reports
}

// NewWorld creates a world configured from the environment and the given options. The entity
// manager and component manager are registered as the first two managers.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg, err := loadWorldConfig()
	if err != nil {
		return nil, err
	}

	options := worldOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	options.apply(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid world options")
	}

	logger := log.Logger.With().Str("module", "ecs").Logger()
	if options.logger != nil {
		logger = *options.logger
	}

	capacity := cfg.BagCapacity
	w := &World{
		logger:           logger.Level(cfg.level()),
		config:           cfg,
		entityManager:    newEntityManager(capacity),
		componentManager: newComponentManager(capacity),
		componentTypes:   newComponentTypes(),
		mappers:          make(map[int]*Mapper),
		managers:         NewBag[Manager](0),
		managersByType:   make(map[reflect.Type]Manager),
		systems:          NewBag[System](0),
		systemsByType:    make(map[string]System),
		systemIndices:    make(map[string]int),
		added:            NewBag[*Entity](capacity),
		changed:          NewBag[*Entity](capacity),
		deleted:          NewBag[*Entity](capacity),
		enabled:          NewBag[*Entity](capacity),
		disabled:         NewBag[*Entity](capacity),
		pendingDelete:    bitmap.Bitmap{},
	}

	if err := w.SetManager(w.entityManager); err != nil {
		return nil, err
	}
	if err := w.SetManager(w.componentManager); err != nil {
		return nil, err
	}

	return w, nil
}

// Logger returns the world's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

func (w *World) EntityManager() *EntityManager {
	return w.entityManager
}

func (w *World) ComponentManager() *ComponentManager {
	return w.componentManager
}

// -------------------------------------------------------------------------------------------------
// Managers
// -------------------------------------------------------------------------------------------------

// SetManager registers m. Managers are notified in registration order, before any system. Only one
// manager per Go type can be registered. A manager set after Initialize is initialized right away.
func (w *World) SetManager(m Manager) error {
	typ := reflect.TypeOf(m)
	if _, exists := w.managersByType[typ]; exists {
		return eris.Wrapf(ErrManagerAlreadyRegistered, "manager %s", typ)
	}

	m.SetWorld(w)
	w.managersByType[typ] = m
	w.managers.Add(m)
	w.logger.Debug().Str("manager", typ.String()).Msg("manager registered")

	if w.initialized {
		m.Initialize()
	}
	return nil
}

// Manager returns the manager registered with the given Go type, or nil.
func (w *World) Manager(typ reflect.Type) Manager {
	return w.managersByType[typ]
}

// GetManager returns the manager of type T registered on w.
func GetManager[T Manager](w *World) (T, bool) {
	m, ok := w.managersByType[reflect.TypeFor[T]()].(T)
	return m, ok
}

// DeleteManager unregisters m. The entity manager and component manager can't be deleted.
func (w *World) DeleteManager(m Manager) {
	assert.That(m != Manager(w.entityManager) && m != Manager(w.componentManager),
		"cannot delete the entity manager or the component manager")

	typ := reflect.TypeOf(m)
	if w.managersByType[typ] != m {
		return
	}
	delete(w.managersByType, typ)
	w.managers.RemoveElement(m)
}

// Managers returns the registered managers in notification order.
func (w *World) Managers() []Manager {
	return w.managers.Slice()
}

// -------------------------------------------------------------------------------------------------
// Systems
// -------------------------------------------------------------------------------------------------

// AddSystem registers s. Systems are notified after managers and processed in registration order.
// Passive systems track entities but are skipped by Process and must be processed by their owner.
//
// A system type gets the same system index for the lifetime of the world, even if the system is
// deleted and added again. A system added after Initialize is initialized right away.
func (w *World) AddSystem(s System, passive bool) error {
	es := s.entitySystem()
	if es.systemType == "" {
		return eris.New("system type cannot be empty")
	}
	if _, exists := w.systemsByType[es.systemType]; exists {
		return eris.Wrapf(ErrSystemAlreadyRegistered, "system %s", es.systemType)
	}

	es.world = w
	es.passive = passive
	es.systemIndex = w.systemIndexFor(es.systemType)
	es.logger = w.logger.With().Str("system", es.systemType).Logger()
	if es.actives.IsEmpty() && es.actives.Capacity() < w.config.BagCapacity {
		es.actives = NewBag[*Entity](w.config.BagCapacity)
	}

	w.systemsByType[es.systemType] = s
	w.systems.Add(s)
	w.logger.Debug().
		Str("system", es.systemType).
		Int("index", es.systemIndex).
		Bool("passive", passive).
		Msg("system registered")

	if w.initialized {
		w.initializeSystem(es)
	}
	return nil
}

func (w *World) systemIndexFor(systemType string) int {
	if index, exists := w.systemIndices[systemType]; exists {
		return index
	}
	index := len(w.systemIndices)
	w.systemIndices[systemType] = index
	return index
}

// System returns the system registered with the given type, or nil.
func (w *World) System(systemType string) System {
	return w.systemsByType[systemType]
}

// GetSystem returns the first registered system of Go type T.
func GetSystem[T System](w *World) (T, bool) {
	for i := range w.systems.Size() {
		if s, ok := w.systems.Get(i).(T); ok {
			return s, true
		}
	}
	var zero T
	return zero, false
}

// DeleteSystem unregisters s. Its active entities are released without calling its removed hook.
func (w *World) DeleteSystem(s System) {
	es := s.entitySystem()
	if w.systemsByType[es.systemType] != s {
		return
	}

	for i := range es.actives.Size() {
		es.actives.Get(i).SystemBits().Clear(es.systemIndex)
	}
	es.actives.Clear()

	delete(w.systemsByType, es.systemType)
	w.systems.RemoveElement(s)
}

// Systems returns the registered systems in processing order.
func (w *World) Systems() []System {
	return w.systems.Slice()
}

// -------------------------------------------------------------------------------------------------
// Entities
// -------------------------------------------------------------------------------------------------

// CreateEntity creates a new entity. It stays invisible to managers and systems until it is added
// with AddEntity and the world is processed.
func (w *World) CreateEntity() *Entity {
	return w.entityManager.CreateEntityInstance()
}

// Entity returns the active entity with the given id, or nil.
func (w *World) Entity(id int) *Entity {
	return w.entityManager.Entity(id)
}

// AddEntity queues e to be added on the next Process.
func (w *World) AddEntity(e *Entity) {
	w.added.Add(e)
}

// ChangedEntity queues e so systems re-evaluate it on the next Process. Call it after adding or
// removing components on an entity that is already in the world.
func (w *World) ChangedEntity(e *Entity) {
	w.changed.Add(e)
}

// DeleteEntity queues e to be deleted on the next Process. Deleting the same entity more than once
// in a tick has no further effect.
func (w *World) DeleteEntity(e *Entity) {
	id := uint32(e.ID()) //nolint:gosec // entity ids are non-negative
	if w.pendingDelete.Contains(id) {
		return
	}
	w.pendingDelete.Set(id)
	w.deleted.Add(e)
}

// Enable queues e to be enabled on the next Process.
func (w *World) Enable(e *Entity) {
	w.enabled.Add(e)
}

// Disable queues e to be disabled on the next Process.
func (w *World) Disable(e *Entity) {
	w.disabled.Add(e)
}

// -------------------------------------------------------------------------------------------------
// Components
// -------------------------------------------------------------------------------------------------

// ComponentType returns the component type registered under name, registering it on first use.
func (w *World) ComponentType(name string) ComponentType {
	return w.componentTypes.typeFor(name)
}

// ComponentTypes returns the registered component types in index order.
func (w *World) ComponentTypes() []ComponentType {
	return w.componentTypes.all()
}

// Mapper returns the cached mapper of component type t.
func (w *World) Mapper(t ComponentType) *Mapper {
	if m, exists := w.mappers[t.Index()]; exists {
		return m
	}
	m := newMapper(t, w.componentManager)
	w.mappers[t.Index()] = m
	return m
}

// -------------------------------------------------------------------------------------------------
// Tick
// -------------------------------------------------------------------------------------------------

// SetDelta sets the time elapsed since the last tick. Interval and delayed systems accumulate it.
func (w *World) SetDelta(delta float64) {
	w.delta = delta
}

// Delta returns the time elapsed since the last tick.
func (w *World) Delta() float64 {
	return w.delta
}

// Initialize initializes every manager and then every system, in registration order. Each system's
// declared component types are wired to cached mappers before its initialize hook runs. It must be
// called once before the first Process.
func (w *World) Initialize() error {
	if w.initialized {
		return eris.Wrap(ErrAlreadyInitialized, "cannot initialize twice")
	}

	for i := range w.managers.Size() {
		w.managers.Get(i).Initialize()
	}
	for i := range w.systems.Size() {
		w.initializeSystem(w.systems.Get(i).entitySystem())
	}
	w.initialized = true

	w.LogWorld(zerolog.DebugLevel)
	return nil
}

func (w *World) initializeSystem(es *EntitySystem) {
	for _, name := range es.componentTypes {
		es.mappers[name] = w.Mapper(w.ComponentType(name))
	}
	es.initialize()
}

// Process flushes the queued lifecycle changes and then processes every non-passive system.
//
// Each queue is flushed in the order added, changed, disabled, enabled, deleted. Every entity is
// delivered to all managers and then to all systems. Afterwards the storage of deleted entities is
// purged and their ids become reusable.
//
// A panic raised by a system is logged with the system type and propagated.
func (w *World) Process() {
	defer w.handleProcessPanic()

	w.logger.Trace().
		Int("added", w.added.Size()).
		Int("changed", w.changed.Size()).
		Int("disabled", w.disabled.Size()).
		Int("enabled", w.enabled.Size()).
		Int("deleted", w.deleted.Size()).
		Msg("flushing entity changes")

	w.flush(w.added, EntityObserver.Added)
	w.flush(w.changed, EntityObserver.Changed)
	w.flush(w.disabled, EntityObserver.Disabled)
	w.flush(w.enabled, EntityObserver.Enabled)
	w.flush(w.deleted, EntityObserver.Deleted)
	w.pendingDelete.Clear()

	w.componentManager.Clean()
	w.entityManager.reclaimIDs()

	for i := range w.systems.Size() {
		es := w.systems.Get(i).entitySystem()
		if es.passive {
			continue
		}
		w.currentSystem = es.systemType
		es.Process()
	}
	w.currentSystem = ""
}

// flush delivers every queued entity to the managers and then the systems, and empties the queue.
// Entities queued by an observer during the flush are delivered in the same flush.
func (w *World) flush(queue *Bag[*Entity], notify func(EntityObserver, *Entity)) {
	for i := 0; i < queue.Size(); i++ {
		e := queue.Get(i)
		for j := range w.managers.Size() {
			notify(w.managers.Get(j), e)
		}
		for j := range w.systems.Size() {
			es := w.systems.Get(j).entitySystem()
			w.currentSystem = es.systemType
			notify(es, e)
		}
		w.currentSystem = ""
	}
	queue.Clear()
}

func (w *World) handleProcessPanic() {
	if r := recover(); r != nil {
		w.logger.Error().
			Str("system", w.currentSystem).
			Interface("panic", r).
			Msg("system panicked during process")
		w.currentSystem = ""
		panic(r)
	}
}
