package ecs

// EntityObserver receives the lifecycle notifications flushed by World.Process. Notifications for
// a single flush arrive in the order added, changed, disabled, enabled, deleted.
type EntityObserver interface {
	Added(e *Entity)
	Changed(e *Entity)
	Deleted(e *Entity)
	Enabled(e *Entity)
	Disabled(e *Entity)
}

// Manager is a world-level observer that maintains an index over entities. Managers are notified
// before any system, in the order they were set on the world.
//
// Embed BaseManager to get no-op implementations of every method and override only the
// notifications the manager cares about.
type Manager interface {
	EntityObserver

	// Initialize is called once by World.Initialize.
	Initialize()

	// SetWorld is called when the manager is set on a world.
	SetWorld(w *World)
}

// BaseManager implements Manager with no-op notifications.
type BaseManager struct {
	world *World
}

var _ Manager = (*BaseManager)(nil)

func (m *BaseManager) Initialize() {}
func (m *BaseManager) Added(*Entity) {}
func (m *BaseManager) Changed(*Entity) {}
func (m *BaseManager) Deleted(*Entity) {}
func (m *BaseManager) Enabled(*Entity) {}
func (m *BaseManager) Disabled(*Entity) {}
func (m *BaseManager) SetWorld(w *World) { m.world = w }
func (m *BaseManager) World() *World { return m.world }
