package managers

import (
	"github.com/argus-labs/artemis/pkg/ecs"
	"github.com/google/uuid"
)

// GroupManager puts entities into named groups, e.g. "enemies" or "pickups". An entity can be in
// any number of groups and a group holds any number of entities.
type GroupManager struct {
	ecs.BaseManager

	entitiesByGroup map[string]*ecs.Bag[*ecs.Entity]
	groupsByEntity  map[uuid.UUID]*ecs.Bag[string]
}

var _ ecs.Manager = (*GroupManager)(nil)

func NewGroupManager() *GroupManager {
	return &GroupManager{
		entitiesByGroup: make(map[string]*ecs.Bag[*ecs.Entity]),
		groupsByEntity:  make(map[uuid.UUID]*ecs.Bag[string]),
	}
}

// Add puts e into group. Adding an entity to a group it is already in does nothing.
func (m *GroupManager) Add(e *ecs.Entity, group string) {
	if m.IsInGroup(e, group) {
		return
	}

	entities, ok := m.entitiesByGroup[group]
	if !ok {
		entities = ecs.NewBag[*ecs.Entity](0)
		m.entitiesByGroup[group] = entities
	}
	entities.Add(e)

	groups, ok := m.groupsByEntity[e.UUID()]
	if !ok {
		groups = ecs.NewBag[string](0)
		m.groupsByEntity[e.UUID()] = groups
	}
	groups.Add(group)
}

// Remove takes e out of group.
func (m *GroupManager) Remove(e *ecs.Entity, group string) {
	if entities, ok := m.entitiesByGroup[group]; ok {
		entities.RemoveElement(e)
	}
	if groups, ok := m.groupsByEntity[e.UUID()]; ok {
		groups.RemoveElement(group)
		if groups.IsEmpty() {
			delete(m.groupsByEntity, e.UUID())
		}
	}
}

// RemoveFromAllGroups takes e out of every group it is in.
func (m *GroupManager) RemoveFromAllGroups(e *ecs.Entity) {
	groups, ok := m.groupsByEntity[e.UUID()]
	if !ok {
		return
	}
	for i := range groups.Size() {
		if entities, ok := m.entitiesByGroup[groups.Get(i)]; ok {
			entities.RemoveElement(e)
		}
	}
	delete(m.groupsByEntity, e.UUID())
}

// Entities returns the entities in group, in no particular order.
func (m *GroupManager) Entities(group string) []*ecs.Entity {
	entities, ok := m.entitiesByGroup[group]
	if !ok {
		return nil
	}
	return entities.Slice()
}

// Groups returns the groups e is in, or nil if it is in none.
func (m *GroupManager) Groups(e *ecs.Entity) []string {
	groups, ok := m.groupsByEntity[e.UUID()]
	if !ok {
		return nil
	}
	return groups.Slice()
}

func (m *GroupManager) IsInAnyGroup(e *ecs.Entity) bool {
	groups, ok := m.groupsByEntity[e.UUID()]
	return ok && !groups.IsEmpty()
}

func (m *GroupManager) IsInGroup(e *ecs.Entity, group string) bool {
	groups, ok := m.groupsByEntity[e.UUID()]
	return ok && groups.Contains(group)
}

func (m *GroupManager) Deleted(e *ecs.Entity) {
	m.RemoveFromAllGroups(e)
}
