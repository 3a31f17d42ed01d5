// Package managers provides auxiliary entity indexes built on the ecs.Manager contract.
//
// Every manager drops an entity from its index when the entity's deletion is flushed. Entities are
// tracked by uuid, so an index never confuses a deleted entity with a newer one that reuses its id.
//
// Usage:
//
//	world, _ := ecs.NewWorld()
//	tags := managers.NewTagManager()
//	_ = world.SetManager(tags)
//
//	player := world.CreateEntity()
//	tags.Register("player", player)
//
// The package provides:
//   - TagManager: unique string tag per entity
//   - GroupManager: many-to-many entity groups
//   - PlayerManager: owning player per entity
//   - TeamManager: team per player
package managers

import (
	"slices"

	"github.com/argus-labs/artemis/pkg/ecs"
	"github.com/google/uuid"
)

// TagManager binds unique tags to entities, e.g. "player" or "camera". A tag names at most one
// entity and an entity carries at most one tag.
type TagManager struct {
	ecs.BaseManager

	entitiesByTag map[string]*ecs.Entity
	tagsByEntity  map[uuid.UUID]string
}

var _ ecs.Manager = (*TagManager)(nil)

func NewTagManager() *TagManager {
	return &TagManager{
		entitiesByTag: make(map[string]*ecs.Entity),
		tagsByEntity:  make(map[uuid.UUID]string),
	}
}

// Register tags e with tag. The tag moves to e if another entity had it, and e loses its
// previous tag.
func (m *TagManager) Register(tag string, e *ecs.Entity) {
	if previous, ok := m.entitiesByTag[tag]; ok {
		delete(m.tagsByEntity, previous.UUID())
	}
	if previousTag, ok := m.tagsByEntity[e.UUID()]; ok {
		delete(m.entitiesByTag, previousTag)
	}
	m.entitiesByTag[tag] = e
	m.tagsByEntity[e.UUID()] = tag
}

// Unregister removes tag. Unknown tags are ignored.
func (m *TagManager) Unregister(tag string) {
	e, ok := m.entitiesByTag[tag]
	if !ok {
		return
	}
	delete(m.entitiesByTag, tag)
	delete(m.tagsByEntity, e.UUID())
}

func (m *TagManager) IsRegistered(tag string) bool {
	_, ok := m.entitiesByTag[tag]
	return ok
}

// Entity returns the entity tagged with tag, or nil.
func (m *TagManager) Entity(tag string) *ecs.Entity {
	return m.entitiesByTag[tag]
}

// Tag returns the tag of e and whether it has one.
func (m *TagManager) Tag(e *ecs.Entity) (string, bool) {
	tag, ok := m.tagsByEntity[e.UUID()]
	return tag, ok
}

// RegisteredTags returns every registered tag in sorted order.
func (m *TagManager) RegisteredTags() []string {
	tags := make([]string, 0, len(m.entitiesByTag))
	for tag := range m.entitiesByTag {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

func (m *TagManager) Deleted(e *ecs.Entity) {
	tag, ok := m.tagsByEntity[e.UUID()]
	if !ok {
		return
	}
	delete(m.tagsByEntity, e.UUID())
	delete(m.entitiesByTag, tag)
}
