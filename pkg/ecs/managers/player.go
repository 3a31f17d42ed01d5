package managers

import (
	"github.com/argus-labs/artemis/pkg/ecs"
	"github.com/google/uuid"
)

// PlayerManager records which player owns an entity.
type PlayerManager struct {
	ecs.BaseManager

	playerByEntity   map[uuid.UUID]string
	entitiesByPlayer map[string]*ecs.Bag[*ecs.Entity]
}

var _ ecs.Manager = (*PlayerManager)(nil)

func NewPlayerManager() *PlayerManager {
	return &PlayerManager{
		playerByEntity:   make(map[uuid.UUID]string),
		entitiesByPlayer: make(map[string]*ecs.Bag[*ecs.Entity]),
	}
}

// SetPlayer makes player the owner of e, replacing any previous owner.
func (m *PlayerManager) SetPlayer(e *ecs.Entity, player string) {
	m.RemoveFromPlayer(e)

	m.playerByEntity[e.UUID()] = player
	entities, ok := m.entitiesByPlayer[player]
	if !ok {
		entities = ecs.NewBag[*ecs.Entity](0)
		m.entitiesByPlayer[player] = entities
	}
	entities.Add(e)
}

// EntitiesOfPlayer returns the entities owned by player, in no particular order.
func (m *PlayerManager) EntitiesOfPlayer(player string) []*ecs.Entity {
	entities, ok := m.entitiesByPlayer[player]
	if !ok {
		return nil
	}
	return entities.Slice()
}

// RemoveFromPlayer clears the owner of e.
func (m *PlayerManager) RemoveFromPlayer(e *ecs.Entity) {
	player, ok := m.playerByEntity[e.UUID()]
	if !ok {
		return
	}
	delete(m.playerByEntity, e.UUID())
	if entities, ok := m.entitiesByPlayer[player]; ok {
		entities.RemoveElement(e)
	}
}

// Player returns the owner of e and whether it has one.
func (m *PlayerManager) Player(e *ecs.Entity) (string, bool) {
	player, ok := m.playerByEntity[e.UUID()]
	return player, ok
}

func (m *PlayerManager) Deleted(e *ecs.Entity) {
	m.RemoveFromPlayer(e)
}
