package managers

import "github.com/argus-labs/artemis/pkg/ecs"

// TeamManager assigns players to teams. It indexes player names, not entities, so entity
// deletions don't affect it. Combine it with PlayerManager to go from an entity to its team.
type TeamManager struct {
	ecs.BaseManager

	playersByTeam map[string]*ecs.Bag[string]
	teamByPlayer  map[string]string
}

var _ ecs.Manager = (*TeamManager)(nil)

func NewTeamManager() *TeamManager {
	return &TeamManager{
		playersByTeam: make(map[string]*ecs.Bag[string]),
		teamByPlayer:  make(map[string]string),
	}
}

// Team returns the team of player and whether it has one.
func (m *TeamManager) Team(player string) (string, bool) {
	team, ok := m.teamByPlayer[player]
	return team, ok
}

// SetTeam moves player to team.
func (m *TeamManager) SetTeam(player, team string) {
	m.RemoveFromTeam(player)

	m.teamByPlayer[player] = team
	players, ok := m.playersByTeam[team]
	if !ok {
		players = ecs.NewBag[string](0)
		m.playersByTeam[team] = players
	}
	players.Add(player)
}

// Players returns the players in team, in no particular order.
func (m *TeamManager) Players(team string) []string {
	players, ok := m.playersByTeam[team]
	if !ok {
		return nil
	}
	return players.Slice()
}

// RemoveFromTeam takes player out of its team.
func (m *TeamManager) RemoveFromTeam(player string) {
	team, ok := m.teamByPlayer[player]
	if !ok {
		return
	}
	delete(m.teamByPlayer, player)
	if players, ok := m.playersByTeam[team]; ok {
		players.RemoveElement(player)
	}
}
