package registry

import (
	"fmt"
	"sort"

	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// Registry holds the configured player roster
type Registry struct {
	players map[int]models.Player
}

// New creates a registry from the configured players
func New(players []models.Player) *Registry {
	r := &Registry{
		players: make(map[int]models.Player, len(players)),
	}

	for _, p := range players {
		r.Register(p)
	}

	return r
}

// Register adds or replaces a player
func (r *Registry) Register(player models.Player) {
	r.players[player.ID] = player
}

// Get retrieves a player by MLB id
func (r *Registry) Get(playerID int) (models.Player, error) {
	player, ok := r.players[playerID]
	if !ok {
		return models.Player{}, fmt.Errorf("player not found: %d", playerID)
	}
	return player, nil
}

// All returns every registered player ordered by id
func (r *Registry) All() []models.Player {
	players := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players
}

// IDs returns all registered player ids in ascending order
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
