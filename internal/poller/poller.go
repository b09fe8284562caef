package poller

import (
	"context"
	"log"
	"time"

	"github.com/nwk5097-a11y/mlb-app/pkg/contracts"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// Refresher re-fetches and stores one player-season
type Refresher interface {
	Refresh(ctx context.Context, playerID, season int) error
}

// SeasonPoller keeps one player-season fresh
type SeasonPoller struct {
	module    contracts.SportModule
	refresher Refresher
	player    models.Player
	season    int
	interval  time.Duration
}

// NewSeasonPoller creates a poller for a player-season
func NewSeasonPoller(module contracts.SportModule, refresher Refresher, player models.Player, season int) *SeasonPoller {
	return &SeasonPoller{
		module:    module,
		refresher: refresher,
		player:    player,
		season:    season,
		interval:  determinePollInterval(module, season),
	}
}

// Run starts the polling loop for this player-season
func (p *SeasonPoller) Run(ctx context.Context) {
	sportKey := p.module.GetSportKey()
	log.Printf("[%s] Starting poller for %s %d (every %v)", sportKey, p.player.Name, p.season, p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Do initial poll
	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Stopping poller for %s %d", sportKey, p.player.Name, p.season)
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce performs one refresh cycle
func (p *SeasonPoller) pollOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if err := p.refresher.Refresh(ctx, p.player.ID, p.season); err != nil {
		log.Printf("[%s] Error refreshing %s %d: %v", p.module.GetSportKey(), p.player.Name, p.season, err)
		return
	}

	log.Printf("[%s] Refreshed %s %d", p.module.GetSportKey(), p.player.Name, p.season)
}

// determinePollInterval polls the season in progress more often than finished ones
func determinePollInterval(module contracts.SportModule, season int) time.Duration {
	config := module.GetPollingConfig()

	if module.IsCurrentSeason(season) {
		return config.InSeasonInterval
	}
	return config.OffSeasonInterval
}
