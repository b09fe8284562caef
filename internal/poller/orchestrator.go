package poller

import (
	"context"
	"log"
	"sync"

	"github.com/nwk5097-a11y/mlb-app/internal/registry"
	"github.com/nwk5097-a11y/mlb-app/pkg/contracts"
)

// Orchestrator manages pollers for every roster player and season
type Orchestrator struct {
	registry  *registry.Registry
	module    contracts.SportModule
	refresher Refresher
	seasons   []int
	pollers   []*SeasonPoller
}

// NewOrchestrator creates a new polling orchestrator
func NewOrchestrator(
	reg *registry.Registry,
	module contracts.SportModule,
	refresher Refresher,
	seasons []int,
) *Orchestrator {
	return &Orchestrator{
		registry:  reg,
		module:    module,
		refresher: refresher,
		seasons:   seasons,
	}
}

// Start launches pollers and blocks until ctx is cancelled and all have stopped
func (o *Orchestrator) Start(ctx context.Context) {
	if !o.module.IsEnabled() {
		log.Printf("[%s] Sport disabled, not polling", o.module.GetSportKey())
		return
	}

	var wg sync.WaitGroup

	players := o.registry.All()
	log.Printf("[%s] Starting pollers for %d players x %d seasons", o.module.GetSportKey(), len(players), len(o.seasons))

	for _, player := range players {
		for _, season := range o.seasons {
			if err := o.module.ValidateSeason(season); err != nil {
				log.Printf("[%s] Skipping season: %v", o.module.GetSportKey(), err)
				continue
			}

			poller := NewSeasonPoller(o.module, o.refresher, player, season)
			o.pollers = append(o.pollers, poller)

			wg.Add(1)
			go func(p *SeasonPoller) {
				defer wg.Done()
				p.Run(ctx)
			}(poller)
		}
	}

	wg.Wait()
	log.Printf("[%s] All pollers stopped", o.module.GetSportKey())
}
