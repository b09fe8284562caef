package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nwk5097-a11y/mlb-app/internal/cache"
	"github.com/nwk5097-a11y/mlb-app/internal/metrics"
	"github.com/nwk5097-a11y/mlb-app/internal/registry"
	"github.com/nwk5097-a11y/mlb-app/internal/store"
	"github.com/nwk5097-a11y/mlb-app/pkg/contracts"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
	"github.com/nwk5097-a11y/mlb-app/pkg/statmath"
)

var (
	// ErrUnknownPlayer is returned for ids outside the configured roster
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrInvalidSeason is returned for seasons the sport module rejects
	ErrInvalidSeason = errors.New("invalid season")
)

// StatsProvider fetches raw stats payloads
type StatsProvider interface {
	FetchPerson(ctx context.Context, playerID int) (map[string]interface{}, error)
	FetchSeasonStats(ctx context.Context, playerID, season int, group string) (map[string]interface{}, error)
	FetchGameLog(ctx context.Context, playerID, season int, group, gameType string) (map[string]interface{}, error)
}

// Cache stores derived results between refreshes
type Cache interface {
	ReadTrend(ctx context.Context, playerID, season int) (*models.Trend, error)
	WriteTrend(ctx context.Context, trend *models.Trend) error
	ReadSeasonLine(ctx context.Context, playerID, season int) (*models.SeasonLine, error)
	WriteSeasonLine(ctx context.Context, line *models.SeasonLine) error
}

// Publisher announces refreshed series
type Publisher interface {
	PublishTrendUpdate(ctx context.Context, trend *models.Trend) error
}

// TrendService serves season lines and cumulative trends for the roster
type TrendService struct {
	registry  *registry.Registry
	module    contracts.SportModule
	provider  StatsProvider
	cache     Cache
	publisher Publisher
	archive   store.TrendArchive // nil when archiving is disabled
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configures optional TrendService collaborators
type Option func(*TrendService)

// WithPublisher publishes refreshed trends
func WithPublisher(p Publisher) Option {
	return func(s *TrendService) { s.publisher = p }
}

// WithArchive persists refreshed trends and serves them when the provider is down
func WithArchive(a store.TrendArchive) Option {
	return func(s *TrendService) { s.archive = a }
}

// WithMetrics records refresh metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *TrendService) { s.metrics = m }
}

// New creates a trend service
func New(reg *registry.Registry, module contracts.SportModule, provider StatsProvider, c Cache, opts ...Option) *TrendService {
	s := &TrendService{
		registry: reg,
		module:   module,
		provider: provider,
		cache:    c,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Players returns the configured roster
func (s *TrendService) Players() []models.Player {
	return s.registry.All()
}

func (s *TrendService) resolve(playerID, season int) (models.Player, error) {
	player, err := s.registry.Get(playerID)
	if err != nil {
		return models.Player{}, fmt.Errorf("%w: %d", ErrUnknownPlayer, playerID)
	}
	if err := s.module.ValidateSeason(season); err != nil {
		return models.Player{}, fmt.Errorf("%w: %v", ErrInvalidSeason, err)
	}
	return player, nil
}

// SeasonLine returns a player's season summary
// Upstream failures yield the roster fallback line rather than an error
func (s *TrendService) SeasonLine(ctx context.Context, playerID, season int) (*models.SeasonLine, error) {
	player, err := s.resolve(playerID, season)
	if err != nil {
		return nil, err
	}

	line, err := s.cache.ReadSeasonLine(ctx, playerID, season)
	s.metrics.ObserveCache("season", err == nil)
	if err == nil {
		return line, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("[%s] Error reading cached season %d/%d: %v", s.module.GetSportKey(), playerID, season, err)
	}

	return s.loadSeasonLine(ctx, player, season), nil
}

// loadSeasonLine fetches and caches a season line, falling back to the roster entry
func (s *TrendService) loadSeasonLine(ctx context.Context, player models.Player, season int) *models.SeasonLine {
	sportKey := s.module.GetSportKey()

	rawPerson, err := s.provider.FetchPerson(ctx, player.ID)
	if err != nil {
		log.Printf("[%s] Error fetching player %d: %v", sportKey, player.ID, err)
		return s.module.FallbackSeasonLine(player, season)
	}

	person, err := s.module.ParsePlayer(rawPerson)
	if err != nil {
		log.Printf("[%s] Error parsing player %d: %v", sportKey, player.ID, err)
		person = nil
	}

	rawStats, err := s.provider.FetchSeasonStats(ctx, player.ID, season, s.module.GetStatsGroup())
	if err != nil {
		log.Printf("[%s] Error fetching season stats %d/%d: %v", sportKey, player.ID, season, err)
		return s.module.FallbackSeasonLine(player, season)
	}

	line, err := s.module.ParseSeasonLine(player, season, person, rawStats)
	if err != nil {
		log.Printf("[%s] No season line for %d/%d: %v", sportKey, player.ID, season, err)
		return s.module.FallbackSeasonLine(player, season)
	}

	if err := s.cache.WriteSeasonLine(ctx, line); err != nil {
		log.Printf("[%s] Error caching season %d/%d: %v", sportKey, player.ID, season, err)
	}

	return line
}

// SeasonTable returns season lines for every roster player plus a summary
func (s *TrendService) SeasonTable(ctx context.Context, season int) (*models.SeasonTable, error) {
	if err := s.module.ValidateSeason(season); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeason, err)
	}

	players := s.registry.All()
	lines := make([]models.SeasonLine, 0, len(players))
	for _, p := range players {
		line, err := s.SeasonLine(ctx, p.ID, season)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	return &models.SeasonTable{
		Season:  season,
		Lines:   lines,
		Summary: statmath.Summarize(lines),
	}, nil
}

// Trend returns a player's cumulative series, from cache when fresh
func (s *TrendService) Trend(ctx context.Context, playerID, season int) (*models.Trend, error) {
	player, err := s.resolve(playerID, season)
	if err != nil {
		return nil, err
	}

	trend, err := s.cache.ReadTrend(ctx, playerID, season)
	s.metrics.ObserveCache("trend", err == nil)
	if err == nil {
		return trend, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("[%s] Error reading cached trend %d/%d: %v", s.module.GetSportKey(), playerID, season, err)
	}

	trend, err = s.buildTrend(ctx, player, season)
	if err != nil {
		if archived, ok := s.archivedTrend(ctx, player, season); ok {
			log.Printf("[%s] Serving archived trend %d/%d: %v", s.module.GetSportKey(), playerID, season, err)
			return archived, nil
		}
		return nil, err
	}

	if err := s.cache.WriteTrend(ctx, trend); err != nil {
		log.Printf("[%s] Error caching trend %d/%d: %v", s.module.GetSportKey(), playerID, season, err)
	}

	return trend, nil
}

// Refresh re-fetches a player-season, then caches, archives and publishes it
func (s *TrendService) Refresh(ctx context.Context, playerID, season int) (err error) {
	start := s.now()
	defer func() {
		s.metrics.ObserveRefresh(s.now().Sub(start).Seconds(), err)
	}()

	player, err := s.resolve(playerID, season)
	if err != nil {
		return err
	}
	sportKey := s.module.GetSportKey()

	s.loadSeasonLine(ctx, player, season)

	trend, err := s.buildTrend(ctx, player, season)
	if err != nil {
		return err
	}

	if err := s.cache.WriteTrend(ctx, trend); err != nil {
		log.Printf("[%s] Error caching trend %d/%d: %v", sportKey, playerID, season, err)
	}

	if s.archive != nil && trend.HasData {
		if err := s.archive.SaveTrend(ctx, trend); err != nil {
			log.Printf("[%s] Error archiving trend %d/%d: %v", sportKey, playerID, season, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTrendUpdate(ctx, trend); err != nil {
			log.Printf("[%s] Error publishing trend %d/%d: %v", sportKey, playerID, season, err)
		}
	}

	return nil
}

// buildTrend fetches the game log and aggregates it
func (s *TrendService) buildTrend(ctx context.Context, player models.Player, season int) (*models.Trend, error) {
	raw, err := s.provider.FetchGameLog(ctx, player.ID, season, s.module.GetStatsGroup(), s.module.GetGameType())
	if err != nil {
		return nil, fmt.Errorf("fetching game log: %w", err)
	}

	games, err := s.module.ParseGameLog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing game log: %w", err)
	}

	trend := &models.Trend{
		PlayerID:  player.ID,
		Season:    season,
		Snapshots: []models.CumulativeSnapshot{},
		UpdatedAt: s.now().UTC(),
	}

	snapshots, err := statmath.Aggregate(games)
	switch {
	case errors.Is(err, statmath.ErrNoData):
		s.metrics.ObserveSnapshots(0)
		return trend, nil
	case err != nil:
		return nil, fmt.Errorf("aggregating game log: %w", err)
	}

	s.metrics.ObserveSnapshots(len(snapshots))

	last, _ := statmath.SeasonToDate(snapshots)
	trend.HasData = true
	trend.Snapshots = snapshots
	trend.SeasonOPS = last.OnBasePlusSlugging
	return trend, nil
}

func (s *TrendService) archivedTrend(ctx context.Context, player models.Player, season int) (*models.Trend, bool) {
	if s.archive == nil {
		return nil, false
	}

	snapshots, archivedAt, err := s.archive.LoadTrend(ctx, player.ID, season)
	if err != nil || len(snapshots) == 0 {
		return nil, false
	}

	last, _ := statmath.SeasonToDate(snapshots)
	return &models.Trend{
		PlayerID:  player.ID,
		Season:    season,
		HasData:   true,
		Snapshots: snapshots,
		SeasonOPS: last.OnBasePlusSlugging,
		UpdatedAt: archivedAt,
	}, true
}
