package contracts

import (
	"time"

	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// SportModule is the pluggable interface for a stats provider's sport
type SportModule interface {
	// Identification
	GetSportKey() string    // "baseball_mlb"
	GetDisplayName() string // "MLB"
	GetStatsGroup() string  // "hitting"
	GetGameType() string    // "R" (regular season)

	// Configuration
	GetPollingConfig() PollingConfig
	IsEnabled() bool
	IsCurrentSeason(season int) bool

	// Data parsing (provider payloads decoded as generic JSON)
	ParsePlayer(rawData map[string]interface{}) (*PlayerInfo, error)
	ParseSeasonLine(player models.Player, season int, person *PlayerInfo, rawStats map[string]interface{}) (*models.SeasonLine, error)
	ParseGameLog(rawData map[string]interface{}) ([]models.GameBoxScore, error)
	FallbackSeasonLine(player models.Player, season int) *models.SeasonLine

	// Validation
	ValidateSeason(season int) error
}

// PlayerInfo is the biographical data the provider returns for a player
type PlayerInfo struct {
	ID        int
	FullName  string
	BirthDate string // "1994-07-05"
	TeamName  string
	TeamAbbr  string
}

// PollingConfig defines sport-specific polling behavior
type PollingConfig struct {
	InSeasonInterval  time.Duration // refresh cadence for the current season
	OffSeasonInterval time.Duration // refresh cadence for completed seasons
	Enabled           bool          // Feature flag per sport
}
