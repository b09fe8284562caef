package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string   `env:"SERVER_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:8501" envSeparator:","`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6380"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// PostgresConfig holds the archive database configuration
// An empty DSN disables the archive
type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

// MLBConfig holds MLB Stats API configuration
type MLBConfig struct {
	BaseURL string        `env:"MLB_API_URL" envDefault:"https://statsapi.mlb.com/api/v1"`
	Timeout time.Duration `env:"MLB_API_TIMEOUT" envDefault:"10s"`
}

// PollingConfig controls background refreshes
type PollingConfig struct {
	Enabled bool  `env:"POLLING_ENABLED" envDefault:"true"`
	Seasons []int `env:"SEASONS" envDefault:"2025,2024,2023" envSeparator:","`
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	MLB      MLBConfig
	Polling  PollingConfig
	Players  []models.Player
}

// environment is the env-tagged view of Config; the roster is parsed separately
type environment struct {
	Server   ServerConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	MLB      MLBConfig
	Polling  PollingConfig
	Players  string `env:"PLAYERS" envDefault:"660271:Shohei Ohtani:LAD,592450:Aaron Judge:NYY"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var raw environment
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	players, err := ParsePlayers(raw.Players)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server:   raw.Server,
		Redis:    raw.Redis,
		Postgres: raw.Postgres,
		MLB:      raw.MLB,
		Polling:  raw.Polling,
		Players:  players,
	}

	if len(cfg.Polling.Seasons) == 0 {
		return nil, fmt.Errorf("SEASONS must list at least one season")
	}

	return cfg, nil
}

// ParsePlayers parses a roster of the form "id:name:team,id:name:team"
func ParsePlayers(roster string) ([]models.Player, error) {
	var players []models.Player
	seen := make(map[int]bool)

	for _, entry := range strings.Split(roster, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid player entry %q: want id:name:team", entry)
		}

		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid player id in %q", entry)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate player id %d", id)
		}
		seen[id] = true

		players = append(players, models.Player{
			ID:   id,
			Name: strings.TrimSpace(parts[1]),
			Team: strings.TrimSpace(parts[2]),
		})
	}

	if len(players) == 0 {
		return nil, fmt.Errorf("PLAYERS must list at least one player")
	}

	return players, nil
}
