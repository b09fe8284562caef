package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nwk5097-a11y/mlb-app/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL matches the upstream refresh cadence of the stats pages
const DefaultTTL = 1 * time.Hour

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// RedisWriter handles reading and writing player stats in Redis
type RedisWriter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisWriter creates a new Redis writer; ttl <= 0 uses DefaultTTL
func NewRedisWriter(client *redis.Client, ttl time.Duration) *RedisWriter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisWriter{
		client: client,
		ttl:    ttl,
	}
}

func trendKey(playerID, season int) string {
	return fmt.Sprintf("mlb:trend:%d:%d", playerID, season)
}

func seasonKey(playerID, season int) string {
	return fmt.Sprintf("mlb:season:%d:%d", playerID, season)
}

// WriteTrend stores a player's cumulative series for a season
func (w *RedisWriter) WriteTrend(ctx context.Context, trend *models.Trend) error {
	data, err := json.Marshal(trend)
	if err != nil {
		return fmt.Errorf("marshaling trend: %w", err)
	}

	return w.client.Set(ctx, trendKey(trend.PlayerID, trend.Season), data, w.ttl).Err()
}

// ReadTrend retrieves a cached cumulative series
func (w *RedisWriter) ReadTrend(ctx context.Context, playerID, season int) (*models.Trend, error) {
	var trend models.Trend
	if err := w.read(ctx, trendKey(playerID, season), &trend); err != nil {
		return nil, err
	}
	return &trend, nil
}

// WriteSeasonLine stores a player's season summary
func (w *RedisWriter) WriteSeasonLine(ctx context.Context, line *models.SeasonLine) error {
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("marshaling season line: %w", err)
	}

	return w.client.Set(ctx, seasonKey(line.PlayerID, line.Season), data, w.ttl).Err()
}

// ReadSeasonLine retrieves a cached season summary
func (w *RedisWriter) ReadSeasonLine(ctx context.Context, playerID, season int) (*models.SeasonLine, error) {
	var line models.SeasonLine
	if err := w.read(ctx, seasonKey(playerID, season), &line); err != nil {
		return nil, err
	}
	return &line, nil
}

// Invalidate drops both cached entries for a player-season
func (w *RedisWriter) Invalidate(ctx context.Context, playerID, season int) error {
	return w.client.Del(ctx, trendKey(playerID, season), seasonKey(playerID, season)).Err()
}

func (w *RedisWriter) read(ctx context.Context, key string, v interface{}) error {
	data, err := w.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("reading %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", key, err)
	}
	return nil
}
