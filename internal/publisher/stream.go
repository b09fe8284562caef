package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
	"github.com/redis/go-redis/v9"
)

// MaxStreamLen is the approximate cap on stream length
const MaxStreamLen = 1000

// StreamPublisher publishes trend updates to Redis streams
type StreamPublisher struct {
	client   *redis.Client
	sportKey string
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client, sportKey string) *StreamPublisher {
	return &StreamPublisher{
		client:   client,
		sportKey: sportKey,
	}
}

// StreamKey returns the stream trend updates are published to
func (p *StreamPublisher) StreamKey() string {
	return fmt.Sprintf("stats.trend.%s", p.sportKey)
}

// PublishTrendUpdate publishes a refreshed cumulative series
func (p *StreamPublisher) PublishTrendUpdate(ctx context.Context, trend *models.Trend) error {
	data, err := json.Marshal(trend)
	if err != nil {
		return fmt.Errorf("marshaling trend update: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.StreamKey(),
		MaxLen: MaxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"event_id":  uuid.NewString(),
			"data":      string(data),
			"player_id": strconv.Itoa(trend.PlayerID),
			"season":    strconv.Itoa(trend.Season),
			"ops":       strconv.FormatFloat(trend.SeasonOPS, 'f', 3, 64),
		},
	}).Err()
}
