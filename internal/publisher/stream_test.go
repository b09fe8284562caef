package publisher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
	"github.com/redis/go-redis/v9"
)

func TestPublishTrendUpdate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	p := NewStreamPublisher(client, "baseball_mlb")
	ctx := context.Background()

	trend := &models.Trend{PlayerID: 592450, Season: 2025, HasData: true, SeasonOPS: 1.1449}
	if err := p.PublishTrendUpdate(ctx, trend); err != nil {
		t.Fatalf("PublishTrendUpdate: %v", err)
	}

	if p.StreamKey() != "stats.trend.baseball_mlb" {
		t.Errorf("unexpected stream key %s", p.StreamKey())
	}

	msgs, err := client.XRange(ctx, p.StreamKey(), "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	values := msgs[0].Values
	if values["player_id"] != "592450" || values["season"] != "2025" || values["ops"] != "1.145" {
		t.Errorf("unexpected values: %v", values)
	}
	if _, err := uuid.Parse(values["event_id"].(string)); err != nil {
		t.Errorf("expected uuid event id, got %v", values["event_id"])
	}

	var decoded models.Trend
	if err := json.Unmarshal([]byte(values["data"].(string)), &decoded); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if decoded.PlayerID != 592450 || !decoded.HasData {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}
