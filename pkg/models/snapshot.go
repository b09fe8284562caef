package models

import "time"

// CumulativeSnapshot is the season-to-date hitting line after one game
type CumulativeSnapshot struct {
	Date       string `json:"date"`
	GameNumber int    `json:"game_number"` // 1-based, counts emitted snapshots only

	CumulativeAtBats      int `json:"cumulative_at_bats"`
	CumulativeHits        int `json:"cumulative_hits"`
	CumulativeBaseOnBalls int `json:"cumulative_base_on_balls"`
	CumulativeHitByPitch  int `json:"cumulative_hit_by_pitch"`
	CumulativeSacFlies    int `json:"cumulative_sac_flies"`
	CumulativeTotalBases  int `json:"cumulative_total_bases"`

	BattingAverage     float64 `json:"batting_average"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OnBasePlusSlugging float64 `json:"on_base_plus_slugging"`
}

// Trend is the cumulative series for one player-season
type Trend struct {
	PlayerID  int                  `json:"player_id"`
	Season    int                  `json:"season"`
	HasData   bool                 `json:"has_data"`
	Snapshots []CumulativeSnapshot `json:"snapshots"`
	SeasonOPS float64              `json:"season_ops"` // OPS of the last snapshot
	UpdatedAt time.Time            `json:"updated_at"`
}
