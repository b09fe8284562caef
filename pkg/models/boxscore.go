package models

// GameBoxScore is one player's hitting line for a single game
// Counting stats default to 0 when the provider omits them
type GameBoxScore struct {
	Date        string `json:"date"`         // "2025-04-01", may be empty
	GamePK      int    `json:"game_pk,omitempty"`
	Opponent    string `json:"opponent,omitempty"`
	AtBats      int    `json:"at_bats"`
	Hits        int    `json:"hits"`
	BaseOnBalls int    `json:"base_on_balls"`
	HitByPitch  int    `json:"hit_by_pitch"`
	SacFlies    int    `json:"sac_flies"`
	Doubles     int    `json:"doubles"`
	Triples     int    `json:"triples"`
	HomeRuns    int    `json:"home_runs"`
	TotalBases  int    `json:"total_bases"` // 0 when not supplied
}
