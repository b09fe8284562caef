package models

// Player is a roster entry
type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"` // "LAD"
}

// SeasonLine is a player's single-season hitting summary
// Age and WAR are nil when the provider does not report them
// HasAverage is false when the provider sent a placeholder AVG such as ".---"
type SeasonLine struct {
	PlayerID    int      `json:"player_id"`
	Name        string   `json:"name"`
	Team        string   `json:"team"`
	Season      int      `json:"season"`
	Age         *int     `json:"age"`
	GamesPlayed int      `json:"games_played"`
	AtBats      int      `json:"at_bats"`
	Average     float64  `json:"avg"`
	HasAverage  bool     `json:"has_avg"`
	OnBase      float64  `json:"obp"`
	Slugging    float64  `json:"slg"`
	OPS         float64  `json:"ops"`
	HomeRuns    int      `json:"home_runs"`
	RBI         int      `json:"rbi"`
	WAR         *float64 `json:"war"`
	Fallback    bool     `json:"fallback,omitempty"` // true when built from the roster after an upstream failure

	DisplayStats []DisplayStat `json:"display_stats,omitempty"`
}

// DisplayStat provides formatted stat display info
// Frontend uses this to render stats without knowing sport semantics
type DisplayStat struct {
	Label    string `json:"label"`    // "AVG", "HR"
	Value    string `json:"value"`    // ".310", "44"
	Category string `json:"category"` // "Rate", "Power"
}

// RosterSummary aggregates season lines across the roster
type RosterSummary struct {
	Players       int     `json:"players"`
	TotalHomeRuns int     `json:"total_home_runs"`
	TotalRBI      int     `json:"total_rbi"`
	MeanAverage   float64 `json:"mean_avg"`
	HasAverage    bool    `json:"has_avg"`
}

// SeasonTable is the roster-wide hitting table for one season
type SeasonTable struct {
	Season  int           `json:"season"`
	Lines   []SeasonLine  `json:"players"`
	Summary RosterSummary `json:"summary"`
}
