package baseball_mlb

import (
	"fmt"
	"strconv"

	"github.com/nwk5097-a11y/mlb-app/pkg/models"
	"github.com/nwk5097-a11y/mlb-app/pkg/statmath"
)

// ToDisplayStats converts a season line to formatted display stats for UI
func ToDisplayStats(line *models.SeasonLine) []models.DisplayStat {
	age := "-"
	if line.Age != nil {
		age = strconv.Itoa(*line.Age)
	}
	avg := "-"
	if line.HasAverage {
		avg = statmath.FormatRate(line.Average)
	}
	war := "-"
	if line.WAR != nil {
		war = fmt.Sprintf("%.1f", *line.WAR)
	}

	return []models.DisplayStat{
		{Label: "Team", Value: line.Team, Category: "Bio"},
		{Label: "Age", Value: age, Category: "Bio"},
		{Label: "G", Value: strconv.Itoa(line.GamesPlayed), Category: "Playing Time"},
		{Label: "AB", Value: strconv.Itoa(line.AtBats), Category: "Playing Time"},
		{Label: "AVG", Value: avg, Category: "Rate"},
		{Label: "OBP", Value: statmath.FormatRate(line.OnBase), Category: "Rate"},
		{Label: "SLG", Value: statmath.FormatRate(line.Slugging), Category: "Rate"},
		{Label: "OPS", Value: statmath.FormatRate(line.OPS), Category: "Rate"},
		{Label: "HR", Value: strconv.Itoa(line.HomeRuns), Category: "Power"},
		{Label: "RBI", Value: strconv.Itoa(line.RBI), Category: "Production"},
		{Label: "WAR", Value: war, Category: "Value"},
	}
}

// FallbackSeasonLine returns a zeroed line built from the roster entry,
// used when the provider has nothing for the player
func FallbackSeasonLine(player models.Player, season int) *models.SeasonLine {
	line := &models.SeasonLine{
		PlayerID:   player.ID,
		Name:       player.Name,
		Team:       player.Team,
		Season:     season,
		HasAverage: true,
		Fallback:   true,
	}
	line.DisplayStats = ToDisplayStats(line)
	return line
}
