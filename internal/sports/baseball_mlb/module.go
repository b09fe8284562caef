package baseball_mlb

import (
	"errors"
	"fmt"
	"time"

	"github.com/nwk5097-a11y/mlb-app/pkg/contracts"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// ErrNoSeasonStats is returned when the provider has no season split for a player
var ErrNoSeasonStats = errors.New("no season stats")

// First MLB season the Stats API covers
const firstSeason = 1876

// MLBModule implements SportModule for MLB hitting stats
type MLBModule struct {
	enabled bool
	now     func() time.Time
}

// New creates a new MLB sport module
func New() *MLBModule {
	return &MLBModule{enabled: true, now: time.Now}
}

func (m *MLBModule) GetSportKey() string {
	return "baseball_mlb"
}

func (m *MLBModule) GetDisplayName() string {
	return "MLB"
}

func (m *MLBModule) GetStatsGroup() string {
	return "hitting"
}

func (m *MLBModule) GetGameType() string {
	return "R"
}

func (m *MLBModule) GetPollingConfig() contracts.PollingConfig {
	return contracts.PollingConfig{
		InSeasonInterval:  15 * time.Minute,
		OffSeasonInterval: 6 * time.Hour,
		Enabled:           m.enabled,
	}
}

func (m *MLBModule) IsEnabled() bool {
	return m.enabled
}

// ParsePlayer parses a /people/{id} response
func (m *MLBModule) ParsePlayer(rawData map[string]interface{}) (*contracts.PlayerInfo, error) {
	person, ok := firstMap(extractArray(rawData, "people"))
	if !ok {
		return nil, fmt.Errorf("no person found in response")
	}

	team := extractMap(person, "currentTeam")
	info := &contracts.PlayerInfo{
		ID:        extractInt(person, "id"),
		FullName:  extractString(person, "fullName"),
		BirthDate: extractString(person, "birthDate"),
		TeamName:  extractString(team, "name"),
		TeamAbbr:  extractString(team, "abbreviation"),
	}

	// Hydrated responses carry the abbreviation, plain ones only the name
	if info.TeamAbbr == "" && info.TeamName != "" {
		info.TeamAbbr = GetTeamAbbreviation(info.TeamName)
	}

	return info, nil
}

// ParseSeasonLine parses a statsSingleSeason response into a season line
func (m *MLBModule) ParseSeasonLine(player models.Player, season int, person *contracts.PlayerInfo, rawStats map[string]interface{}) (*models.SeasonLine, error) {
	group, ok := firstMap(extractArray(rawStats, "stats"))
	if !ok {
		return nil, ErrNoSeasonStats
	}
	split, ok := firstMap(extractArray(group, "splits"))
	if !ok {
		return nil, ErrNoSeasonStats
	}
	stat := extractMap(split, "stat")

	line := &models.SeasonLine{
		PlayerID:    player.ID,
		Name:        player.Name,
		Team:        player.Team,
		Season:      season,
		GamesPlayed: extractInt(stat, "gamesPlayed"),
		AtBats:      extractInt(stat, "atBats"),
		OnBase:      extractFloat(stat, "obp"),
		Slugging:    extractFloat(stat, "slg"),
		OPS:         extractFloat(stat, "ops"),
		HomeRuns:    extractInt(stat, "homeRuns"),
		RBI:         extractInt(stat, "rbi"),
	}

	line.Average, line.HasAverage = extractRate(stat, "avg")

	if _, ok := stat["war"]; ok {
		war := extractFloat(stat, "war")
		line.WAR = &war
	}

	if person != nil {
		if person.FullName != "" {
			line.Name = person.FullName
		}
		if person.TeamAbbr != "" {
			line.Team = person.TeamAbbr
		}
		if year, ok := parseBirthYear(person.BirthDate); ok {
			age := season - year
			line.Age = &age
		}
	}

	line.DisplayStats = ToDisplayStats(line)
	return line, nil
}

// ParseGameLog parses a gameLog response into per-game box scores
// Missing counting stats default to 0 and a missing date becomes ""
func (m *MLBModule) ParseGameLog(rawData map[string]interface{}) ([]models.GameBoxScore, error) {
	group, ok := firstMap(extractArray(rawData, "stats"))
	if !ok {
		return []models.GameBoxScore{}, nil
	}

	splits := extractArray(group, "splits")
	games := make([]models.GameBoxScore, 0, len(splits))

	for _, splitInterface := range splits {
		split, ok := splitInterface.(map[string]interface{})
		if !ok {
			continue
		}

		stat := extractMap(split, "stat")
		games = append(games, models.GameBoxScore{
			Date:        extractString(split, "date"),
			GamePK:      extractInt(extractMap(split, "game"), "gamePk"),
			Opponent:    extractString(extractMap(split, "opponent"), "name"),
			AtBats:      extractInt(stat, "atBats"),
			Hits:        extractInt(stat, "hits"),
			BaseOnBalls: extractInt(stat, "baseOnBalls"),
			HitByPitch:  extractInt(stat, "hitByPitch"),
			SacFlies:    extractInt(stat, "sacFlies"),
			Doubles:     extractInt(stat, "doubles"),
			Triples:     extractInt(stat, "triples"),
			HomeRuns:    extractInt(stat, "homeRuns"),
			TotalBases:  extractInt(stat, "totalBases"),
		})
	}

	return games, nil
}

// FallbackSeasonLine returns the zeroed roster line shown when the provider fails
func (m *MLBModule) FallbackSeasonLine(player models.Player, season int) *models.SeasonLine {
	return FallbackSeasonLine(player, season)
}

// ValidateSeason rejects seasons the Stats API cannot have data for
func (m *MLBModule) ValidateSeason(season int) error {
	latest := m.now().Year() + 1
	if season < firstSeason || season > latest {
		return fmt.Errorf("invalid MLB season: %d", season)
	}
	return nil
}

// IsCurrentSeason reports whether season is the calendar year in progress
func (m *MLBModule) IsCurrentSeason(season int) bool {
	return season == m.now().Year()
}
