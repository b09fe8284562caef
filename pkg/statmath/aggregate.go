package statmath

import (
	"errors"
	"sort"

	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// ErrNoData is returned when no game ever produces a positive at-bat total
var ErrNoData = errors.New("no games with at-bats")

// runningTotals holds the season-to-date counting stats
type runningTotals struct {
	atBats      int
	hits        int
	baseOnBalls int
	hitByPitch  int
	sacFlies    int
	totalBases  int
}

func (t *runningTotals) add(box models.GameBoxScore) {
	t.atBats += box.AtBats
	t.hits += box.Hits
	t.baseOnBalls += box.BaseOnBalls
	t.hitByPitch += box.HitByPitch
	t.sacFlies += box.SacFlies
	t.totalBases += ResolveTotalBases(box)
}

// Aggregate orders games by date and returns one cumulative snapshot per game,
// starting at the first game where cumulative at-bats become positive.
//
// Games are stable-sorted on the raw date string, so ISO dates sort
// chronologically and doubleheaders keep provider order. Missing dates sort
// as "" (first). The input slice is not modified.
func Aggregate(games []models.GameBoxScore) ([]models.CumulativeSnapshot, error) {
	if len(games) == 0 {
		return nil, ErrNoData
	}

	sorted := make([]models.GameBoxScore, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var totals runningTotals
	snapshots := make([]models.CumulativeSnapshot, 0, len(sorted))

	for _, game := range sorted {
		totals.add(game)

		// Nothing to report until the first at-bat
		if totals.atBats == 0 {
			continue
		}

		snapshots = append(snapshots, snapshot(game.Date, len(snapshots)+1, totals))
	}

	if len(snapshots) == 0 {
		return nil, ErrNoData
	}

	return snapshots, nil
}

// snapshot derives the rate stats from running totals; callers guarantee atBats != 0
func snapshot(date string, gameNumber int, t runningTotals) models.CumulativeSnapshot {
	atBats := float64(t.atBats)

	obp := 0.0
	if denom := t.atBats + t.baseOnBalls + t.hitByPitch + t.sacFlies; denom > 0 {
		obp = float64(t.hits+t.baseOnBalls+t.hitByPitch) / float64(denom)
	}
	slg := float64(t.totalBases) / atBats

	return models.CumulativeSnapshot{
		Date:                  date,
		GameNumber:            gameNumber,
		CumulativeAtBats:      t.atBats,
		CumulativeHits:        t.hits,
		CumulativeBaseOnBalls: t.baseOnBalls,
		CumulativeHitByPitch:  t.hitByPitch,
		CumulativeSacFlies:    t.sacFlies,
		CumulativeTotalBases:  t.totalBases,
		BattingAverage:        float64(t.hits) / atBats,
		OnBasePercentage:      obp,
		SluggingPercentage:    slg,
		OnBasePlusSlugging:    obp + slg,
	}
}

// SeasonToDate returns the last snapshot of a series
func SeasonToDate(snapshots []models.CumulativeSnapshot) (models.CumulativeSnapshot, bool) {
	if len(snapshots) == 0 {
		return models.CumulativeSnapshot{}, false
	}
	return snapshots[len(snapshots)-1], true
}
