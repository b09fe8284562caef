package statmath_test

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/nwk5097-a11y/mlb-app/pkg/models"
	"github.com/nwk5097-a11y/mlb-app/pkg/statmath"
)

const epsilon = 0.0005

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestResolveTotalBases(t *testing.T) {
	tests := []struct {
		name string
		box  models.GameBoxScore
		want int
	}{
		{"Provider value wins", models.GameBoxScore{Hits: 1, TotalBases: 4}, 4},
		{"Derived from hit breakdown", models.GameBoxScore{Hits: 3, Doubles: 1, HomeRuns: 1}, 7},
		{"All singles", models.GameBoxScore{Hits: 2}, 2},
		{"No hits", models.GameBoxScore{}, 0},
		{"Triple only", models.GameBoxScore{Hits: 1, Triples: 1}, 3},
		{"Negative provider value falls back", models.GameBoxScore{Hits: 1, TotalBases: -2}, 1},
		// hits undercount extra-base hits: singles = 1-2 = -1, TB = -1 + 4 = 3
		{"Inconsistent hits are not clamped", models.GameBoxScore{Hits: 1, Doubles: 2}, 3},
		// singles = 0-1 = -1, TB = -1 + 2 = 1
		{"Extra-base hit without hits", models.GameBoxScore{Doubles: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statmath.ResolveTotalBases(tt.box); got != tt.want {
				t.Errorf("ResolveTotalBases() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAggregate_SingleGame(t *testing.T) {
	games := []models.GameBoxScore{
		{Date: "2025-04-01", AtBats: 4, Hits: 2, TotalBases: 3},
	}

	snapshots, err := statmath.Aggregate(games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snapshots))
	}

	s := snapshots[0]
	if s.Date != "2025-04-01" || s.GameNumber != 1 {
		t.Errorf("unexpected date/game number: %s #%d", s.Date, s.GameNumber)
	}
	if s.CumulativeAtBats != 4 || s.CumulativeHits != 2 {
		t.Errorf("unexpected counts: AB=%d H=%d", s.CumulativeAtBats, s.CumulativeHits)
	}

	checks := []struct {
		label string
		got   float64
		want  float64
	}{
		{"AVG", s.BattingAverage, 0.500},
		{"OBP", s.OnBasePercentage, 0.500},
		{"SLG", s.SluggingPercentage, 0.750},
		{"OPS", s.OnBasePlusSlugging, 1.250},
	}
	for _, c := range checks {
		if !approxEqual(c.got, c.want) {
			t.Errorf("%s = %f, want %f", c.label, c.got, c.want)
		}
	}
}

func TestAggregate_WalkOnlyGameIsNotNumbered(t *testing.T) {
	games := []models.GameBoxScore{
		{Date: "2025-04-02", AtBats: 3, Hits: 1, TotalBases: 1},
		{Date: "2025-04-01", AtBats: 0, BaseOnBalls: 1},
	}

	snapshots, err := statmath.Aggregate(games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snapshots))
	}

	s := snapshots[0]
	if s.Date != "2025-04-02" {
		t.Errorf("expected snapshot for 2025-04-02, got %s", s.Date)
	}
	if s.GameNumber != 1 {
		t.Errorf("expected game number 1, got %d", s.GameNumber)
	}
	if s.CumulativeAtBats != 3 || s.CumulativeHits != 1 || s.CumulativeBaseOnBalls != 1 {
		t.Errorf("unexpected counts: AB=%d H=%d BB=%d", s.CumulativeAtBats, s.CumulativeHits, s.CumulativeBaseOnBalls)
	}
	if !approxEqual(s.OnBasePercentage, 0.500) {
		t.Errorf("OBP = %f, want 0.500", s.OnBasePercentage)
	}
	if !approxEqual(s.SluggingPercentage, 0.333) {
		t.Errorf("SLG = %f, want 0.333", s.SluggingPercentage)
	}
	if !approxEqual(s.OnBasePlusSlugging, 0.833) {
		t.Errorf("OPS = %f, want 0.833", s.OnBasePlusSlugging)
	}
}

func TestAggregate_ZeroAtBatGameAfterFirstAtBatIsNumbered(t *testing.T) {
	games := []models.GameBoxScore{
		{Date: "2025-04-01", AtBats: 3, Hits: 1, TotalBases: 1},
		{Date: "2025-04-02", AtBats: 0, BaseOnBalls: 1},
		{Date: "2025-04-03", AtBats: 4, Hits: 1, TotalBases: 1},
	}

	snapshots, err := statmath.Aggregate(games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
	}

	tests := []struct {
		date   string
		number int
		atBats int
		walks  int
		avg    float64
		obp    float64
	}{
		{"2025-04-01", 1, 3, 0, 0.333, 0.333},
		{"2025-04-02", 2, 3, 1, 0.333, 0.500},
		{"2025-04-03", 3, 7, 1, 0.286, 0.375},
	}

	for i, tt := range tests {
		s := snapshots[i]
		if s.Date != tt.date || s.GameNumber != tt.number {
			t.Errorf("snapshot %d: got %s #%d, want %s #%d", i, s.Date, s.GameNumber, tt.date, tt.number)
		}
		if s.CumulativeAtBats != tt.atBats || s.CumulativeBaseOnBalls != tt.walks {
			t.Errorf("snapshot %d: AB=%d BB=%d, want AB=%d BB=%d", i, s.CumulativeAtBats, s.CumulativeBaseOnBalls, tt.atBats, tt.walks)
		}
		if !approxEqual(s.BattingAverage, tt.avg) || !approxEqual(s.OnBasePercentage, tt.obp) {
			t.Errorf("snapshot %d: AVG=%f OBP=%f, want %f/%f", i, s.BattingAverage, s.OnBasePercentage, tt.avg, tt.obp)
		}
	}
}

func TestAggregate_NoData(t *testing.T) {
	tests := []struct {
		name  string
		games []models.GameBoxScore
	}{
		{"Nil input", nil},
		{"Empty input", []models.GameBoxScore{}},
		{"Only walks", []models.GameBoxScore{
			{Date: "2025-04-01", BaseOnBalls: 2},
			{Date: "2025-04-02", HitByPitch: 1, SacFlies: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshots, err := statmath.Aggregate(tt.games)
			if !errors.Is(err, statmath.ErrNoData) {
				t.Fatalf("expected ErrNoData, got %v", err)
			}
			if snapshots != nil {
				t.Errorf("expected nil snapshots, got %d", len(snapshots))
			}
		})
	}
}

func TestAggregate_OrdersByDateAndKeepsDoubleheaderOrder(t *testing.T) {
	games := []models.GameBoxScore{
		{Date: "2025-04-03", GamePK: 3, AtBats: 4, Hits: 1},
		{Date: "2025-04-01", GamePK: 1, AtBats: 4, Hits: 2},
		{Date: "2025-04-02", GamePK: 21, AtBats: 3, Hits: 0},
		{Date: "2025-04-02", GamePK: 22, AtBats: 5, Hits: 3},
	}

	snapshots, err := statmath.Aggregate(games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAtBats := []int{4, 7, 12, 16}
	wantHits := []int{2, 2, 5, 6}
	wantDates := []string{"2025-04-01", "2025-04-02", "2025-04-02", "2025-04-03"}

	if len(snapshots) != len(wantAtBats) {
		t.Fatalf("expected %d snapshots, got %d", len(wantAtBats), len(snapshots))
	}
	for i, s := range snapshots {
		if s.GameNumber != i+1 {
			t.Errorf("snapshot %d: game number %d", i, s.GameNumber)
		}
		if s.Date != wantDates[i] {
			t.Errorf("snapshot %d: date %s, want %s", i, s.Date, wantDates[i])
		}
		if s.CumulativeAtBats != wantAtBats[i] || s.CumulativeHits != wantHits[i] {
			t.Errorf("snapshot %d: AB=%d H=%d, want AB=%d H=%d",
				i, s.CumulativeAtBats, s.CumulativeHits, wantAtBats[i], wantHits[i])
		}
	}

	// input order untouched
	if games[0].GamePK != 3 {
		t.Error("Aggregate mutated its input")
	}
}

func TestAggregate_MissingDatesSortFirst(t *testing.T) {
	games := []models.GameBoxScore{
		{Date: "2025-04-01", AtBats: 4, Hits: 1},
		{Date: "", AtBats: 2, Hits: 2},
	}

	snapshots, err := statmath.Aggregate(games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshots[0].Date != "" || snapshots[0].CumulativeAtBats != 2 {
		t.Errorf("expected undated game first, got %+v", snapshots[0])
	}
	if snapshots[1].CumulativeAtBats != 6 || snapshots[1].CumulativeHits != 3 {
		t.Errorf("unexpected totals: %+v", snapshots[1])
	}
}

func TestAggregate_ZeroOnBaseDenominatorIsImpossibleAfterGate(t *testing.T) {
	// single at-bat out: OBP denominator 1, OBP 0
	snapshots, err := statmath.Aggregate([]models.GameBoxScore{{Date: "2025-04-01", AtBats: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := snapshots[0]
	if s.OnBasePercentage != 0 || s.SluggingPercentage != 0 || s.BattingAverage != 0 || s.OnBasePlusSlugging != 0 {
		t.Errorf("expected all-zero rates, got %+v", s)
	}
}

func TestAggregate_NegativeTotalBasesPropagate(t *testing.T) {
	games := []models.GameBoxScore{
		// singles = 0 - 0 - 0 - 1 = -1, TB = -1 + 4 = 3
		{Date: "2025-04-01", AtBats: 4, HomeRuns: 1},
		// singles = 0 - 2 = -2, TB = -2 + 4 = 2
		{Date: "2025-04-02", AtBats: 2, Doubles: 2, Hits: 0},
		// a negative hits count from the provider drives TB below zero
		{Date: "2025-04-03", AtBats: 1, Hits: -9},
	}

	snapshots, err := statmath.Aggregate(games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := snapshots[len(snapshots)-1]
	if last.CumulativeTotalBases != 3+2-9 {
		t.Errorf("expected cumulative TB %d, got %d", 3+2-9, last.CumulativeTotalBases)
	}
	if last.SluggingPercentage >= 0 {
		t.Errorf("expected negative slugging to pass through, got %f", last.SluggingPercentage)
	}
}

func randomSeason(r *rand.Rand, n int) []models.GameBoxScore {
	games := make([]models.GameBoxScore, 0, n)
	for i := 0; i < n; i++ {
		hits := r.Intn(5)
		hr := r.Intn(hits + 1)
		doubles := r.Intn(hits - hr + 1)
		triples := r.Intn(hits - hr - doubles + 1)
		atBats := hits + r.Intn(4)
		if r.Intn(10) == 0 {
			atBats, hits, hr, doubles, triples = 0, 0, 0, 0, 0
		}

		game := models.GameBoxScore{
			Date:        fmtDate(i),
			AtBats:      atBats,
			Hits:        hits,
			BaseOnBalls: r.Intn(3),
			HitByPitch:  r.Intn(2),
			SacFlies:    r.Intn(2),
			Doubles:     doubles,
			Triples:     triples,
			HomeRuns:    hr,
		}
		if r.Intn(2) == 0 {
			game.TotalBases = statmath.ResolveTotalBases(game)
		}
		games = append(games, game)
	}
	return games
}

func fmtDate(i int) string {
	month := 4 + i/28
	day := 1 + i%28
	return "2025-" + twoDigits(month) + "-" + twoDigits(day)
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func TestAggregate_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		games := randomSeason(r, 1+r.Intn(120))

		snapshots, err := statmath.Aggregate(games)
		if errors.Is(err, statmath.ErrNoData) {
			continue
		}
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}

		for i, s := range snapshots {
			if s.CumulativeAtBats <= 0 {
				t.Fatalf("run %d: snapshot %d emitted with AB=%d", run, i, s.CumulativeAtBats)
			}
			if s.BattingAverage < 0 || s.BattingAverage > 1 {
				t.Errorf("run %d: AVG out of range: %f", run, s.BattingAverage)
			}
			if s.OnBasePercentage < 0 || s.OnBasePercentage > 1 {
				t.Errorf("run %d: OBP out of range: %f", run, s.OnBasePercentage)
			}
			if s.SluggingPercentage < 0 || s.SluggingPercentage > 4 {
				t.Errorf("run %d: SLG out of range: %f", run, s.SluggingPercentage)
			}
			if i == 0 {
				continue
			}
			prev := snapshots[i-1]
			if s.CumulativeAtBats < prev.CumulativeAtBats ||
				s.CumulativeHits < prev.CumulativeHits ||
				s.CumulativeBaseOnBalls < prev.CumulativeBaseOnBalls ||
				s.CumulativeHitByPitch < prev.CumulativeHitByPitch ||
				s.CumulativeSacFlies < prev.CumulativeSacFlies ||
				s.CumulativeTotalBases < prev.CumulativeTotalBases {
				t.Errorf("run %d: cumulative counts decreased at snapshot %d", run, i)
			}
		}

		// any input order gives the same series
		shuffled := make([]models.GameBoxScore, len(games))
		copy(shuffled, games)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		again, err := statmath.Aggregate(shuffled)
		if err != nil {
			t.Fatalf("run %d: unexpected error on shuffled input: %v", run, err)
		}
		if !reflect.DeepEqual(snapshots, again) {
			t.Errorf("run %d: shuffled input produced a different series", run)
		}
	}
}

func TestSeasonToDate(t *testing.T) {
	if _, ok := statmath.SeasonToDate(nil); ok {
		t.Error("expected no season-to-date value for empty series")
	}

	snapshots := []models.CumulativeSnapshot{
		{GameNumber: 1, OnBasePlusSlugging: 0.9},
		{GameNumber: 2, OnBasePlusSlugging: 1.1},
	}
	last, ok := statmath.SeasonToDate(snapshots)
	if !ok || last.GameNumber != 2 || last.OnBasePlusSlugging != 1.1 {
		t.Errorf("unexpected season-to-date snapshot: %+v", last)
	}
}
