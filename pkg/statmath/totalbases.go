package statmath

import "github.com/nwk5097-a11y/mlb-app/pkg/models"

// ResolveTotalBases returns the provider's total bases when positive,
// otherwise derives them from the hit breakdown.
// Inconsistent input (hits < doubles+triples+homeRuns) yields negative
// singles and is not clamped.
func ResolveTotalBases(box models.GameBoxScore) int {
	if box.TotalBases > 0 {
		return box.TotalBases
	}

	singles := box.Hits - box.Doubles - box.Triples - box.HomeRuns
	return singles + 2*box.Doubles + 3*box.Triples + 4*box.HomeRuns
}
