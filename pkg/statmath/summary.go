package statmath

import (
	"fmt"
	"strings"

	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// Summarize totals home runs and RBI across season lines and averages AVG
// Lines without a numeric AVG are left out of the mean
func Summarize(lines []models.SeasonLine) models.RosterSummary {
	summary := models.RosterSummary{Players: len(lines)}

	var avgSum float64
	var counted int
	for _, line := range lines {
		summary.TotalHomeRuns += line.HomeRuns
		summary.TotalRBI += line.RBI
		if line.HasAverage {
			avgSum += line.Average
			counted++
		}
	}

	if counted > 0 {
		summary.MeanAverage = avgSum / float64(counted)
		summary.HasAverage = true
	}
	return summary
}

// FormatRate formats a rate stat to three decimals without a leading zero
// e.g. 0.3104 -> ".310", 1.0149 -> "1.015"
func FormatRate(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	if strings.HasPrefix(s, "-0.") {
		return "-" + s[2:]
	}
	return s
}
