package analysis

import "github.com/fplhub/fpl-analytics/internal/fpl"

// WeekPoints resolves the points a player scored in one gameweek from their
// season history. A round with no record resolves to 0 — the player did not
// play, was not yet in the dataset, or the round is in the future. This holds
// uniformly at every processed gameweek. Double gameweeks produce two records
// for the same round; both count.
func WeekPoints(history []fpl.RoundScore, gameweek int) int {
	total := 0
	for _, r := range history {
		if r.Round == gameweek {
			total += r.TotalPoints
		}
	}
	return total
}

// captainMultiplier returns the active-points multiplier for a captained
// pick: 3 under triple captain, 2 otherwise.
func captainMultiplier(chip Chip) int {
	if chip.Kind == ChipTripleCaptain {
		return 3
	}
	return 2
}
