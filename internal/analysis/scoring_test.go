package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fplhub/fpl-analytics/internal/fpl"
)

func TestWeekPoints(t *testing.T) {
	history := []fpl.RoundScore{
		{Round: 1, TotalPoints: 6},
		{Round: 2, TotalPoints: -1},
		{Round: 4, TotalPoints: 2},
		{Round: 4, TotalPoints: 9}, // double gameweek
	}

	tests := []struct {
		name     string
		gameweek int
		want     int
	}{
		{"played round", 1, 6},
		{"negative score", 2, -1},
		{"missing round resolves to zero", 3, 0},
		{"double gameweek sums both records", 4, 11},
		{"future round resolves to zero", 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekPoints(history, tt.gameweek))
		})
	}
}

func TestWeekPointsEmptyHistory(t *testing.T) {
	assert.Equal(t, 0, WeekPoints(nil, 1))
}

func TestCaptainMultiplier(t *testing.T) {
	assert.Equal(t, 3, captainMultiplier(Chip{Kind: ChipTripleCaptain}))
	assert.Equal(t, 2, captainMultiplier(Chip{Kind: ChipNone}))
	assert.Equal(t, 2, captainMultiplier(Chip{Kind: ChipBenchBoost}))
	assert.Equal(t, 2, captainMultiplier(Chip{Kind: ChipOther, Label: "wildcard"}))
}
