package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionFromElementType(t *testing.T) {
	for code, want := range map[int]Position{
		1: PositionGoalkeeper,
		2: PositionDefender,
		3: PositionMidfielder,
		4: PositionForward,
	} {
		got, err := PositionFromElementType(code)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestPositionFromElementTypeRejectsUnknownCodes(t *testing.T) {
	for _, code := range []int{0, 5, -1, 99} {
		_, err := PositionFromElementType(code)
		assert.ErrorIs(t, err, ErrUnknownPosition, "code %d", code)
	}
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "GKP", PositionGoalkeeper.String())
	assert.Equal(t, "DEF", PositionDefender.String())
	assert.Equal(t, "MID", PositionMidfielder.String())
	assert.Equal(t, "FWD", PositionForward.String())
}

func TestParsePositionSlug(t *testing.T) {
	tests := []struct {
		slug string
		want Position
		ok   bool
	}{
		{"gkp", PositionGoalkeeper, true},
		{"def", PositionDefender, true},
		{"mid", PositionMidfielder, true},
		{"fwd", PositionForward, true},
		{"GKP", PositionGoalkeeper, true},
		{"striker", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePositionSlug(tt.slug)
		assert.Equal(t, tt.ok, ok, "slug %q", tt.slug)
		if tt.ok {
			assert.Equal(t, tt.want, got, "slug %q", tt.slug)
		}
	}
}
