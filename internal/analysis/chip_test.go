package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChip(t *testing.T) {
	tests := []struct {
		raw  string
		kind ChipKind
	}{
		{"", ChipNone},
		{"bboost", ChipBenchBoost},
		{"3xc", ChipTripleCaptain},
		{"wildcard", ChipOther},
		{"freehit", ChipOther},
	}
	for _, tt := range tests {
		chip := ParseChip(tt.raw)
		assert.Equal(t, tt.kind, chip.Kind, "raw %q", tt.raw)
	}
}

func TestParseChipKeepsUnknownLabel(t *testing.T) {
	chip := ParseChip("manager")
	assert.Equal(t, ChipOther, chip.Kind)
	assert.Equal(t, "manager", chip.Label)
	assert.Equal(t, "manager", chip.String())
}
