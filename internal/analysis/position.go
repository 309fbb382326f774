// Package analysis implements the manager analysis engine: picks and scoring
// resolution, the per-gameweek aggregation loop, and the report assembler.
package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Position is the closed set of squad positions. Values match the upstream
// element_type codes 1..4.
type Position int

const (
	PositionGoalkeeper Position = iota + 1
	PositionDefender
	PositionMidfielder
	PositionForward
)

// ErrUnknownPosition reports an element_type outside 1..4.
var ErrUnknownPosition = errors.New("unknown position code")

// Positions lists all positions in display order.
var Positions = []Position{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward}

// PositionFromElementType converts an upstream element_type code, rejecting
// unexpected values instead of indexing out of bounds.
func PositionFromElementType(code int) (Position, error) {
	if code < 1 || code > 4 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPosition, code)
	}
	return Position(code), nil
}

// ParsePositionSlug maps a route slug (gkp, def, mid, fwd) to a Position.
func ParsePositionSlug(slug string) (Position, bool) {
	switch strings.ToLower(slug) {
	case "gkp":
		return PositionGoalkeeper, true
	case "def":
		return PositionDefender, true
	case "mid":
		return PositionMidfielder, true
	case "fwd":
		return PositionForward, true
	}
	return 0, false
}

func (p Position) String() string {
	switch p {
	case PositionGoalkeeper:
		return "GKP"
	case PositionDefender:
		return "DEF"
	case PositionMidfielder:
		return "MID"
	case PositionForward:
		return "FWD"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}
