package analysis

// ChipKind classifies a gameweek's active chip. Only BenchBoost and
// TripleCaptain change scoring; everything else (wildcard, free hit)
// is carried as Other with its raw label.
type ChipKind int

const (
	ChipNone ChipKind = iota
	ChipBenchBoost
	ChipTripleCaptain
	ChipOther
)

// Chip is an active chip resolved from the raw upstream label.
type Chip struct {
	Kind  ChipKind
	Label string // raw upstream label, empty for ChipNone
}

// Upstream chip labels.
const (
	labelBenchBoost    = "bboost"
	labelTripleCaptain = "3xc"
)

// ParseChip maps the raw active_chip field to the closed enumeration.
func ParseChip(raw string) Chip {
	switch raw {
	case "":
		return Chip{Kind: ChipNone}
	case labelBenchBoost:
		return Chip{Kind: ChipBenchBoost, Label: raw}
	case labelTripleCaptain:
		return Chip{Kind: ChipTripleCaptain, Label: raw}
	default:
		return Chip{Kind: ChipOther, Label: raw}
	}
}

func (c Chip) String() string {
	switch c.Kind {
	case ChipNone:
		return "none"
	case ChipBenchBoost:
		return "bench boost"
	case ChipTripleCaptain:
		return "triple captain"
	}
	return c.Label
}
