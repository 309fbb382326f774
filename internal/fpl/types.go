package fpl

// Payload types mirror the upstream FPL API field names. Only fields the
// service reads are declared; passthrough endpoints relay raw bytes and
// never decode.

// --------------------------------------------------------------------------
// Bootstrap (bootstrap-static)
// --------------------------------------------------------------------------

// Bootstrap is the provider's reference snapshot of teams, players, and
// gameweek metadata. Immutable once fetched; refreshed only on cache expiry.
type Bootstrap struct {
	Events  []Event  `json:"events"`
	Teams   []Team   `json:"teams"`
	Players []Player `json:"elements"`
}

// Event is one gameweek's metadata.
type Event struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
	IsNext    bool   `json:"is_next"`
	Finished  bool   `json:"finished"`
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Player is one element from the bootstrap set. Code (not ID) keys the
// official photo assets.
type Player struct {
	ID            int    `json:"id"`
	Code          int    `json:"code"`
	WebName       string `json:"web_name"`
	FirstName     string `json:"first_name"`
	SecondName    string `json:"second_name"`
	TeamID        int    `json:"team"`
	ElementType   int    `json:"element_type"` // 1=GKP 2=DEF 3=MID 4=FWD
	TotalPoints   int    `json:"total_points"`
	NowCost       int    `json:"now_cost"`
	Form          string `json:"form"`
	SelectedByPct string `json:"selected_by_percent"`
}

// CurrentEvent returns the id of the event flagged is_current, falling back
// to the last finished event when the season is between gameweeks.
func (b *Bootstrap) CurrentEvent() int {
	for _, ev := range b.Events {
		if ev.IsCurrent {
			return ev.ID
		}
	}
	last := 0
	for _, ev := range b.Events {
		if ev.Finished && ev.ID > last {
			last = ev.ID
		}
	}
	return last
}

// --------------------------------------------------------------------------
// Manager (entry)
// --------------------------------------------------------------------------

type Entry struct {
	ID              int    `json:"id"`
	FirstName       string `json:"player_first_name"`
	LastName        string `json:"player_last_name"`
	TeamName        string `json:"name"`
	OverallPoints   int    `json:"summary_overall_points"`
	OverallRank     int    `json:"summary_overall_rank"`
	CurrentGWPoints int    `json:"summary_event_points"`
}

type History struct {
	Current []HistoryEvent `json:"current"`
	Past    []PastSeason   `json:"past"`
	Chips   []ChipPlay     `json:"chips"`
}

// HistoryEvent is one gameweek's season record for a manager.
type HistoryEvent struct {
	Event         int `json:"event"`
	Points        int `json:"points"`
	TotalPoints   int `json:"total_points"`
	OverallRank   int `json:"overall_rank"`
	PointsOnBench int `json:"points_on_bench"`
}

type PastSeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

type ChipPlay struct {
	Name  string `json:"name"`
	Event int    `json:"event"`
}

// --------------------------------------------------------------------------
// Picks (entry/{id}/event/{gw}/picks)
// --------------------------------------------------------------------------

type GameweekPicks struct {
	ActiveChip string `json:"active_chip"`
	Picks      []Pick `json:"picks"`
}

// Pick assigns a player to a squad slot for one gameweek.
// Positions 1-11 are the starting eleven, 12-15 the bench.
type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

// --------------------------------------------------------------------------
// Player history (element-summary)
// --------------------------------------------------------------------------

type ElementSummary struct {
	History  []RoundScore `json:"history"`
	Fixtures []Fixture    `json:"fixtures"`
}

// RoundScore is one played round in a player's season history. A player can
// appear more than once for the same round in a double gameweek.
type RoundScore struct {
	Round       int `json:"round"`
	TotalPoints int `json:"total_points"`
	Minutes     int `json:"minutes"`
}

// Fixture is an upcoming match from a player's perspective.
type Fixture struct {
	Event      int  `json:"event"`
	TeamH      int  `json:"team_h"`
	TeamA      int  `json:"team_a"`
	IsHome     bool `json:"is_home"`
	Difficulty int  `json:"difficulty"`
}

// Opponent returns the opposing team id for the fixture.
func (f Fixture) Opponent() int {
	if f.IsHome {
		return f.TeamA
	}
	return f.TeamH
}

// --------------------------------------------------------------------------
// League standings (leagues-classic/{id}/standings)
// --------------------------------------------------------------------------

type Standings struct {
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		Results []StandingRow `json:"results"`
	} `json:"standings"`
}

type StandingRow struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	Total      int    `json:"total"`
}
