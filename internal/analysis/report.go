package analysis

import (
	"sort"
	"strconv"

	"github.com/fplhub/fpl-analytics/internal/fpl"
)

// didNotPlay is the sentinel for absent past-season entries.
const didNotPlay = "Didn't Play"

// Report is the final analysis shape consumed by the front-end.
type Report struct {
	ManagerInfo     ManagerInfo       `json:"managerInfo"`
	PlayerStats     []PlayerStat      `json:"playerStats"`
	PositionSummary []PositionSummary `json:"positionSummary"`
	WeeklyPoints    []int             `json:"weeklyPoints"`
	WeeklyRanks     []int             `json:"weeklyRanks"`
	Last5GWsData    []GameweekView    `json:"last5GWsData,omitempty"`
	CurrentTeam     []SquadPlayer     `json:"currentTeam,omitempty"`
}

// ManagerInfo carries identity plus season and derived scalars.
type ManagerInfo struct {
	ID                     int         `json:"id"`
	Name                   string      `json:"name"`
	TeamName               string      `json:"teamName"`
	OverallRank            int         `json:"overallRank"`
	OverallPoints          int         `json:"overallPoints"`
	HighestPoints          int         `json:"highestPoints"`
	HighestPointsGW        int         `json:"highestPointsGW"`
	LowestPoints           int         `json:"lowestPoints"`
	LowestPointsGW         int         `json:"lowestPointsGW"`
	BestRank               int         `json:"bestRank"`
	BestRankGW             int         `json:"bestRankGW"`
	WorstRank              int         `json:"worstRank"`
	WorstRankGW            int         `json:"worstRankGW"`
	TotalPointsLostOnBench int         `json:"totalPointsLostOnBench"`
	TotalCaptaincyPoints   int         `json:"totalCaptaincyPoints"`
	PointDifference        int         `json:"pointDifference"`
	LeagueName             string      `json:"leagueName"`
	LastSeasonRank         string      `json:"lastSeasonRank"`
	SeasonBeforeLastRank   string      `json:"seasonBeforeLastRank"`
	ChipsUsed              []ChipUsage `json:"chipsUsed"`
}

type ChipUsage struct {
	Name     string `json:"name"`
	Gameweek int    `json:"gameweek"`
}

// PlayerStat is the per-player accumulation across all processed gameweeks.
type PlayerStat struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Team              string `json:"team"`
	Position          string `json:"position"`
	TotalPointsActive int    `json:"totalPointsActive"`
	GWInSquad         int    `json:"gwInSquad"`
	Starts            int    `json:"starts"`
	CappedPoints      int    `json:"cappedPoints"`
	PlayerPoints      int    `json:"playerPoints"`
}

// PositionSummary aggregates active points for one of GKP/DEF/MID/FWD.
type PositionSummary struct {
	Position    string           `json:"position"`
	TotalPoints int              `json:"totalPoints"`
	Players     []PositionPlayer `json:"players"`
}

type PositionPlayer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// GameweekView is one gameweek in the recent-window section.
type GameweekView struct {
	Gameweek int `json:"gameweek"`
	Points   int `json:"points"`
	Rank     int `json:"rank"`
}

// SquadPlayer is one current-squad member with upcoming fixtures.
type SquadPlayer struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Team      string        `json:"team"`
	Position  string        `json:"position"`
	SquadSlot int           `json:"squadSlot"`
	IsCaptain bool          `json:"isCaptain"`
	Fixtures  []FixtureView `json:"fixtures"`
}

type FixtureView struct {
	Opponent   string `json:"opponent"`
	IsHome     bool   `json:"isHome"`
	Difficulty int    `json:"difficulty"`
}

// maxUpcomingFixtures bounds the fixture lookahead per squad player.
const maxUpcomingFixtures = 3

// recentWindow is the size of the last5GWsData section.
const recentWindow = 5

// buildReport shapes the accumulated state into the final sorted output.
// All sorts are stable with respect to first-seen order for equal keys.
func buildReport(
	entry *fpl.Entry,
	history *fpl.History,
	standings *fpl.Standings,
	snap *fpl.BootstrapSnapshot,
	state *accumState,
	summaries map[int]*fpl.ElementSummary,
	opts Options,
) *Report {
	stats := make([]PlayerStat, 0, len(state.order))
	for _, id := range state.order {
		ps := state.players[id]
		stats = append(stats, PlayerStat{
			ID:                ps.ID,
			Name:              ps.Name,
			Team:              ps.Team,
			Position:          ps.Position.String(),
			TotalPointsActive: ps.TotalPointsActive,
			GWInSquad:         ps.GWInSquad,
			Starts:            ps.Starts,
			CappedPoints:      ps.CappedPoints,
			PlayerPoints:      ps.PlayerPoints,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalPointsActive > stats[j].TotalPointsActive
	})

	positions := make([]PositionSummary, 0, len(Positions))
	for _, pos := range Positions {
		summary := PositionSummary{Position: pos.String(), TotalPoints: state.posTotals[pos]}
		for _, id := range state.order {
			ps := state.players[id]
			if ps.Position != pos {
				continue
			}
			summary.Players = append(summary.Players, PositionPlayer{
				ID:     ps.ID,
				Name:   ps.Name,
				Points: ps.TotalPointsActive,
			})
		}
		sort.SliceStable(summary.Players, func(i, j int) bool {
			return summary.Players[i].Points > summary.Players[j].Points
		})
		positions = append(positions, summary)
	}

	topPoints := 0
	leagueName := ""
	if standings != nil {
		leagueName = standings.League.Name
		if len(standings.Standings.Results) > 0 {
			topPoints = standings.Standings.Results[0].Total
		}
	}

	chips := make([]ChipUsage, 0, len(history.Chips))
	for _, c := range history.Chips {
		chips = append(chips, ChipUsage{Name: ParseChip(c.Name).String(), Gameweek: c.Event})
	}

	info := ManagerInfo{
		ID:                     entry.ID,
		Name:                   entry.FirstName + " " + entry.LastName,
		TeamName:               entry.TeamName,
		OverallRank:            entry.OverallRank,
		OverallPoints:          entry.OverallPoints,
		HighestPoints:          state.highestPoints,
		HighestPointsGW:        state.highestPointsGW,
		LowestPoints:           state.lowestPoints,
		LowestPointsGW:         state.lowestPointsGW,
		BestRank:               state.bestRank,
		BestRankGW:             state.bestRankGW,
		WorstRank:              state.worstRank,
		WorstRankGW:            state.worstRankGW,
		TotalPointsLostOnBench: state.benchLoss,
		TotalCaptaincyPoints:   state.captaincyPoints,
		PointDifference:        entry.OverallPoints - topPoints,
		LeagueName:             leagueName,
		LastSeasonRank:         pastSeasonRank(history.Past, 1),
		SeasonBeforeLastRank:   pastSeasonRank(history.Past, 2),
		ChipsUsed:              chips,
	}

	report := &Report{
		ManagerInfo:     info,
		PlayerStats:     stats,
		PositionSummary: positions,
		WeeklyPoints:    state.weeklyPoints,
		WeeklyRanks:     state.weeklyRanks,
	}
	if opts.IncludeDetails {
		report.Last5GWsData = recentGameweeks(state)
		report.CurrentTeam = currentTeam(snap, state, summaries)
	}
	return report
}

// pastSeasonRank returns the rank of the nth-from-last past season as a
// display string, or the "Didn't Play" sentinel when absent.
func pastSeasonRank(past []fpl.PastSeason, fromEnd int) string {
	if len(past) < fromEnd {
		return didNotPlay
	}
	return strconv.Itoa(past[len(past)-fromEnd].Rank)
}

func recentGameweeks(state *accumState) []GameweekView {
	n := len(state.weeklyPoints)
	start := n - recentWindow
	if start < 0 {
		start = 0
	}
	views := make([]GameweekView, 0, n-start)
	for i := start; i < n; i++ {
		views = append(views, GameweekView{
			Gameweek: i + 1,
			Points:   state.weeklyPoints[i],
			Rank:     state.weeklyRanks[i],
		})
	}
	return views
}

// currentTeam shapes the last resolvable gameweek's squad with each player's
// next fixtures. Unknown players or teams are skipped, never fatal.
func currentTeam(snap *fpl.BootstrapSnapshot, state *accumState, summaries map[int]*fpl.ElementSummary) []SquadPlayer {
	if state.currentPicks == nil {
		return nil
	}
	squad := make([]SquadPlayer, 0, len(state.currentPicks.Picks))
	for _, pick := range state.currentPicks.Picks {
		player, err := snap.Player(pick.Element)
		if err != nil {
			continue
		}
		pos, err := PositionFromElementType(player.ElementType)
		if err != nil {
			continue
		}
		sp := SquadPlayer{
			ID:        player.ID,
			Name:      player.WebName,
			Position:  pos.String(),
			SquadSlot: pick.Position,
			IsCaptain: pick.IsCaptain,
		}
		if team, err := snap.Team(player.TeamID); err == nil {
			sp.Team = team.ShortName
		}
		if summary := summaries[pick.Element]; summary != nil {
			for _, f := range summary.Fixtures {
				if len(sp.Fixtures) == maxUpcomingFixtures {
					break
				}
				view := FixtureView{IsHome: f.IsHome, Difficulty: f.Difficulty}
				if opp, err := snap.Team(f.Opponent()); err == nil {
					view.Opponent = opp.ShortName
				}
				sp.Fixtures = append(sp.Fixtures, view)
			}
		}
		squad = append(squad, sp)
	}
	return squad
}
