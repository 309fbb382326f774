package analysis

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fplhub/fpl-analytics/internal/fpl"
	"github.com/fplhub/fpl-analytics/internal/metrics"
)

// Fetcher is the slice of the upstream client the analyzer drives.
type Fetcher interface {
	FetchEntry(ctx context.Context, managerID int) (*fpl.Entry, error)
	FetchHistory(ctx context.Context, managerID int) (*fpl.History, error)
	FetchPicks(ctx context.Context, managerID, gameweek int) (*fpl.GameweekPicks, error)
	FetchElementSummary(ctx context.Context, playerID int) (*fpl.ElementSummary, error)
	FetchStandings(ctx context.Context, leagueID int) (*fpl.Standings, error)
}

// Analyzer orchestrates the per-gameweek aggregation for one manager.
type Analyzer struct {
	fetcher   Fetcher
	bootstrap *fpl.BootstrapCache
	leagueID  int
	batchSize int
	logger    *slog.Logger
}

// Options control optional report sections.
type Options struct {
	// IncludeDetails adds the recent-gameweek window and the current squad
	// with upcoming fixtures to the report.
	IncludeDetails bool
}

// New creates an Analyzer. batchSize bounds concurrent element-summary
// fetches per gameweek; leagueID names the classic league whose leader
// anchors the point-difference figure.
func New(fetcher Fetcher, bootstrap *fpl.BootstrapCache, leagueID, batchSize int, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Analyzer{
		fetcher:   fetcher,
		bootstrap: bootstrap,
		leagueID:  leagueID,
		batchSize: batchSize,
		logger:    logger,
	}
}

// playerAccum is the running per-player state, keyed by element id and kept
// in first-seen order so equal-point sorts stay stable.
type playerAccum struct {
	ID       int
	Name     string
	Team     string
	Position Position

	TotalPointsActive int
	GWInSquad         int
	Starts            int
	CappedPoints      int
	PlayerPoints      int
}

// accumState carries everything the loop accumulates before assembly.
type accumState struct {
	players      map[int]*playerAccum
	order        []int // element ids in first-seen order
	posTotals    map[Position]int
	weeklyPoints []int
	weeklyRanks  []int

	benchLoss       int
	captaincyPoints int

	pointsSeen      bool
	highestPoints   int
	highestPointsGW int
	lowestPoints    int
	lowestPointsGW  int

	bestRank    int
	bestRankGW  int
	worstRank   int
	worstRankGW int

	currentPicks *fpl.GameweekPicks // last resolvable gameweek's squad
	currentChip  Chip
}

func newAccumState(gameweeks int) *accumState {
	return &accumState{
		players:      make(map[int]*playerAccum),
		posTotals:    make(map[Position]int),
		weeklyPoints: make([]int, gameweeks),
		weeklyRanks:  make([]int, gameweeks),
	}
}

func (s *accumState) player(p *fpl.Player, pos Position) *playerAccum {
	if ps, ok := s.players[p.ID]; ok {
		return ps
	}
	ps := &playerAccum{ID: p.ID, Name: p.WebName, Position: pos}
	s.players[p.ID] = ps
	s.order = append(s.order, p.ID)
	return ps
}

// AnalyzeManager produces the full analysis report for one manager.
func (a *Analyzer) AnalyzeManager(ctx context.Context, managerID int, opts Options) (*Report, error) {
	started := time.Now()

	snap, err := a.bootstrap.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Upfront fan-out: entry, history, and standings are independent and
	// all mandatory.
	var (
		entry     *fpl.Entry
		history   *fpl.History
		standings *fpl.Standings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entry, err = a.fetcher.FetchEntry(gctx, managerID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = a.fetcher.FetchHistory(gctx, managerID)
		return err
	})
	g.Go(func() error {
		var err error
		standings, err = a.fetcher.FetchStandings(gctx, a.leagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currentGW := snap.CurrentEvent
	ranksByGW := make(map[int]int, len(history.Current))
	for _, h := range history.Current {
		ranksByGW[h.Event] = h.OverallRank
	}

	state := newAccumState(currentGW)
	summaries := make(map[int]*fpl.ElementSummary)

	for gw := 1; gw <= currentGW; gw++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.processGameweek(ctx, managerID, gw, snap, ranksByGW, summaries, state)
	}

	report := buildReport(entry, history, standings, snap, state, summaries, opts)
	metrics.ObserveAnalysis(time.Since(started))
	a.logger.Info("manager analysis complete",
		"manager_id", managerID,
		"gameweeks", currentGW,
		"players", len(state.order),
		"duration", time.Since(started).Round(time.Millisecond))
	return report, nil
}

// processGameweek resolves one gameweek's picks, fetches any missing player
// summaries in a bounded batch, and runs the accumulation pass. Failures are
// isolated: a gameweek that cannot resolve keeps its weekly rank and a zero
// point total, and prior state is untouched.
func (a *Analyzer) processGameweek(
	ctx context.Context,
	managerID, gw int,
	snap *fpl.BootstrapSnapshot,
	ranksByGW map[int]int,
	summaries map[int]*fpl.ElementSummary,
	state *accumState,
) {
	state.weeklyRanks[gw-1] = ranksByGW[gw]
	state.trackRank(gw, ranksByGW[gw])

	picks, err := a.fetcher.FetchPicks(ctx, managerID, gw)
	if err != nil {
		a.logger.Warn("skipping gameweek, picks unavailable",
			"manager_id", managerID, "gameweek", gw, "error", err)
		return
	}
	chip := ParseChip(picks.ActiveChip)

	a.fetchSummaries(ctx, gw, picks.Picks, summaries)

	// Accumulation is confined to this single pass after the batch joins;
	// nothing mutates state during concurrent fetches.
	weekTotal := 0
	for _, pick := range picks.Picks {
		player, err := snap.Player(pick.Element)
		if err != nil {
			a.logger.Warn("pick references unknown player, skipping",
				"element", pick.Element, "gameweek", gw)
			continue
		}
		pos, err := PositionFromElementType(player.ElementType)
		if err != nil {
			a.logger.Warn("player has unknown position, skipping",
				"element", player.ID, "element_type", player.ElementType)
			continue
		}
		ps := state.player(player, pos)
		if team, err := snap.Team(player.TeamID); err == nil {
			ps.Team = team.ShortName
		}

		var base int
		if summary := summaries[pick.Element]; summary != nil {
			base = WeekPoints(summary.History, gw)
		}

		inStarting11 := pick.Position <= 11
		active := inStarting11 || chip.Kind == ChipBenchBoost

		effective := base
		if pick.IsCaptain && active {
			effective = base * captainMultiplier(chip)
			ps.CappedPoints += effective
			state.captaincyPoints += effective
		}

		ps.PlayerPoints += effective
		if active {
			ps.TotalPointsActive += effective
			ps.GWInSquad++
			state.posTotals[pos] += effective
			weekTotal += effective
		} else {
			state.benchLoss += base
		}
		if inStarting11 {
			ps.Starts++
		}
	}

	state.weeklyPoints[gw-1] = weekTotal
	state.trackPoints(gw, weekTotal)
	state.currentPicks = picks
	state.currentChip = chip
}

// fetchSummaries fans out element-summary fetches for squad members not yet
// cached this request. Results land in index-addressed slots, so completion
// order cannot permute anything; failed fetches stay unresolved and may be
// retried at a later gameweek.
func (a *Analyzer) fetchSummaries(ctx context.Context, gw int, picks []fpl.Pick, summaries map[int]*fpl.ElementSummary) {
	missing := make([]int, 0, len(picks))
	for _, p := range picks {
		if _, ok := summaries[p.Element]; !ok {
			missing = append(missing, p.Element)
		}
	}
	if len(missing) == 0 {
		return
	}

	results := make([]*fpl.ElementSummary, len(missing))
	var g errgroup.Group
	g.SetLimit(a.batchSize)
	for i, id := range missing {
		i, id := i, id
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			summary, err := a.fetcher.FetchElementSummary(ctx, id)
			if err != nil {
				a.logger.Warn("element summary unavailable",
					"element", id, "gameweek", gw, "error", err)
				return nil
			}
			results[i] = summary
			return nil
		})
	}
	g.Wait()

	for i, id := range missing {
		if results[i] != nil {
			summaries[id] = results[i]
		}
	}
}

// trackPoints updates the highest/lowest single-gameweek extrema. Strict
// comparisons keep the earliest gameweek on ties.
func (s *accumState) trackPoints(gw, total int) {
	if !s.pointsSeen {
		s.pointsSeen = true
		s.highestPoints, s.highestPointsGW = total, gw
		s.lowestPoints, s.lowestPointsGW = total, gw
		return
	}
	if total > s.highestPoints {
		s.highestPoints, s.highestPointsGW = total, gw
	}
	if total < s.lowestPoints {
		s.lowestPoints, s.lowestPointsGW = total, gw
	}
}

// trackRank updates the best/worst overall-rank extrema. Rank 0 means the
// history has no record for the gameweek and never counts. Numerically
// lowest rank is best; strict comparisons keep the earliest gameweek on ties.
func (s *accumState) trackRank(gw, rank int) {
	if rank <= 0 {
		return
	}
	if s.bestRank == 0 || rank < s.bestRank {
		s.bestRank, s.bestRankGW = rank, gw
	}
	if rank > s.worstRank {
		s.worstRank, s.worstRankGW = rank, gw
	}
}
