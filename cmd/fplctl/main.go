// Command fplctl runs the analysis pipeline from the terminal, against the
// same upstream client and aggregation code the API server uses.
//
// Usage:
//
//	fplctl analyze 1234567
//	fplctl analyze 1234567 --details --league 314
//	fplctl bootstrap
//	fplctl standings --league 314
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fplhub/fpl-analytics/internal/analysis"
	"github.com/fplhub/fpl-analytics/internal/config"
	"github.com/fplhub/fpl-analytics/internal/fpl"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "fplctl",
		Short: "FPL Analytics CLI",
	}

	root.AddCommand(analyzeCmd())
	root.AddCommand(bootstrapCmd())
	root.AddCommand(standingsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEnv builds the client stack shared by all subcommands.
func newEnv() (*config.Config, *fpl.Client, *fpl.BootstrapCache, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	client := fpl.NewClient(cfg.FPLBaseURL, cfg.ImageBaseURL, cfg.UpstreamTimeout, cfg.UpstreamRPS, logger)
	cache := fpl.NewBootstrapCache(client, cfg.BootstrapTTL, logger)
	return cfg, client, cache, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --------------------------------------------------------------------------
// analyze command
// --------------------------------------------------------------------------

func analyzeCmd() *cobra.Command {
	var leagueID, batchSize int
	var details bool
	cmd := &cobra.Command{
		Use:   "analyze <managerId>",
		Short: "Run the full manager analysis and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			managerID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("manager id must be numeric: %q", args[0])
			}

			cfg, client, cache, err := newEnv()
			if err != nil {
				return err
			}
			if leagueID == 0 {
				leagueID = cfg.LeagueID
			}
			if batchSize == 0 {
				batchSize = cfg.FetchBatchSize
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			analyzer := analysis.New(client, cache, leagueID, batchSize, logger)
			start := time.Now()
			report, err := analyzer.AnalyzeManager(ctx, managerID, analysis.Options{IncludeDetails: details})
			if err != nil {
				return fmt.Errorf("analyze manager %d: %w", managerID, err)
			}
			logger.Info("analysis finished", "duration", time.Since(start).Round(time.Millisecond))
			return printJSON(report)
		},
	}
	cmd.Flags().IntVar(&leagueID, "league", 0, "Classic league for the point-difference figure (default LEAGUE_ID)")
	cmd.Flags().IntVar(&batchSize, "batch", 0, "Concurrent player fetches per gameweek (default FETCH_BATCH_SIZE)")
	cmd.Flags().BoolVar(&details, "details", false, "Include last5GWsData and currentTeam sections")
	return cmd
}

// --------------------------------------------------------------------------
// bootstrap command
// --------------------------------------------------------------------------

func bootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Fetch the bootstrap snapshot and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, cache, err := newEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			snap, err := cache.Get(ctx)
			if err != nil {
				return fmt.Errorf("fetch bootstrap: %w", err)
			}
			return printJSON(map[string]interface{}{
				"players":       len(snap.Data.Players),
				"teams":         len(snap.Data.Teams),
				"events":        len(snap.Data.Events),
				"current_event": snap.CurrentEvent,
				"fetched_at":    snap.FetchedAt.UTC().Format(time.RFC3339),
			})
		},
	}
}

// --------------------------------------------------------------------------
// standings command
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	var leagueID int
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Fetch classic league standings and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, _, err := newEnv()
			if err != nil {
				return err
			}
			if leagueID == 0 {
				leagueID = cfg.LeagueID
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			standings, err := client.FetchStandings(ctx, leagueID)
			if err != nil {
				return fmt.Errorf("fetch standings for league %d: %w", leagueID, err)
			}
			return printJSON(standings)
		},
	}
	cmd.Flags().IntVar(&leagueID, "league", 0, "Classic league id (default LEAGUE_ID)")
	return cmd
}
