package cmd

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/config"
	"github.com/depscout/depscout/internal/output"
	"github.com/depscout/depscout/internal/telemetry"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	page   int
	sort   string
	format string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog with a free-text query",
		Long: `Search the catalog with a free-text query.

Exact keyword, organization, and repository tags match deterministically;
the rest of the query ranks by relevance.

Examples:
  depscout search "http client"
  depscout search json --sort stars
  depscout search cats --page 2 --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "Result page (1-indexed)")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "Sort: stars, forks, created, updated, relevant")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runSearch(cmd *cobra.Command, rawQuery string, opts searchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer setupLogging(cfg)()

	engine, closeEngine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer closeEngine()

	start := time.Now()
	res, err := engine.Search(cmd.Context(), rawQuery, opts.page, opts.sort)
	if err != nil {
		return err
	}
	recordQuery(cfg, rawQuery, res.TotalHits, time.Since(start))

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	out := output.New(cmd.OutOrStdout())
	if len(res.Items) == 0 {
		out.Statusf("", "No results for %q", rawQuery)
		return nil
	}
	out.Statusf(icon("🔍"), "Page %d/%d, %d results for %q:",
		res.CurrentPage, res.TotalPages, res.TotalHits, rawQuery)
	out.Newline()
	for i, pkg := range res.Items {
		out.Statusf("", "%2d. %s/%s  ★ %d", i+1, pkg.Organization, pkg.Repository, pkg.Stars)
		if pkg.Description != "" {
			out.Status("", "    "+pkg.Description)
		}
		if len(pkg.Keywords) > 0 {
			out.Status("", "    keywords: "+strings.Join(pkg.Keywords, ", "))
		}
	}
	return nil
}

// recordQuery persists query telemetry when enabled. Best effort: a
// telemetry failure never fails the search.
func recordQuery(cfg *config.Config, query string, results int, latency time.Duration) {
	if !cfg.Telemetry.Enabled {
		return
	}
	store, err := telemetry.OpenStore(cfg.Telemetry.Path)
	if err != nil {
		slog.Warn("telemetry_unavailable", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = store.Close() }()
	if err := store.Record(telemetry.QueryEvent{
		Query:       query,
		ResultCount: results,
		Latency:     latency,
		Timestamp:   time.Now(),
	}); err != nil {
		slog.Warn("telemetry_record_failed", slog.String("error", err.Error()))
	}
}
