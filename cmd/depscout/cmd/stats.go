package cmd

import (
	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/output"
	"github.com/depscout/depscout/internal/telemetry"
)

func newStatsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show local query statistics",
		Long: `Show the most frequent query terms and recent queries that found
nothing, from the local telemetry store. Nothing is collected unless
telemetry is enabled in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries per section")
	return cmd
}

func runStats(cmd *cobra.Command, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer setupLogging(cfg)()

	out := output.New(cmd.OutOrStdout())
	if !cfg.Telemetry.Enabled {
		out.Status("", "Telemetry is disabled; nothing collected.")
		return nil
	}

	store, err := telemetry.OpenStore(cfg.Telemetry.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	terms, err := store.TopTerms(limit)
	if err != nil {
		return err
	}
	out.Status(icon("📊"), "Top query terms")
	if len(terms) == 0 {
		out.Status("", "(none recorded)")
	}
	for _, tc := range terms {
		out.Statusf("", "%6d  %s", tc.Count, tc.Term)
	}

	zero, err := store.ZeroResultQueries(limit)
	if err != nil {
		return err
	}
	out.Newline()
	out.Status(icon("🕳"), "Recent zero-result queries")
	if len(zero) == 0 {
		out.Status("", "(none recorded)")
	}
	for _, q := range zero {
		out.Statusf("", "%q", q)
	}
	return nil
}
