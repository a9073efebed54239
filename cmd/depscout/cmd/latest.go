package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/output"
)

func newLatestCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "latest [packages|releases]",
		Short: "Show the most recently updated packages or releases",
		Long: `Show the newest activity in the catalog. With no argument the
packages feed is shown.

Examples:
  depscout latest
  depscout latest releases --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed := "packages"
			if len(args) == 1 {
				feed = args[0]
			}
			return runLatest(cmd, feed, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runLatest(cmd *cobra.Command, feed, format string) error {
	if feed != "packages" && feed != "releases" {
		return fmt.Errorf("unknown feed %q (expected packages or releases)", feed)
	}

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

	out := output.New(cmd.OutOrStdout())
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if feed == "releases" {
		rels, err := engine.LatestReleases(cmd.Context())
		if err != nil {
			return err
		}
		if format == "json" {
			return enc.Encode(rels)
		}
		for _, rel := range rels {
			out.Statusf("", "%s  %s  (%s)", rel.ReleasedAt.Format("2006-01-02"), rel.Coordinate, rel.Reference)
		}
		return nil
	}

	pkgs, err := engine.LatestPackages(cmd.Context())
	if err != nil {
		return err
	}
	if format == "json" {
		return enc.Encode(pkgs)
	}
	for _, pkg := range pkgs {
		out.Statusf("", "%s  %s/%s  ★ %d", pkg.UpdatedAt.Format("2006-01-02"), pkg.Organization, pkg.Repository, pkg.Stars)
	}
	return nil
}
