package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/output"
)

func newReleasesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "releases <organization/repository>",
		Short: "List the release history of a package",
		Long: `List a package's releases, newest first.

Examples:
  depscout releases typelevel/cats
  depscout releases akka/akka --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReleases(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runReleases(cmd *cobra.Command, refArg, format string) error {
	ref, err := parseReference(refArg)
	if err != nil {
		return err
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

	rels, err := engine.ReleasesFor(cmd.Context(), ref)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rels)
	}

	out := output.New(cmd.OutOrStdout())
	if len(rels) == 0 {
		out.Statusf("", "No releases found for %s", ref)
		return nil
	}
	out.Statusf(icon("📦"), "%s: %d releases", ref, len(rels))
	for _, rel := range rels {
		out.Statusf("", "%s  %s  %s", rel.ReleasedAt.Format("2006-01-02"), rel.Coordinate, rel.Target)
	}
	return nil
}
