package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/catalog"
	"github.com/depscout/depscout/internal/output"
)

func newArtifactCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "artifact <group> <artifact> <version>",
		Short: "Look up a release by its exact coordinate",
		Long: `Look up the release published under an exact group/artifact/version
coordinate and show which package it belongs to.

Examples:
  depscout artifact org.typelevel cats-core_3 2.10.0
  depscout artifact com.typesafe.akka akka-actor_2.13 2.8.5 --format json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord := catalog.ArtifactCoordinate{
				Group:    args[0],
				Artifact: args[1],
				Version:  args[2],
			}
			return runArtifact(cmd, coord, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runArtifact(cmd *cobra.Command, coord catalog.ArtifactCoordinate, format string) error {
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

	rel, err := engine.ResolveArtifact(cmd.Context(), coord)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if rel == nil {
		out.Statusf("", "No release found for %s", coord)
		return nil
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rel)
	}

	out.Statusf(icon("📦"), "%s", rel.Coordinate)
	out.Statusf("", "package: %s", rel.Reference)
	if rel.Target != "" {
		out.Statusf("", "target: %s", rel.Target)
	}
	out.Statusf("", "released: %s", rel.ReleasedAt.Format("2006-01-02"))
	return nil
}
