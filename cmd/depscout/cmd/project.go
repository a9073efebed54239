package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/output"
	"github.com/depscout/depscout/internal/release"
)

// projectOptions holds CLI flags for project detail.
type projectOptions struct {
	artifact string
	version  string
	target   string
	format   string
}

func newProjectCmd() *cobra.Command {
	var opts projectOptions

	cmd := &cobra.Command{
		Use:   "project <organization/repository>",
		Short: "Show a package with its default release",
		Long: `Show a package, its release count, and the release chosen for display.

Examples:
  depscout project typelevel/cats
  depscout project typelevel/cats --artifact cats-kernel
  depscout project akka/akka-http --target jvm --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.artifact, "artifact", "", "Pin the displayed artifact")
	cmd.Flags().StringVar(&opts.version, "version", "", "Pin the displayed version")
	cmd.Flags().StringVar(&opts.target, "target", "", "Pin the displayed build target")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runProject(cmd *cobra.Command, refArg string, opts projectOptions) error {
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

	detail, err := engine.ProjectDetail(cmd.Context(), ref, release.Selection{
		Artifact: opts.artifact,
		Version:  opts.version,
		Target:   opts.target,
	})
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if detail == nil {
		out.Statusf("", "Package %s not found", ref)
		return nil
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	}

	pkg := detail.Package
	out.Statusf(icon("📦"), "%s/%s  ★ %d  ⑂ %d", pkg.Organization, pkg.Repository, pkg.Stars, pkg.Forks)
	if pkg.Description != "" {
		out.Status("", pkg.Description)
	}
	out.Statusf("", "releases: %d", detail.ReleaseCount)
	if detail.Selected != nil {
		out.Statusf("", "default release: %s", detail.Selected.Coordinate)
	} else {
		out.Status("", "default release: none")
	}
	return nil
}
