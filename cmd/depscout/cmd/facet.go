package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/output"
	"github.com/depscout/depscout/internal/search"
)

func newFacetCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "facet <keywords|targets|dependencies>",
		Short: "Aggregate catalog-wide term counts for a field",
		Long: `Count the distinct values of a facetable field across all packages.
Dependency counts exclude the configured test and logging libraries.

Examples:
  depscout facet keywords
  depscout facet dependencies --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacet(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runFacet(cmd *cobra.Command, field, format string) error {
	switch field {
	case search.FacetKeywords, search.FacetTargets, search.FacetDependencies:
	default:
		return fmt.Errorf("unknown facet field %q (expected keywords, targets, or dependencies)", field)
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

	terms, err := engine.Aggregate(cmd.Context(), field)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(terms)
	}

	out := output.New(cmd.OutOrStdout())
	if len(terms) == 0 {
		out.Statusf("", "No %s found", field)
		return nil
	}
	for _, tc := range terms {
		out.Statusf("", "%6d  %s", tc.Count, tc.Term)
	}
	return nil
}
