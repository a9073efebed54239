// Package cmd implements the depscout CLI.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/catalog"
	"github.com/depscout/depscout/internal/config"
	"github.com/depscout/depscout/internal/index"
	"github.com/depscout/depscout/internal/logging"
	"github.com/depscout/depscout/internal/search"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath string
	indexPath  string
	logLevel   string
}

var rootOpts rootOptions

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depscout",
		Short: "Search and explore the library discovery catalog",
		Long: `depscout queries a catalog of software libraries: free-text search,
package and release lookups, recency feeds, and faceted summaries of
keywords, build targets, and dependency usage.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&rootOpts.configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&rootOpts.indexPath, "index", "", "Path to the document index (overrides config)")
	cmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newSearchCmd(),
		newProjectCmd(),
		newReleasesCmd(),
		newArtifactCmd(),
		newLatestCmd(),
		newFacetCmd(),
		newIngestCmd(),
		newStatsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig loads the configuration with global flag overrides applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootOpts.configPath)
	if err != nil {
		return nil, err
	}
	if rootOpts.indexPath != "" {
		cfg.Index.Path = rootOpts.indexPath
	}
	if rootOpts.logLevel != "" {
		cfg.Logging.Level = rootOpts.logLevel
	}
	return cfg, nil
}

// setupLogging initializes file logging from config. The returned cleanup
// is safe to defer even when setup failed.
func setupLogging(cfg *config.Config) func() {
	cleanup, err := logging.SetupDefault(logging.Config{
		Level:         cfg.Logging.Level,
		FilePath:      cfg.Logging.File,
		MaxSizeMB:     cfg.Logging.MaxSizeMB,
		MaxFiles:      cfg.Logging.MaxFiles,
		WriteToStderr: cfg.Logging.Stderr,
	})
	if err != nil {
		return func() {}
	}
	return cleanup
}

// openEngine opens the index and builds the query engine. The cleanup
// closes the index.
func openEngine(cfg *config.Config) (*search.Engine, func(), error) {
	idx, err := index.Open(cfg.Index.Path)
	if err != nil {
		return nil, nil, err
	}
	engine := search.New(idx,
		search.WithExcludedDependencies(cfg.Facets.ExcludedDependencies))
	return engine, func() { _ = idx.Close() }, nil
}

// parseReference parses "organization/repository".
func parseReference(s string) (catalog.PackageReference, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return catalog.PackageReference{}, fmt.Errorf("invalid reference %q, want organization/repository", s)
	}
	return catalog.PackageReference{Organization: parts[0], Repository: parts[1]}, nil
}

// icon returns s when stdout is a terminal and "" otherwise, keeping
// piped output clean.
func icon(s string) string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return ""
}
