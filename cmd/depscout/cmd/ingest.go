package cmd

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/internal/index"
	"github.com/depscout/depscout/internal/ingest"
	"github.com/depscout/depscout/internal/output"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Load catalog records into the index",
		Long: `Load newline-delimited JSON records into the document index. Each
line is one package or release object discriminated by a "kind" field.
Pass "-" to read from stdin.

Only one ingest may run against an index at a time; a second invocation
fails immediately rather than waiting.

Examples:
  depscout ingest catalog.ndjson
  cat catalog.ndjson | depscout ingest -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args[0])
		},
	}
	return cmd
}

func runIngest(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer setupLogging(cfg)()

	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	lock, err := ingest.NewLock(cfg.Index.Path)
	if err != nil {
		return err
	}
	if err := lock.TryAcquire(); err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	idx, err := index.Open(cfg.Index.Path)
	if err != nil {
		return err
	}
	defer idx.Close()

	start := time.Now()
	stats, err := ingest.Load(cmd.Context(), in, idx)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	out.Successf("Indexed %d packages and %d releases in %s",
		stats.Packages, stats.Releases, time.Since(start).Round(time.Millisecond))
	return nil
}
