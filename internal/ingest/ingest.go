// Package ingest loads catalog records into the document index. Input is
// newline-delimited JSON, one package or release per line, discriminated
// by a "kind" field. This is deliberately plain CRUD glue; crawling and
// metadata enrichment happen upstream.
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/depscout/depscout/internal/catalog"
	"github.com/depscout/depscout/internal/index"
)

// batchSize bounds memory per index write.
const batchSize = 500

// maxLineBytes accommodates packages with large readme payloads.
const maxLineBytes = 4 * 1024 * 1024

// Stats reports what one load run indexed.
type Stats struct {
	Packages int
	Releases int
}

type packageRecord struct {
	Kind string `json:"kind"`
	catalog.Package
}

type releaseRecord struct {
	Kind string `json:"kind"`
	catalog.Release
}

// Load reads NDJSON records from r and writes them to the index in
// batches. A malformed line aborts the run with its line number; records
// written by completed batches stay indexed.
func Load(ctx context.Context, r io.Reader, w index.Writer) (Stats, error) {
	var (
		stats    Stats
		packages []catalog.Package
		releases []catalog.Release
	)

	flush := func() error {
		if err := w.IndexPackages(ctx, packages); err != nil {
			return err
		}
		if err := w.IndexReleases(ctx, releases); err != nil {
			return err
		}
		stats.Packages += len(packages)
		stats.Releases += len(releases)
		packages = packages[:0]
		releases = releases[:0]
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var probe struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal([]byte(line), &probe); err != nil {
			return stats, fmt.Errorf("line %d: %w", lineNo, err)
		}

		switch probe.Kind {
		case string(index.Packages):
			var rec packageRecord
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if rec.Organization == "" || rec.Repository == "" {
				return stats, fmt.Errorf("line %d: package record missing organization or repository", lineNo)
			}
			packages = append(packages, rec.Package)
		case string(index.Releases):
			var rec releaseRecord
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if rec.Coordinate.Group == "" || rec.Coordinate.Artifact == "" || rec.Coordinate.Version == "" {
				return stats, fmt.Errorf("line %d: release record missing coordinate", lineNo)
			}
			releases = append(releases, rec.Release)
		default:
			return stats, fmt.Errorf("line %d: unknown kind %q", lineNo, probe.Kind)
		}

		if len(packages)+len(releases) >= batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}
	if err := flush(); err != nil {
		return stats, err
	}

	slog.Info("ingest_complete",
		slog.Int("packages", stats.Packages),
		slog.Int("releases", stats.Releases),
		slog.Int("lines", lineNo))
	return stats, nil
}
