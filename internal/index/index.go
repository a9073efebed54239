// Package index defines the narrow query/response contract against the
// document index and provides the bleve-backed implementation. The engine
// only ever sees this contract, which keeps it testable against an
// in-memory fake instead of a live index.
package index

import (
	"context"

	"github.com/depscout/depscout/internal/catalog"
	"github.com/depscout/depscout/internal/query"
)

// Collection names the document kinds stored in the index.
type Collection string

const (
	Packages Collection = "package"
	Releases Collection = "release"
)

// Page is an offset/limit window in the index's native paging.
type Page struct {
	From int
	Size int
}

// TermCount is one bucket of a terms aggregation.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// PackageHits is a capped page of package documents plus the total hit
// count the index reported for the whole query.
type PackageHits struct {
	Total    int
	Packages []catalog.Package
}

// ReleaseHits is the release-collection counterpart of PackageHits.
type ReleaseHits struct {
	Total    int
	Releases []catalog.Release
}

// Index is the read contract. Implementations must support exact term
// matching, relevance scoring, boolean composition, dotted paths into
// nested sub-documents, and terms aggregation with an arbitrary bucket cap.
// All methods issue exactly one round trip and are safe for concurrent use.
type Index interface {
	SearchPackages(ctx context.Context, expr query.Expr, sort query.SortDirective, page Page) (PackageHits, error)
	SearchReleases(ctx context.Context, expr query.Expr, sort query.SortDirective, page Page) (ReleaseHits, error)
	AggregateTerms(ctx context.Context, c Collection, field string, size int) ([]TermCount, error)
}

// Writer is the ingestion contract, separate from Index so query-path
// consumers cannot write.
type Writer interface {
	IndexPackages(ctx context.Context, pkgs []catalog.Package) error
	IndexReleases(ctx context.Context, rels []catalog.Release) error
}
