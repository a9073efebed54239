// Package search is the query engine of the catalog: free-text package
// search, package/release correlation, recency feeds, and faceted
// aggregation. All operations are stateless reads against the document
// index; each issues one round trip (ProjectDetail: two, concurrent) and
// is safe for concurrent use.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/depscout/depscout/internal/catalog"
	"github.com/depscout/depscout/internal/index"
	"github.com/depscout/depscout/internal/query"
	"github.com/depscout/depscout/internal/release"
)

// Result caps. Each encodes a policy decision, not a technical limit.
const (
	// MaxFacetBuckets bounds the breadth of a faceted summary.
	MaxFacetBuckets = 50

	// MaxReleaseHistory bounds the release history fetched per package.
	// A package with more historical releases silently loses the oldest
	// excess ones; an accepted limitation, not a failure.
	MaxReleaseHistory = 1000

	// LatestFeedSize is the length of the "what's new" feeds.
	LatestFeedSize = 12
)

// facetCacheTTL bounds staleness of whole-catalog aggregations, which are
// the only queries here whose cost grows with catalog size.
const facetCacheTTL = 5 * time.Minute

// Engine orchestrates the query components against the document index.
type Engine struct {
	idx        index.Index
	selectRel  release.SelectFunc
	excluded   map[string]struct{}
	facetCache *expirable.LRU[string, []index.TermCount]
}

// Option configures the engine.
type Option func(*Engine)

// WithReleaseSelector replaces the default-release-selection collaborator.
func WithReleaseSelector(fn release.SelectFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.selectRel = fn
		}
	}
}

// WithExcludedDependencies sets the curated set of dependency coordinates
// subtracted from the dependency facet. Ubiquitous test and logging
// libraries appear in nearly every package's dependency list and would
// dominate the facet without carrying any usage signal.
func WithExcludedDependencies(coords []string) Option {
	return func(e *Engine) {
		e.excluded = make(map[string]struct{}, len(coords))
		for _, c := range coords {
			e.excluded[c] = struct{}{}
		}
	}
}

// New creates an engine over the given index.
func New(idx index.Index, opts ...Option) *Engine {
	e := &Engine{
		idx:        idx,
		selectRel:  release.Default,
		excluded:   map[string]struct{}{},
		facetCache: expirable.NewLRU[string, []index.TermCount](8, nil, facetCacheTTL),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PageResult is one page of search results with pagination metadata.
// CurrentPage is always the clamped page actually served, never the raw
// caller input.
type PageResult struct {
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
	TotalHits   int               `json:"total_hits"`
	Items       []catalog.Package `json:"items"`
}

// Search runs a free-text query over the package collection: build the
// disjunctive text query, resolve pagination and sort, issue one query,
// and sanitize every package on the way out. Index failures propagate
// unmodified; retrying is the caller's concern.
func (e *Engine) Search(ctx context.Context, rawQuery string, page int, sortKey string) (PageResult, error) {
	expr := query.BuildTextQuery(rawQuery)
	offset, limit, current := query.ResolvePage(page)
	sort := query.ResolveSort(sortKey)

	start := time.Now()
	hits, err := e.idx.SearchPackages(ctx, expr, sort, index.Page{From: offset, Size: limit})
	if err != nil {
		return PageResult{}, err
	}
	slog.Debug("search_executed",
		slog.String("query", rawQuery),
		slog.Int("page", current),
		slog.String("sort", sortKey),
		slog.Int("total_hits", hits.Total),
		slog.Duration("elapsed", time.Since(start)))

	return PageResult{
		CurrentPage: current,
		TotalPages:  query.TotalPages(hits.Total),
		TotalHits:   hits.Total,
		Items:       catalog.SanitizeAll(hits.Packages),
	}, nil
}
