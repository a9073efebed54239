package search

import (
	"context"

	"github.com/depscout/depscout/internal/catalog"
	"github.com/depscout/depscout/internal/index"
	"github.com/depscout/depscout/internal/query"
)

// LatestPackages returns the most recently added packages, unfiltered,
// newest first, capped at LatestFeedSize. Packages are sanitized like any
// other search path.
func (e *Engine) LatestPackages(ctx context.Context) ([]catalog.Package, error) {
	sort := query.SortDirective{Field: query.FieldCreatedAt, Desc: true, AsDate: true}
	hits, err := e.idx.SearchPackages(ctx, query.MatchAll{}, sort, index.Page{From: 0, Size: LatestFeedSize})
	if err != nil {
		return nil, err
	}
	return catalog.SanitizeAll(hits.Packages), nil
}

// LatestReleases returns the most recently published releases, newest
// first, capped at LatestFeedSize.
func (e *Engine) LatestReleases(ctx context.Context) ([]catalog.Release, error) {
	sort := query.SortDirective{Field: query.FieldReleasedAt, Desc: true, AsDate: true}
	hits, err := e.idx.SearchReleases(ctx, query.MatchAll{}, sort, index.Page{From: 0, Size: LatestFeedSize})
	if err != nil {
		return nil, err
	}
	return hits.Releases, nil
}
