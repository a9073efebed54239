package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/depscout/depscout/internal/catalog"
	"github.com/depscout/depscout/internal/index"
	"github.com/depscout/depscout/internal/query"
	"github.com/depscout/depscout/internal/release"
)

// ReleasesFor returns every release whose embedded reference equals ref on
// both organization and repository, newest first, capped at
// MaxReleaseHistory.
func (e *Engine) ReleasesFor(ctx context.Context, ref catalog.PackageReference) ([]catalog.Release, error) {
	expr := query.Conjunction{Exprs: []query.Expr{
		query.Term{Field: query.FieldRefOrganization, Value: ref.Organization},
		query.Term{Field: query.FieldRefRepository, Value: ref.Repository},
	}}
	sort := query.SortDirective{Field: query.FieldReleasedAt, Desc: true, AsDate: true}
	hits, err := e.idx.SearchReleases(ctx, expr, sort, index.Page{From: 0, Size: MaxReleaseHistory})
	if err != nil {
		return nil, err
	}
	return hits.Releases, nil
}

// ResolveArtifact returns the release matching the coordinate exactly, or
// nil when absent. Absence is a valid outcome, never an error. More than
// one match would mean duplicate coordinates upstream; the first hit wins.
func (e *Engine) ResolveArtifact(ctx context.Context, coord catalog.ArtifactCoordinate) (*catalog.Release, error) {
	expr := query.Conjunction{Exprs: []query.Expr{
		query.Term{Field: query.FieldCoordGroup, Value: coord.Group},
		query.Term{Field: query.FieldCoordArtifact, Value: coord.Artifact},
		query.Term{Field: query.FieldCoordVersion, Value: coord.Version},
	}}
	hits, err := e.idx.SearchReleases(ctx, expr, query.Relevance(), index.Page{From: 0, Size: 1})
	if err != nil {
		return nil, err
	}
	if len(hits.Releases) == 0 {
		return nil, nil
	}
	rel := hits.Releases[0]
	return &rel, nil
}

// ResolveProject returns the package identified by ref, sanitized, or nil
// when absent.
func (e *Engine) ResolveProject(ctx context.Context, ref catalog.PackageReference) (*catalog.Package, error) {
	expr := query.Conjunction{Exprs: []query.Expr{
		query.Term{Field: query.FieldOrganization, Value: ref.Organization},
		query.Term{Field: query.FieldRepository, Value: ref.Repository},
	}}
	hits, err := e.idx.SearchPackages(ctx, expr, query.Relevance(), index.Page{From: 0, Size: 1})
	if err != nil {
		return nil, err
	}
	if len(hits.Packages) == 0 {
		return nil, nil
	}
	pkg := catalog.Sanitize(hits.Packages[0])
	return &pkg, nil
}

// ProjectDetail is everything a package detail view needs: the package,
// its release count, and the release chosen by the default-release
// collaborator for the caller's selection criteria.
type ProjectDetail struct {
	Package      catalog.Package  `json:"package"`
	ReleaseCount int              `json:"release_count"`
	Selected     *catalog.Release `json:"selected,omitempty"`
}

// ProjectDetail resolves the package and its releases concurrently
// (neither query depends on the other), then delegates release choice to
// the selection collaborator. Returns nil when the package itself does not
// exist, regardless of whether releases were found.
func (e *Engine) ProjectDetail(ctx context.Context, ref catalog.PackageReference, sel release.Selection) (*ProjectDetail, error) {
	var (
		pkg  *catalog.Package
		rels []catalog.Release
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pkg, err = e.ResolveProject(gctx, ref)
		return err
	})
	g.Go(func() error {
		var err error
		rels, err = e.ReleasesFor(gctx, ref)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, nil
	}
	return &ProjectDetail{
		Package:      *pkg,
		ReleaseCount: len(rels),
		Selected:     e.selectRel(*pkg, sel, rels),
	}, nil
}
