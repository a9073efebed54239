package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscout/depscout/internal/catalog"
	scerrors "github.com/depscout/depscout/internal/errors"
	"github.com/depscout/depscout/internal/index"
	"github.com/depscout/depscout/internal/query"
	"github.com/depscout/depscout/internal/release"
)

// fakeIndex implements index.Index in memory and records every call, so
// tests can assert on the exact query the engine issued.
type fakeIndex struct {
	mu sync.Mutex

	packages index.PackageHits
	releases index.ReleaseHits
	terms    []index.TermCount
	err      error

	packageCalls []searchCall
	releaseCalls []searchCall
	facetCalls   []facetCall
}

type searchCall struct {
	expr query.Expr
	sort query.SortDirective
	page index.Page
}

type facetCall struct {
	collection index.Collection
	field      string
	size       int
}

func (f *fakeIndex) SearchPackages(_ context.Context, expr query.Expr, sort query.SortDirective, page index.Page) (index.PackageHits, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.packageCalls = append(f.packageCalls, searchCall{expr, sort, page})
	if f.err != nil {
		return index.PackageHits{}, f.err
	}
	return f.packages, nil
}

func (f *fakeIndex) SearchReleases(_ context.Context, expr query.Expr, sort query.SortDirective, page index.Page) (index.ReleaseHits, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releaseCalls = append(f.releaseCalls, searchCall{expr, sort, page})
	if f.err != nil {
		return index.ReleaseHits{}, f.err
	}
	return f.releases, nil
}

func (f *fakeIndex) AggregateTerms(_ context.Context, c index.Collection, field string, size int) ([]index.TermCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.facetCalls = append(f.facetCalls, facetCall{c, field, size})
	if f.err != nil {
		return nil, f.err
	}
	return f.terms, nil
}

var _ index.Index = (*fakeIndex)(nil)

func somePackages(n int) []catalog.Package {
	pkgs := make([]catalog.Package, n)
	for i := range pkgs {
		pkgs[i] = catalog.Package{
			ID:           "internal-id",
			Organization: "org",
			Repository:   "repo",
			Stars:        i,
		}
	}
	return pkgs
}

func TestSearch_ClampsPageAndSanitizes(t *testing.T) {
	idx := &fakeIndex{packages: index.PackageHits{Total: 27, Packages: somePackages(10)}}
	e := New(idx)

	res, err := e.Search(context.Background(), "http client", 0, "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 27, res.TotalHits)
	require.Len(t, res.Items, 10)
	for _, p := range res.Items {
		assert.Empty(t, p.ID, "internal identifier must never leave the system")
	}

	require.Len(t, idx.packageCalls, 1)
	call := idx.packageCalls[0]
	assert.Equal(t, index.Page{From: 0, Size: 10}, call.page)
	assert.Equal(t, query.Relevance(), call.sort)
	_, ok := call.expr.(query.Disjunction)
	assert.True(t, ok, "search issues the disjunctive text query")
}

func TestSearch_PageOffsetAndSort(t *testing.T) {
	idx := &fakeIndex{packages: index.PackageHits{Total: 100}}
	e := New(idx)

	res, err := e.Search(context.Background(), "cats", 4, "stars")
	require.NoError(t, err)
	assert.Equal(t, 4, res.CurrentPage)
	assert.Equal(t, 10, res.TotalPages)

	call := idx.packageCalls[0]
	assert.Equal(t, index.Page{From: 30, Size: 10}, call.page)
	assert.Equal(t, query.SortDirective{Field: query.FieldStars, Desc: true}, call.sort)
}

func TestSearch_IndexFailurePropagates(t *testing.T) {
	idx := &fakeIndex{err: scerrors.IndexError("connection refused", nil)}
	e := New(idx)

	_, err := e.Search(context.Background(), "anything", 1, "")
	require.Error(t, err)
	assert.Equal(t, scerrors.ErrCodeIndexUnavailable, scerrors.GetCode(err))
	assert.True(t, scerrors.IsRetryable(err))
	assert.Len(t, idx.packageCalls, 1, "no internal retry")
}

func TestReleasesFor_ConjunctionOnBothReferenceFields(t *testing.T) {
	idx := &fakeIndex{releases: index.ReleaseHits{Total: 2, Releases: []catalog.Release{{}, {}}}}
	e := New(idx)

	ref := catalog.PackageReference{Organization: "typelevel", Repository: "cats"}
	rels, err := e.ReleasesFor(context.Background(), ref)
	require.NoError(t, err)
	assert.Len(t, rels, 2)

	require.Len(t, idx.releaseCalls, 1)
	call := idx.releaseCalls[0]
	conj, ok := call.expr.(query.Conjunction)
	require.True(t, ok, "reference match is a conjunction, not a disjunction")
	require.Len(t, conj.Exprs, 2)
	assert.Equal(t, query.Term{Field: query.FieldRefOrganization, Value: "typelevel"}, conj.Exprs[0])
	assert.Equal(t, query.Term{Field: query.FieldRefRepository, Value: "cats"}, conj.Exprs[1])
	assert.Equal(t, index.Page{From: 0, Size: MaxReleaseHistory}, call.page)
}

func TestResolveArtifact_AbsentIsNilNotError(t *testing.T) {
	idx := &fakeIndex{}
	e := New(idx)

	coord := catalog.ArtifactCoordinate{Group: "org.x", Artifact: "core", Version: "1.0"}
	rel, err := e.ResolveArtifact(context.Background(), coord)
	require.NoError(t, err)
	assert.Nil(t, rel)

	call := idx.releaseCalls[0]
	conj, ok := call.expr.(query.Conjunction)
	require.True(t, ok)
	assert.Len(t, conj.Exprs, 3)
	assert.Equal(t, index.Page{From: 0, Size: 1}, call.page)
}

func TestResolveProject_SanitizesResult(t *testing.T) {
	idx := &fakeIndex{packages: index.PackageHits{Total: 1, Packages: somePackages(1)}}
	e := New(idx)

	pkg, err := e.ResolveProject(context.Background(), catalog.PackageReference{Organization: "org", Repository: "repo"})
	require.NoError(t, err)
	require.NotNil(t, pkg)
	assert.Empty(t, pkg.ID)
}

func TestProjectDetail_ZeroReleases(t *testing.T) {
	idx := &fakeIndex{packages: index.PackageHits{Total: 1, Packages: somePackages(1)}}
	e := New(idx)

	detail, err := e.ProjectDetail(context.Background(),
		catalog.PackageReference{Organization: "org", Repository: "repo"}, release.Selection{})
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, 0, detail.ReleaseCount)
	assert.Nil(t, detail.Selected, "empty release list yields no default release")
	assert.Empty(t, detail.Package.ID)
}

func TestProjectDetail_PackageAbsent(t *testing.T) {
	idx := &fakeIndex{releases: index.ReleaseHits{Total: 3, Releases: []catalog.Release{{}, {}, {}}}}
	e := New(idx)

	detail, err := e.ProjectDetail(context.Background(),
		catalog.PackageReference{Organization: "ghost", Repository: "gone"}, release.Selection{})
	require.NoError(t, err)
	assert.Nil(t, detail, "no package means no detail, regardless of releases")
}

func TestProjectDetail_SelectsRelease(t *testing.T) {
	now := time.Now()
	rels := []catalog.Release{
		{Coordinate: catalog.ArtifactCoordinate{Group: "g", Artifact: "a", Version: "1.0.0"}, ReleasedAt: now.AddDate(0, -1, 0)},
		{Coordinate: catalog.ArtifactCoordinate{Group: "g", Artifact: "a", Version: "1.2.0"}, ReleasedAt: now},
	}
	idx := &fakeIndex{
		packages: index.PackageHits{Total: 1, Packages: somePackages(1)},
		releases: index.ReleaseHits{Total: 2, Releases: rels},
	}
	e := New(idx)

	detail, err := e.ProjectDetail(context.Background(),
		catalog.PackageReference{Organization: "org", Repository: "repo"}, release.Selection{})
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, 2, detail.ReleaseCount)
	require.NotNil(t, detail.Selected)
	assert.Equal(t, "1.2.0", detail.Selected.Coordinate.Version)
}

func TestLatestPackages_CapAndSanitize(t *testing.T) {
	idx := &fakeIndex{packages: index.PackageHits{Total: 40, Packages: somePackages(12)}}
	e := New(idx)

	pkgs, err := e.LatestPackages(context.Background())
	require.NoError(t, err)
	assert.Len(t, pkgs, 12)
	for _, p := range pkgs {
		assert.Empty(t, p.ID)
	}

	call := idx.packageCalls[0]
	_, ok := call.expr.(query.MatchAll)
	assert.True(t, ok, "latest feed is unconditioned")
	assert.Equal(t, index.Page{From: 0, Size: LatestFeedSize}, call.page)
	assert.Equal(t, query.SortDirective{Field: query.FieldCreatedAt, Desc: true, AsDate: true}, call.sort)
}

func TestLatestReleases(t *testing.T) {
	idx := &fakeIndex{releases: index.ReleaseHits{Total: 5, Releases: make([]catalog.Release, 5)}}
	e := New(idx)

	rels, err := e.LatestReleases(context.Background())
	require.NoError(t, err)
	assert.Len(t, rels, 5)

	call := idx.releaseCalls[0]
	assert.Equal(t, query.SortDirective{Field: query.FieldReleasedAt, Desc: true, AsDate: true}, call.sort)
	assert.Equal(t, index.Page{From: 0, Size: LatestFeedSize}, call.page)
}
