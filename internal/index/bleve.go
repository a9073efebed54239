package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/depscout/depscout/internal/catalog"
	scerrors "github.com/depscout/depscout/internal/errors"
	"github.com/depscout/depscout/internal/query"
)

// Bleve is the bleve-backed document index. It implements both the read
// contract (Index) and the ingestion contract (Writer).
type Bleve struct {
	index bleve.Index
	path  string
}

var (
	_ Index  = (*Bleve)(nil)
	_ Writer = (*Bleve)(nil)
)

// Open opens the index at path, creating it with the catalog mapping if it
// does not exist. An empty path yields an in-memory index (used by tests
// and throwaway ingest runs).
func Open(path string) (*Bleve, error) {
	if path == "" {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, scerrors.IndexError("create in-memory index", err)
		}
		return &Bleve{index: idx}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, scerrors.IndexError("create index directory", err)
	}
	if err := validateIntegrity(path); err != nil {
		return nil, scerrors.IndexError("index integrity check failed", err).
			WithDetail("path", path)
	}

	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildIndexMapping())
	}
	if err != nil {
		return nil, scerrors.IndexError("open index", err).WithDetail("path", path)
	}
	return &Bleve{index: idx, path: path}, nil
}

// validateIntegrity rejects a half-written index before bleve trips over
// it with a less clear error. A missing directory is fine (fresh create).
func validateIntegrity(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	metaPath := filepath.Join(path, "index_meta.json")
	data, err := os.ReadFile(metaPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("index_meta.json missing (incomplete index)")
	}
	if err != nil {
		return fmt.Errorf("read index_meta.json: %w", err)
	}
	var meta map[string]interface{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("index_meta.json is corrupt: %w", err)
	}
	return nil
}

// Close closes the underlying index.
func (b *Bleve) Close() error {
	return b.index.Close()
}

// DocCount returns the number of documents across both collections.
func (b *Bleve) DocCount() (uint64, error) {
	n, err := b.index.DocCount()
	if err != nil {
		return 0, scerrors.IndexError("doc count", err)
	}
	return n, nil
}

// SearchPackages runs one query against the package collection.
func (b *Bleve) SearchPackages(ctx context.Context, expr query.Expr, sort query.SortDirective, page Page) (PackageHits, error) {
	res, err := b.search(ctx, Packages, expr, sort, page, nil)
	if err != nil {
		return PackageHits{}, err
	}
	hits := PackageHits{Total: int(res.Total), Packages: make([]catalog.Package, 0, len(res.Hits))}
	for _, hit := range res.Hits {
		pkg, err := decodePackage(hit)
		if err != nil {
			return PackageHits{}, err
		}
		hits.Packages = append(hits.Packages, pkg)
	}
	return hits, nil
}

// SearchReleases runs one query against the release collection.
func (b *Bleve) SearchReleases(ctx context.Context, expr query.Expr, sort query.SortDirective, page Page) (ReleaseHits, error) {
	res, err := b.search(ctx, Releases, expr, sort, page, nil)
	if err != nil {
		return ReleaseHits{}, err
	}
	hits := ReleaseHits{Total: int(res.Total), Releases: make([]catalog.Release, 0, len(res.Hits))}
	for _, hit := range res.Hits {
		rel, err := decodeRelease(hit)
		if err != nil {
			return ReleaseHits{}, err
		}
		hits.Releases = append(hits.Releases, rel)
	}
	return hits, nil
}

// AggregateTerms buckets every document of the collection by the field's
// values, returning up to size (term, count) pairs in the index's bucket
// order. No hits are fetched, only the aggregation.
func (b *Bleve) AggregateTerms(ctx context.Context, c Collection, field string, size int) ([]TermCount, error) {
	facet := bleve.NewFacetRequest(field, size)
	res, err := b.search(ctx, c, query.MatchAll{}, query.SortDirective{ByScore: true, Desc: true}, Page{From: 0, Size: 0}, facet)
	if err != nil {
		return nil, err
	}
	fr, ok := res.Facets["terms"]
	if !ok || fr.Terms == nil {
		return []TermCount{}, nil
	}
	terms := fr.Terms.Terms()
	counts := make([]TermCount, 0, len(terms))
	for _, t := range terms {
		counts = append(counts, TermCount{Term: t.Term, Count: t.Count})
	}
	return counts, nil
}

func (b *Bleve) search(ctx context.Context, c Collection, expr query.Expr, sort query.SortDirective, page Page, facet *bleve.FacetRequest) (*bleve.SearchResult, error) {
	kind := bleve.NewTermQuery(string(c))
	kind.SetField(typeField)
	q := bleve.NewConjunctionQuery(kind, compileExpr(expr))

	req := bleve.NewSearchRequestOptions(q, page.Size, page.From, false)
	req.Fields = []string{"*"}
	req.SortByCustom(compileSort(sort))
	if facet != nil {
		req.AddFacet("terms", facet)
	}

	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, scerrors.IndexError(fmt.Sprintf("%s query failed", c), err)
	}
	return res, nil
}

// compileExpr lowers the index-neutral AST to bleve's query types.
func compileExpr(expr query.Expr) blevequery.Query {
	switch e := expr.(type) {
	case query.Term:
		q := bleve.NewTermQuery(e.Value)
		q.SetField(e.Field)
		return q
	case query.QueryString:
		return bleve.NewQueryStringQuery(e.Query)
	case query.Disjunction:
		qs := make([]blevequery.Query, 0, len(e.Exprs))
		for _, sub := range e.Exprs {
			qs = append(qs, compileExpr(sub))
		}
		return bleve.NewDisjunctionQuery(qs...)
	case query.Conjunction:
		qs := make([]blevequery.Query, 0, len(e.Exprs))
		for _, sub := range e.Exprs {
			qs = append(qs, compileExpr(sub))
		}
		return bleve.NewConjunctionQuery(qs...)
	default:
		return bleve.NewMatchAllQuery()
	}
}

// compileSort lowers a sort directive to a bleve sort order. Every order
// ends with a document-ID sort so equal-score and equal-value hits come
// back in a deterministic order.
func compileSort(d query.SortDirective) search.SortOrder {
	var order search.SortOrder
	if d.ByScore {
		order = append(order, &search.SortScore{Desc: d.Desc})
	} else {
		typ := search.SortFieldAsNumber
		if d.AsDate {
			typ = search.SortFieldAsDate
		}
		order = append(order, &search.SortField{
			Field:   d.Field,
			Desc:    d.Desc,
			Type:    typ,
			Missing: search.SortFieldMissingLast,
		})
	}
	return append(order, &search.SortDocID{})
}

// packageDoc and releaseDoc are the indexed document shapes. The json tags
// double as the indexed field names.
type packageDoc struct {
	Kind         string    `json:"kind"`
	Organization string    `json:"organization"`
	Repository   string    `json:"repository"`
	Description  string    `json:"description"`
	Keywords     []string  `json:"keywords"`
	Readme       string    `json:"readme"`
	Stars        int       `json:"stars"`
	Forks        int       `json:"forks"`
	Targets      []string  `json:"targets"`
	Dependencies []string  `json:"dependencies"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type referenceDoc struct {
	Organization string `json:"organization"`
	Repository   string `json:"repository"`
}

type coordinateDoc struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
}

type releaseDoc struct {
	Kind       string        `json:"kind"`
	Reference  referenceDoc  `json:"reference"`
	Coordinate coordinateDoc `json:"coordinate"`
	Target     string        `json:"target"`
	ReleasedAt time.Time     `json:"released_at"`
}

// PackageID derives the storage-internal document ID for a package.
func PackageID(ref catalog.PackageReference) string {
	return fmt.Sprintf("package::%s/%s", ref.Organization, ref.Repository)
}

// ReleaseID derives the storage-internal document ID for a release.
func ReleaseID(coord catalog.ArtifactCoordinate) string {
	return fmt.Sprintf("release::%s/%s@%s", coord.Group, coord.Artifact, coord.Version)
}

// IndexPackages writes packages in a single batch.
func (b *Bleve) IndexPackages(ctx context.Context, pkgs []catalog.Package) error {
	if len(pkgs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	batch := b.index.NewBatch()
	for _, p := range pkgs {
		doc := packageDoc{
			Kind:         string(Packages),
			Organization: p.Organization,
			Repository:   p.Repository,
			Description:  p.Description,
			Keywords:     p.Keywords,
			Readme:       p.Readme,
			Stars:        p.Stars,
			Forks:        p.Forks,
			Targets:      p.Targets,
			Dependencies: p.Dependencies,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		}
		if err := batch.Index(PackageID(p.Reference()), doc); err != nil {
			return scerrors.IndexError("batch package", err)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return scerrors.IndexError("index packages", err)
	}
	return nil
}

// IndexReleases writes releases in a single batch.
func (b *Bleve) IndexReleases(ctx context.Context, rels []catalog.Release) error {
	if len(rels) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	batch := b.index.NewBatch()
	for _, r := range rels {
		doc := releaseDoc{
			Kind: string(Releases),
			Reference: referenceDoc{
				Organization: r.Reference.Organization,
				Repository:   r.Reference.Repository,
			},
			Coordinate: coordinateDoc{
				Group:    r.Coordinate.Group,
				Artifact: r.Coordinate.Artifact,
				Version:  r.Coordinate.Version,
			},
			Target:     r.Target,
			ReleasedAt: r.ReleasedAt,
		}
		if err := batch.Index(ReleaseID(r.Coordinate), doc); err != nil {
			return scerrors.IndexError("batch release", err)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return scerrors.IndexError("index releases", err)
	}
	return nil
}
