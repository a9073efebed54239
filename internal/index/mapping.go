package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// typeField discriminates package and release documents within the single
// bleve index; both mappings index it as an exact term so queries can be
// restricted to one collection.
const typeField = "kind"

// buildIndexMapping constructs the bleve mapping for the catalog.
//
// Keywords, organization, repository, build targets, and dependency
// coordinates are keyword-analyzed: a term query must match the whole
// stored value, mirroring the exact-tag semantics of the search
// disjunction. Description and readme stay on the standard analyzer so
// both term clauses and the free-form relevance clause hit individual
// prose terms. Release reference and coordinate are nested sub-documents
// addressed by dotted path.
func buildIndexMapping() *mapping.IndexMappingImpl {
	exact := bleve.NewKeywordFieldMapping()
	prose := bleve.NewTextFieldMapping()
	numeric := bleve.NewNumericFieldMapping()
	date := bleve.NewDateTimeFieldMapping()

	pkg := bleve.NewDocumentMapping()
	pkg.AddFieldMappingsAt(typeField, exact)
	pkg.AddFieldMappingsAt("organization", exact)
	pkg.AddFieldMappingsAt("repository", exact)
	pkg.AddFieldMappingsAt("keywords", exact)
	pkg.AddFieldMappingsAt("targets", exact)
	pkg.AddFieldMappingsAt("dependencies", exact)
	pkg.AddFieldMappingsAt("description", prose)
	pkg.AddFieldMappingsAt("readme", prose)
	pkg.AddFieldMappingsAt("stars", numeric)
	pkg.AddFieldMappingsAt("forks", numeric)
	pkg.AddFieldMappingsAt("created_at", date)
	pkg.AddFieldMappingsAt("updated_at", date)

	ref := bleve.NewDocumentMapping()
	ref.AddFieldMappingsAt("organization", exact)
	ref.AddFieldMappingsAt("repository", exact)

	coord := bleve.NewDocumentMapping()
	coord.AddFieldMappingsAt("group", exact)
	coord.AddFieldMappingsAt("artifact", exact)
	coord.AddFieldMappingsAt("version", exact)

	rel := bleve.NewDocumentMapping()
	rel.AddFieldMappingsAt(typeField, exact)
	rel.AddSubDocumentMapping("reference", ref)
	rel.AddSubDocumentMapping("coordinate", coord)
	rel.AddFieldMappingsAt("target", exact)
	rel.AddFieldMappingsAt("released_at", date)

	im := bleve.NewIndexMapping()
	// Type determination reflects over the Go struct, whose exported field
	// is Kind; the indexed field name stays "kind" via the json tag.
	im.TypeField = "Kind"
	im.AddDocumentMapping(string(Packages), pkg)
	im.AddDocumentMapping(string(Releases), rel)
	return im
}
