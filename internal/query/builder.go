package query

import "strings"

// Indexed field paths on the package collection.
const (
	FieldKeywords     = "keywords"
	FieldDescription  = "description"
	FieldRepository   = "repository"
	FieldOrganization = "organization"
	FieldReadme       = "readme"
	FieldStars        = "stars"
	FieldForks        = "forks"
	FieldCreatedAt    = "created_at"
	FieldUpdatedAt    = "updated_at"
	FieldDependencies = "dependencies"
	FieldTargets      = "targets"
)

// Indexed field paths on the release collection. Reference and coordinate
// are nested sub-documents addressed by dotted path.
const (
	FieldRefOrganization = "reference.organization"
	FieldRefRepository   = "reference.repository"
	FieldCoordGroup      = "coordinate.group"
	FieldCoordArtifact   = "coordinate.artifact"
	FieldCoordVersion    = "coordinate.version"
	FieldReleasedAt      = "released_at"
)

// EscapeQueryString escapes the characters of s that are structurally
// significant to the index's query grammar. Only the path separator needs
// escaping: an unescaped "/" opens a regular expression, so "a/b" would be
// parsed as a regex fragment rather than a literal. Everything else passes
// through so callers keep the grammar's own operators.
func EscapeQueryString(s string) string {
	return strings.ReplaceAll(s, "/", `\/`)
}

// BuildTextQuery turns a free-text search string into a disjunction across
// the indexed package fields. Exact-term clauses let short precise tags (a
// keyword, an organization name) match deterministically; the trailing
// free-form clause supplies ranked relevance over prose. Under disjunctive
// scoring a document matching more clauses scores higher, so precise
// matches surface first. This never fails.
func BuildTextQuery(raw string) Expr {
	return Disjunction{Exprs: []Expr{
		Term{Field: FieldKeywords, Value: raw},
		Term{Field: FieldDescription, Value: raw},
		Term{Field: FieldRepository, Value: raw},
		Term{Field: FieldOrganization, Value: raw},
		Term{Field: FieldReadme, Value: raw},
		QueryString{Query: EscapeQueryString(raw)},
	}}
}
