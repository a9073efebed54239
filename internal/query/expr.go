// Package query builds the structured queries, pagination arithmetic, and
// sort directives the search engine sends to the document index. Everything
// here is pure: no I/O, no failure modes.
//
// The expression types form a small index-neutral AST. The index adapter
// compiles it to its native query grammar; keeping the engine off the
// adapter's types is what lets tests run against an in-memory fake.
package query

// Expr is a node in the structured query AST.
type Expr interface {
	isExpr()
}

// Term matches documents whose field contains the exact indexed term.
type Term struct {
	Field string
	Value string
}

// QueryString is a free-form relevance query in the index's native query
// grammar. The caller is responsible for escaping (see BuildTextQuery).
type QueryString struct {
	Query string
}

// Disjunction matches documents satisfying at least one sub-expression.
type Disjunction struct {
	Exprs []Expr
}

// Conjunction matches documents satisfying every sub-expression.
type Conjunction struct {
	Exprs []Expr
}

// MatchAll matches every document in the collection.
type MatchAll struct{}

func (Term) isExpr()        {}
func (QueryString) isExpr() {}
func (Disjunction) isExpr() {}
func (Conjunction) isExpr() {}
func (MatchAll) isExpr()    {}
