package query

// Sort keys accepted from callers.
const (
	SortStars    = "stars"
	SortForks    = "forks"
	SortRelevant = "relevant"
	SortCreated  = "created"
	SortUpdated  = "updated"
)

// SortDirective is an index-neutral ordering instruction. When ByScore is
// set the index orders by computed relevance; otherwise by Field. Documents
// missing the field order as the smallest value, so descending popularity
// sorts treat an absent metric as zero.
type SortDirective struct {
	ByScore bool
	Field   string
	Desc    bool
	AsDate  bool
}

// Relevance is the default directive: computed score, descending.
func Relevance() SortDirective {
	return SortDirective{ByScore: true, Desc: true}
}

// ResolveSort maps a caller-supplied sort key to its directive. It is a
// total function: an empty or unrecognized key falls back to relevance.
func ResolveSort(key string) SortDirective {
	switch key {
	case SortStars:
		return SortDirective{Field: FieldStars, Desc: true}
	case SortForks:
		return SortDirective{Field: FieldForks, Desc: true}
	case SortCreated:
		return SortDirective{Field: FieldCreatedAt, Desc: true, AsDate: true}
	case SortUpdated:
		return SortDirective{Field: FieldUpdatedAt, Desc: true, AsDate: true}
	default:
		return Relevance()
	}
}
