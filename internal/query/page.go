package query

// PageSize is the fixed number of items per page for every paginated query
// in the system. Offsets are always derived from it; callers never see
// offset-style values.
const PageSize = 10

// ResolvePage computes the offset/limit pair for a requested 1-indexed page.
// Any requested page <= 0 is clamped to 1 rather than rejected; the clamped
// page is what must be echoed back in result metadata. A page beyond the
// available results is not an error either: the index returns zero hits for
// an out-of-range offset and the caller gets an empty page with correct
// metadata.
func ResolvePage(requested int) (offset, limit, clamped int) {
	clamped = requested
	if clamped <= 0 {
		clamped = 1
	}
	return PageSize * (clamped - 1), PageSize, clamped
}

// TotalPages returns ceil(totalHits / PageSize). Zero hits means zero pages.
func TotalPages(totalHits int) int {
	if totalHits <= 0 {
		return 0
	}
	return (totalHits + PageSize - 1) / PageSize
}
