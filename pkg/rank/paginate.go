package rank

// SyntheticPageBound is how many pages the engine advertises. The upstream
// does not expose a reliable total result count, so TotalResults is
// synthesized as limit × SyntheticPageBound; it is a UI paging affordance,
// not a real count, and consumers must not treat it as ground truth.
const SyntheticPageBound = 100

// Pagination is the synthetic page-window metadata attached to a response.
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalResults int  `json:"total_results"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// Paginate computes the synthetic window for a page/limit pair. Page and
// limit are clamped to sane minimums first.
func Paginate(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   SyntheticPageBound,
		TotalResults: limit * SyntheticPageBound,
		HasNext:      page < SyntheticPageBound,
		HasPrevious:  page > 1,
	}
}

// Window clamps an aggregated result list to the page limit. The upstream
// already pages per source; after multi-source aggregation the combined list
// can exceed one page.
func Window[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
