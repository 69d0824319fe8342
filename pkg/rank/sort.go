// Package rank provides deterministic result ordering and the synthetic
// page-window metadata the engine exposes in place of an upstream total it
// cannot trust.
package rank

import (
	"sort"
	"time"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/parse"
)

// Order selects a sort strategy.
type Order string

const (
	ByRelevance   Order = "relevance"
	ByRecent      Order = "recent"
	ByMostViewed  Order = "mostViewed"
	ByMostEngaged Order = "mostEngaged"
)

// ParseOrder maps a string to a known Order, defaulting to relevance.
func ParseOrder(s string) Order {
	switch Order(s) {
	case ByRecent, ByMostViewed, ByMostEngaged, ByRelevance:
		return Order(s)
	}
	return ByRelevance
}

// Sort returns a new slice ordered by the given strategy. All strategies
// are stable: ties keep the original relative order, so output is
// deterministic for identical inputs.
func Sort(items []core.ResultItem, by Order, now time.Time) []core.ResultItem {
	sorted := make([]core.ResultItem, len(items))
	copy(sorted, items)

	switch by {
	case ByRecent:
		type dated struct {
			t  time.Time
			ok bool
		}
		dates := make([]dated, len(sorted))
		for i, item := range sorted {
			t, ok := parse.Date(item.Date, now)
			dates[i] = dated{t: t, ok: ok}
		}
		idx := make([]int, len(sorted))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			da, db := dates[idx[a]], dates[idx[b]]
			if da.ok != db.ok {
				return da.ok // dated items before undated ones
			}
			if !da.ok {
				return false // undated items keep original order
			}
			return da.t.After(db.t)
		})
		out := make([]core.ResultItem, len(sorted))
		for i, j := range idx {
			out[i] = sorted[j]
		}
		return out

	case ByMostViewed:
		sort.SliceStable(sorted, func(a, b int) bool {
			return sorted[a].Views() > sorted[b].Views()
		})
	case ByMostEngaged:
		sort.SliceStable(sorted, func(a, b int) bool {
			return sorted[a].Engagement() > sorted[b].Engagement()
		})
	default: // relevance
		sort.SliceStable(sorted, func(a, b int) bool {
			pa, pb := sorted[a].Position, sorted[b].Position
			if (pa > 0) != (pb > 0) {
				return pa > 0 // ranked items before unranked ones
			}
			if pa <= 0 {
				return false
			}
			return pa < pb
		})
	}
	return sorted
}
