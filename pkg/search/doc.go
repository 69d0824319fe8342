// Package search is the orchestration layer: it owns the full lifecycle of
// one search request and composes every other engine package into a single
// deterministic pipeline.
//
// # Pipeline
//
// A request flows through fixed stages, in order:
//
//  1. Query safety check (short-circuits to a blocked response)
//  2. Intent resolution (explicit override, classifier, or general)
//  3. Location resolution into a canonical signature
//  4. Cache lookup on the full parameter tuple
//  5. Concurrent source fan-out via the dispatcher
//  6. Deterministic sort of the flattened results
//  7. Result-level safety filtering
//  8. Domain tab extraction (first page, unscoped requests only)
//  9. Optional summary generation
// 10. Cache write and synthetic pagination
//
// Stage order is load-bearing: sorting happens before result filtering so a
// removed item never shifts pagination differently between cached and fresh
// responses, and tabs are extracted from the filtered set so a blocked host
// never surfaces as a tile.
//
// # Usage
//
//	service := search.NewService(search.Options{
//		Upstream: serpClient,
//		Catalog:  cfg.Catalog(),
//		CacheTTL: cfg.CacheTTL.Duration,
//	})
//	params, err := search.ParseSearchParams(r.URL.Query())
//	if err != nil {
//		// invalid parameter value
//	}
//	results, err := service.Search(ctx, params)
//
// # Integration
//
// This package integrates with:
//
//   - pkg/dispatch: concurrent per-source fan-out and fallback
//   - pkg/geo: location and language resolution
//   - pkg/safety: query and result content filtering
//   - pkg/cache: TTL response caching
//   - pkg/tabs, pkg/rank, pkg/llm: presentation-side result shaping
//   - pkg/api: as the search backend for REST endpoints
package search
