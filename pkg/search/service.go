package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rubiojr/scour/pkg/cache"
	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/dispatch"
	"github.com/rubiojr/scour/pkg/geo"
	"github.com/rubiojr/scour/pkg/llm"
	"github.com/rubiojr/scour/pkg/log"
	"github.com/rubiojr/scour/pkg/rank"
	"github.com/rubiojr/scour/pkg/safety"
	"github.com/rubiojr/scour/pkg/tabs"
)

// ErrEmptyQuery is returned when the query is empty after trimming.
var ErrEmptyQuery = errors.New("query must not be empty")

// SelectorAll requests the full per-intent source catalog.
const SelectorAll = "all"

// SearchParams represents all parameters for a search operation.
type SearchParams struct {
	// Query is the search text. Must be non-empty after trimming.
	Query string

	// SourceSelector picks which sources to query. Empty or "all" uses the
	// full catalog for the resolved intent. Otherwise it is a comma-separated
	// list of source IDs; an unknown entry containing a dot is treated as a
	// dynamic site-scoped source (the domain-tab click path).
	SourceSelector string

	// Page is the 1-based result page. Values below 1 are clamped to 1.
	Page int

	// Limit is the page size. Non-positive values fall back to the
	// service default.
	Limit int

	// Sort selects the result ordering. Zero value means relevance.
	Sort rank.Order

	// Intent, when non-empty, overrides classification entirely.
	Intent string

	// AutoIntent enables classifier-based intent detection when no explicit
	// Intent is given. Without it (or without a classifier) every query is
	// treated as general.
	AutoIntent bool

	// LocationMode selects manual, normal (detected) or global resolution.
	LocationMode geo.Mode

	// Manual carries caller-supplied location fields, used in manual mode.
	Manual core.PartialLocation

	// ClientIP feeds IP-based detection in normal mode. Empty skips
	// detection and degrades to a global search.
	ClientIP string

	// Latitude/Longitude feed reverse geocoding in normal mode when
	// HasCoordinates is set. Coordinates take precedence over ClientIP.
	Latitude       float64
	Longitude      float64
	HasCoordinates bool

	// Filters are the orthogonal time/language/filetype restrictions.
	Filters core.SearchFilters

	// SiteOverride scopes every source to one domain, bypassing the
	// catalog's own site scoping.
	SiteOverride string
}

// SearchResults is the complete response for one search operation.
type SearchResults struct {
	Results         []core.ResultItem        `json:"results"`
	Intent          core.Intent              `json:"intent"`
	Summary         string                   `json:"summary,omitempty"`
	Sources         []dispatch.SourceOutcome `json:"sources"`
	IntentSources   []core.Source            `json:"intent_sources,omitempty"`
	Tabs            []tabs.DomainTile        `json:"tabs,omitempty"`
	Pagination      rank.Pagination          `json:"pagination"`
	Location        *core.LocationSignature  `json:"location,omitempty"`
	CorrectedQuery  string                   `json:"corrected_query,omitempty"`
	RelatedSearches []string                 `json:"related_searches,omitempty"`
	Blocked         bool                     `json:"blocked,omitempty"`
	Message         string                   `json:"message,omitempty"`
	Cached          bool                     `json:"cached,omitempty"`
}

// Options wires the service's collaborators. Upstream and Catalog are
// required; everything else has a working zero value.
type Options struct {
	// Upstream is the provider client the dispatcher fans out to.
	Upstream dispatch.Searcher

	// Catalog maps each intent to its static source list.
	Catalog map[core.Intent][]core.Source

	// Locator resolves client IPs to locations. Nil disables detection.
	Locator geo.Locator

	// Classifier detects query intent. Nil disables auto-detection.
	Classifier llm.Classifier

	// Summarizer generates first-page summaries. Nil disables summaries.
	Summarizer llm.Summarizer

	// CacheTTL is how long responses stay cached. Non-positive disables
	// caching.
	CacheTTL time.Duration

	// DefaultLimit is the page size used when the request gives none.
	DefaultLimit int

	// StateCityHint is passed through to the location resolver.
	StateCityHint bool
}

// Service executes search operations. Safe for concurrent use.
type Service struct {
	dispatcher   *dispatch.Dispatcher
	filter       *safety.Filter
	resolver     *geo.Resolver
	locator      geo.Locator
	classifier   llm.Classifier
	summarizer   llm.Summarizer
	store        *cache.Store[cache.Key, SearchResults]
	catalog      map[core.Intent][]core.Source
	cacheTTL     time.Duration
	defaultLimit int
	logger       *log.Logger
}

// NewService creates a search service from the given options.
func NewService(opts Options) *Service {
	limit := opts.DefaultLimit
	if limit <= 0 {
		limit = 10
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = core.DefaultCatalog()
	}

	s := &Service{
		dispatcher:   dispatch.New(opts.Upstream),
		filter:       safety.NewFilter(),
		resolver:     geo.NewResolver(opts.StateCityHint),
		locator:      opts.Locator,
		classifier:   opts.Classifier,
		summarizer:   opts.Summarizer,
		catalog:      catalog,
		cacheTTL:     opts.CacheTTL,
		defaultLimit: limit,
		logger:       log.ForComponent("search"),
	}
	if opts.CacheTTL > 0 {
		s.store = cache.New[cache.Key, SearchResults]()
		s.store.StartSweeper(opts.CacheTTL)
	}
	return s
}

// Close releases background resources (the cache sweeper).
func (s *Service) Close() {
	if s.store != nil {
		s.store.Stop()
	}
}

// Search runs the full pipeline for one request.
func (s *Service) Search(ctx context.Context, params SearchParams) (*SearchResults, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	// Query-level safety check happens before anything touches the network
	// or the classifier. A blocked query is a complete, empty response.
	if verdict := s.filter.FilterQuery(query); !verdict.Allowed {
		s.logger.Infof("query blocked (%s)", verdict.Reason)
		return &SearchResults{
			Results:    []core.ResultItem{},
			Intent:     core.IntentGeneral,
			Sources:    []dispatch.SourceOutcome{},
			Pagination: rank.Pagination{CurrentPage: page},
			Blocked:    true,
			Message:    "no results found",
		}, nil
	}

	intent := s.resolveIntent(ctx, query, params)
	sig := s.resolveLocation(ctx, params)
	filters := params.Filters.Normalize()
	sources := s.resolveSources(params.SourceSelector, intent)

	key := cache.Key{
		Query:          query,
		SourceSelector: normalizeSelector(params.SourceSelector),
		Page:           page,
		Limit:          limit,
		Sort:           string(params.Sort),
		CountryCode:    sig.CountryCode,
		Location:       sig.Canonical,
		TimeRange:      filters.TimeRange,
		Language:       filters.Language,
		FileType:       filters.FileType,
		SiteOverride:   params.SiteOverride,
	}
	if s.store != nil {
		if hit, ok := s.store.Get(key); ok {
			hit.Cached = true
			return &hit, nil
		}
	}

	batch, err := s.dispatcher.Dispatch(ctx, dispatch.Request{
		Query:            query,
		Sources:          sources,
		Location:         sig,
		UpstreamLocation: s.resolver.UpstreamLocation(sig),
		Filters:          filters,
		Page:             page,
		Limit:            limit,
		SiteOverride:     params.SiteOverride,
	})
	if err != nil {
		return nil, err
	}

	sorted := rank.Sort(batch.Items, params.Sort, time.Now())
	filtered := s.filter.FilterResults(sorted)

	results := &SearchResults{
		Results:         rank.Window(filtered, limit),
		Intent:          intent,
		Sources:         batch.Outcomes,
		IntentSources:   core.CatalogFor(s.catalog, intent),
		Pagination:      rank.Paginate(page, limit),
		CorrectedQuery:  batch.CorrectedQuery,
		RelatedSearches: batch.RelatedSearches,
	}
	if !sig.Global() {
		loc := sig
		results.Location = &loc
	}

	// Tabs only make sense on an unscoped first page: deeper pages and
	// site-scoped requests already have a narrowed view.
	if page == 1 && params.SiteOverride == "" {
		results.Tabs = tabs.ExtractDomains(filtered, intent)
	}

	// Summaries are first-page-only and skipped when the caller already
	// narrowed the search to specific sources or a single site.
	if s.summarizer != nil && page == 1 && params.SiteOverride == "" &&
		normalizeSelector(params.SourceSelector) == SelectorAll && llm.IsExplanatory(query) {
		results.Summary = s.summarizer.Summarize(ctx, query, results.Results, intent)
	}

	if s.store != nil {
		s.store.Set(key, *results, s.cacheTTL)
	}
	return results, nil
}

func (s *Service) resolveIntent(ctx context.Context, query string, params SearchParams) core.Intent {
	if params.Intent != "" {
		return core.ParseIntent(params.Intent)
	}
	if params.AutoIntent && s.classifier != nil {
		return s.classifier.Classify(ctx, query)
	}
	return core.IntentGeneral
}

func (s *Service) resolveLocation(ctx context.Context, params SearchParams) core.LocationSignature {
	var detected *core.PartialLocation
	if params.LocationMode != geo.ModeManual && params.LocationMode != geo.ModeGlobal && s.locator != nil {
		switch {
		case params.HasCoordinates:
			loc, err := s.locator.ReverseGeocode(ctx, params.Latitude, params.Longitude)
			if err != nil {
				s.logger.Debugf("reverse geocoding failed: %v", err)
			} else {
				detected = loc
			}
		case params.ClientIP != "":
			loc, err := s.locator.DetectByIP(ctx, params.ClientIP)
			if err != nil {
				s.logger.Debugf("ip detection failed: %v", err)
			} else {
				detected = loc
			}
		}
	}
	return s.resolver.Resolve(params.Manual, detected, params.LocationMode)
}

// resolveSources turns the selector into a concrete source list. Unknown
// selector entries that look like domains become dynamic site-scoped
// sources; anything else is dropped. An empty outcome degrades to the
// native web source.
func (s *Service) resolveSources(selector string, intent core.Intent) []core.Source {
	catalog := core.CatalogFor(s.catalog, intent)
	sel := normalizeSelector(selector)
	if sel == SelectorAll {
		return catalog
	}

	var picked []core.Source
	for _, token := range strings.Split(sel, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if src, ok := findSource(catalog, token); ok {
			picked = append(picked, src)
			continue
		}
		if strings.Contains(token, ".") {
			picked = append(picked, core.Source{
				ID:          token,
				DisplayName: token,
				SiteDomain:  token,
				Kind:        core.KindWeb,
			})
			continue
		}
		s.logger.Debugf("unknown source %q ignored", token)
	}
	if len(picked) == 0 {
		return []core.Source{core.NativeSource()}
	}
	return picked
}

func findSource(catalog []core.Source, id string) (core.Source, bool) {
	for _, src := range catalog {
		if src.ID == id {
			return src, true
		}
	}
	return core.Source{}, false
}

func normalizeSelector(selector string) string {
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return SelectorAll
	}
	return sel
}
