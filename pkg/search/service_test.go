package search

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/geo"
	"github.com/rubiojr/scour/pkg/rank"
	"github.com/rubiojr/scour/pkg/serp"
)

type fakeUpstream struct {
	mu    sync.Mutex
	calls int
	items []core.ResultItem
}

func (f *fakeUpstream) Search(ctx context.Context, q serp.Query) (*serp.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return &serp.Response{Items: f.items, CorrectedQuery: "golang testing"}, nil
}

func (f *fakeUpstream) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func webItems(links ...string) []core.ResultItem {
	items := make([]core.ResultItem, 0, len(links))
	for i, link := range links {
		items = append(items, core.ResultItem{
			Kind:     core.KindWeb,
			Title:    "result",
			Link:     link,
			Position: i + 1,
		})
	}
	return items
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewService(Options{Upstream: &fakeUpstream{}})
	defer svc.Close()

	if _, err := svc.Search(context.Background(), SearchParams{Query: "   "}); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchBlockedQueryShortCircuits(t *testing.T) {
	upstream := &fakeUpstream{items: webItems("https://example.com/a")}
	svc := NewService(Options{Upstream: upstream})
	defer svc.Close()

	results, err := svc.Search(context.Background(), SearchParams{Query: "free porn videos"})
	if err != nil {
		t.Fatalf("blocked query must not error: %v", err)
	}
	if !results.Blocked {
		t.Fatal("expected blocked response")
	}
	if len(results.Results) != 0 {
		t.Fatalf("blocked response must be empty, got %d results", len(results.Results))
	}
	if results.Message == "" {
		t.Fatal("blocked response must carry a message")
	}
	if upstream.callCount() != 0 {
		t.Fatalf("blocked query must not reach the upstream, saw %d calls", upstream.callCount())
	}
}

func TestSearchEndToEnd(t *testing.T) {
	upstream := &fakeUpstream{items: webItems(
		"https://go.dev/doc",
		"https://pkg.go.dev/testing",
		"https://go.dev/blog",
	)}
	svc := NewService(Options{Upstream: upstream, DefaultLimit: 10})
	defer svc.Close()

	results, err := svc.Search(context.Background(), SearchParams{Query: "golang testin"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results.Results))
	}
	if results.Intent != core.IntentGeneral {
		t.Fatalf("expected general intent, got %s", results.Intent)
	}
	if results.CorrectedQuery != "golang testing" {
		t.Fatalf("expected corrected query, got %q", results.CorrectedQuery)
	}
	if len(results.Sources) == 0 {
		t.Fatal("expected per-source outcomes")
	}
	if results.Pagination.CurrentPage != 1 || results.Pagination.TotalPages != rank.SyntheticPageBound {
		t.Fatalf("unexpected pagination: %+v", results.Pagination)
	}
	if len(results.Tabs) == 0 {
		t.Fatal("expected domain tabs on an unscoped first page")
	}
	if results.Location != nil {
		t.Fatalf("no location input should resolve globally, got %+v", results.Location)
	}
	if len(results.IntentSources) == 0 {
		t.Fatal("expected the intent's source catalog in the response")
	}
}

type fakeSummarizer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, query string, items []core.ResultItem, intent core.Intent) string {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return "summary of " + query
}

func TestSearchSummaryOnlyForDefaultFirstPage(t *testing.T) {
	upstream := &fakeUpstream{items: webItems("https://example.com/a")}
	summarizer := &fakeSummarizer{}
	svc := NewService(Options{Upstream: upstream, Summarizer: summarizer})
	defer svc.Close()

	query := "what is a goroutine"

	results, err := svc.Search(context.Background(), SearchParams{Query: query})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results.Summary == "" {
		t.Fatal("expected a summary for an explanatory first-page query")
	}

	deep, err := svc.Search(context.Background(), SearchParams{Query: query, Page: 2})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if deep.Summary != "" {
		t.Fatal("deep pages must not carry a summary")
	}

	narrowed, err := svc.Search(context.Background(), SearchParams{Query: query, SourceSelector: "example.com"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if narrowed.Summary != "" {
		t.Fatal("source-narrowed searches must not carry a summary")
	}
}

func TestSearchCacheHit(t *testing.T) {
	upstream := &fakeUpstream{items: webItems("https://example.com/a")}
	svc := NewService(Options{Upstream: upstream, CacheTTL: time.Minute})
	defer svc.Close()

	params := SearchParams{Query: "cache me"}
	first, err := svc.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	if first.Cached {
		t.Fatal("first response must not be marked cached")
	}
	callsAfterFirst := upstream.callCount()

	second, err := svc.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("second search failed: %v", err)
	}
	if !second.Cached {
		t.Fatal("second response must come from cache")
	}
	if upstream.callCount() != callsAfterFirst {
		t.Fatal("cache hit must not reach the upstream")
	}

	// A different page is a different cache entry.
	if _, err := svc.Search(context.Background(), SearchParams{Query: "cache me", Page: 2}); err != nil {
		t.Fatalf("page 2 search failed: %v", err)
	}
	if upstream.callCount() == callsAfterFirst {
		t.Fatal("different page must miss the cache")
	}
}

func TestSearchTabsOnlyOnUnscopedFirstPage(t *testing.T) {
	upstream := &fakeUpstream{items: webItems("https://example.com/a", "https://example.com/b")}
	svc := NewService(Options{Upstream: upstream})
	defer svc.Close()

	deep, err := svc.Search(context.Background(), SearchParams{Query: "widgets", Page: 3})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(deep.Tabs) != 0 {
		t.Fatal("deep pages must not carry tabs")
	}

	scoped, err := svc.Search(context.Background(), SearchParams{Query: "widgets", SiteOverride: "example.com"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(scoped.Tabs) != 0 {
		t.Fatal("site-scoped requests must not carry tabs")
	}
}

func TestResolveSourcesDynamicDomain(t *testing.T) {
	svc := NewService(Options{Upstream: &fakeUpstream{}})
	defer svc.Close()

	sources := svc.resolveSources("shop.example.com", core.IntentGeneral)
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if !sources[0].Scoped() || sources[0].SiteDomain != "shop.example.com" {
		t.Fatalf("expected dynamic scoped source, got %+v", sources[0])
	}

	// Unknown non-domain token degrades to the native web source.
	sources = svc.resolveSources("nope", core.IntentGeneral)
	if len(sources) != 1 || sources[0].Scoped() {
		t.Fatalf("expected native source fallback, got %+v", sources)
	}
}

func TestParseSearchParams(t *testing.T) {
	values := url.Values{}
	values.Set("q", "best ramen")
	values.Set("sources", "web,maps")
	values.Set("page", "2")
	values.Set("limit", "25")
	values.Set("sort", "recent")
	values.Set("city", "Austin")
	values.Set("country", "United States")
	values.Set("time_range", "week")
	values.Set("language", "en")

	params, err := ParseSearchParams(values)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if params.Query != "best ramen" || params.Page != 2 || params.Limit != 25 {
		t.Fatalf("unexpected params: %+v", params)
	}
	if params.Sort != rank.ByRecent {
		t.Fatalf("expected recent sort, got %q", params.Sort)
	}
	if params.LocationMode != geo.ModeManual {
		t.Fatal("manual fields without a mode must imply manual resolution")
	}
	if params.Manual.City != "Austin" {
		t.Fatalf("unexpected manual location: %+v", params.Manual)
	}
	if params.Filters.TimeRange != core.TimeWeek || params.Filters.Language != "en" {
		t.Fatalf("unexpected filters: %+v", params.Filters)
	}
	if !params.AutoIntent {
		t.Fatal("auto intent must default on")
	}
}

type fakeLocator struct {
	loc *core.PartialLocation
}

func (f *fakeLocator) DetectByIP(ctx context.Context, ip string) (*core.PartialLocation, error) {
	return f.loc, nil
}

func (f *fakeLocator) ReverseGeocode(ctx context.Context, lat, lon float64) (*core.PartialLocation, error) {
	return f.loc, nil
}

func TestSearchDetectedLocation(t *testing.T) {
	upstream := &fakeUpstream{items: webItems("https://example.com/a")}
	svc := NewService(Options{
		Upstream: upstream,
		Locator:  &fakeLocator{loc: &core.PartialLocation{Country: "Spain", City: "Madrid"}},
	})
	defer svc.Close()

	results, err := svc.Search(context.Background(), SearchParams{
		Query:          "tapas",
		LocationMode:   geo.ModeNormal,
		HasCoordinates: true,
		Latitude:       40.4168,
		Longitude:      -3.7038,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results.Location == nil {
		t.Fatal("expected a resolved location from reverse geocoding")
	}
	if results.Location.CountryCode != "es" {
		t.Fatalf("expected country code es, got %q", results.Location.CountryCode)
	}
}

func TestParseSearchParamsCoordinates(t *testing.T) {
	values := url.Values{}
	values.Set("q", "x")
	values.Set("lat", "40.4168")
	values.Set("lon", "-3.7038")

	params, err := ParseSearchParams(values)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !params.HasCoordinates || params.Latitude != 40.4168 || params.Longitude != -3.7038 {
		t.Fatalf("unexpected coordinates: %+v", params)
	}

	values.Set("lat", "north")
	if _, err := ParseSearchParams(values); err == nil {
		t.Fatal("expected error for non-numeric lat")
	}
}

func TestParseSearchParamsInvalidPage(t *testing.T) {
	values := url.Values{}
	values.Set("q", "x")
	values.Set("page", "two")
	if _, err := ParseSearchParams(values); err == nil {
		t.Fatal("expected error for non-numeric page")
	}
}
