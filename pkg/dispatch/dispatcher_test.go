package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/serp"
)

// fakeUpstream answers queries by matching substrings of the effective
// search text. Safe for concurrent use.
type fakeUpstream struct {
	mu        sync.Mutex
	responses map[string]*serp.Response // substring -> response
	errors    map[string]error          // substring -> error
	calls     []serp.Query
}

func (f *fakeUpstream) Search(ctx context.Context, q serp.Query) (*serp.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()

	for sub, err := range f.errors {
		if strings.Contains(q.Text, sub) {
			return nil, err
		}
	}
	for sub, resp := range f.responses {
		if strings.Contains(q.Text, sub) {
			return resp, nil
		}
	}
	return &serp.Response{}, nil
}

func (f *fakeUpstream) callFor(sub string) *serp.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.calls {
		if strings.Contains(f.calls[i].Text, sub) {
			return &f.calls[i]
		}
	}
	return nil
}

func items(titles ...string) []core.ResultItem {
	var out []core.ResultItem
	for i, title := range titles {
		out = append(out, core.ResultItem{Kind: core.KindWeb, Title: title, Position: i + 1})
	}
	return out
}

func TestDispatchPreservesSourceOrder(t *testing.T) {
	upstream := &fakeUpstream{responses: map[string]*serp.Response{
		"site:b.com": {Items: items("b1", "b2")},
		"site:a.com": {Items: items("a1")},
	}}
	d := New(upstream)

	result, err := d.Dispatch(context.Background(), Request{
		Query: "q",
		Sources: []core.Source{
			{ID: "a", SiteDomain: "a.com", Kind: core.KindWeb},
			{ID: "b", SiteDomain: "b.com", Kind: core.KindWeb},
		},
		Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	var got []string
	for _, item := range result.Items {
		got = append(got, item.SourceID+":"+item.Title)
	}
	want := []string{"a:a1", "b:b1", "b:b2"}
	if len(got) != len(want) {
		t.Fatalf("aggregated items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("aggregated order = %v, want %v", got, want)
		}
	}
}

func TestDispatchFallbackDomainRetry(t *testing.T) {
	upstream := &fakeUpstream{responses: map[string]*serp.Response{
		"site:shop.sa":  {Items: nil},
		"site:shop.com": {Items: items("g1", "g2", "g3", "g4", "g5")},
	}}
	d := New(upstream)

	result, err := d.Dispatch(context.Background(), Request{
		Query:            "sneakers",
		Sources:          []core.Source{{ID: "shop", SiteDomain: "shop.sa", Kind: core.KindWeb}},
		Location:         core.LocationSignature{CountryCode: "sa", Canonical: "Saudi Arabia"},
		UpstreamLocation: "Saudi Arabia",
		Page:             1,
		Limit:            10,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if len(result.Items) != 5 {
		t.Fatalf("got %d items, want 5 from the fallback call", len(result.Items))
	}
	outcome := result.Outcomes[0]
	if !outcome.Fallback || outcome.Domain != "shop.com" {
		t.Errorf("outcome not tagged with fallback domain: %+v", outcome)
	}

	retry := upstream.callFor("site:shop.com")
	if retry == nil {
		t.Fatal("no retry call issued")
	}
	if retry.CountryCode != "" || retry.Location != "" {
		t.Errorf("fallback retry must drop geo restriction: %+v", retry)
	}
	if retry.Language != "ar" {
		t.Errorf("fallback language = %q, want geography default ar", retry.Language)
	}
}

func TestDispatchAbsorbsPartialFailure(t *testing.T) {
	upstream := &fakeUpstream{
		responses: map[string]*serp.Response{"site:ok.com": {Items: items("fine")}},
		errors:    map[string]error{"site:down.com": errors.New("connection refused")},
	}
	d := New(upstream)

	result, err := d.Dispatch(context.Background(), Request{
		Query: "q",
		Sources: []core.Source{
			{ID: "down", SiteDomain: "down.com", Kind: core.KindWeb},
			{ID: "ok", SiteDomain: "ok.com", Kind: core.KindWeb},
		},
		Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].SourceID != "ok" {
		t.Errorf("surviving source results wrong: %+v", result.Items)
	}
	if !result.Outcomes[0].Failed {
		t.Error("failed source not marked in outcomes")
	}
}

func TestDispatchConfigErrorEscalates(t *testing.T) {
	upstream := &fakeUpstream{errors: map[string]error{"": serp.ErrMissingAPIKey}}
	d := New(upstream)

	_, err := d.Dispatch(context.Background(), Request{
		Query:   "q",
		Sources: []core.Source{{ID: "web", Kind: core.KindWeb}},
		Page:    1, Limit: 10,
	})
	if !errors.Is(err, serp.ErrMissingAPIKey) {
		t.Errorf("err = %v, want wrapped ErrMissingAPIKey", err)
	}
}

func TestDispatchFirstCorrectedQueryWins(t *testing.T) {
	upstream := &fakeUpstream{responses: map[string]*serp.Response{
		"site:first.com":  {Items: items("x"), CorrectedQuery: "first fix", RelatedSearches: []string{"one"}},
		"site:second.com": {Items: items("y"), CorrectedQuery: "second fix", RelatedSearches: []string{"two"}},
	}}
	d := New(upstream)

	result, err := d.Dispatch(context.Background(), Request{
		Query: "q",
		Sources: []core.Source{
			{ID: "first", SiteDomain: "first.com", Kind: core.KindWeb},
			{ID: "second", SiteDomain: "second.com", Kind: core.KindWeb},
		},
		Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if result.CorrectedQuery != "first fix" || result.RelatedSearches[0] != "one" {
		t.Errorf("first-wins violated: corrected=%q related=%v", result.CorrectedQuery, result.RelatedSearches)
	}
}

func TestDispatchSiteOverrideAndFileType(t *testing.T) {
	upstream := &fakeUpstream{}
	d := New(upstream)

	_, err := d.Dispatch(context.Background(), Request{
		Query:        "report",
		Sources:      []core.Source{{ID: "docs", SiteDomain: "ignored.com", Kind: core.KindWeb}},
		Filters:      core.SearchFilters{FileType: core.FilePDF},
		SiteOverride: "override.org",
		Page:         1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	call := upstream.callFor("report")
	if call == nil {
		t.Fatal("no upstream call recorded")
	}
	if !strings.Contains(call.Text, "site:override.org") {
		t.Errorf("site override not applied: %q", call.Text)
	}
	if strings.Contains(call.Text, "ignored.com") {
		t.Errorf("source domain must lose to the override: %q", call.Text)
	}
	if !strings.Contains(call.Text, "filetype:pdf") {
		t.Errorf("file type qualifier missing: %q", call.Text)
	}
}

func TestGlobalCounterpart(t *testing.T) {
	tests := []struct {
		domain string
		want   string
		ok     bool
	}{
		{"amazon.sa", "amazon.com", true},
		{"amazon.co.uk", "amazon.com", true},
		{"shop.sa", "shop.com", true},
		{"store.co.uk", "store.com", true},
		{"example.com", "", false},
		{"example.org", "", false},
		{"noon.com", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			got, ok := GlobalCounterpart(tt.domain)
			if got != tt.want || ok != tt.ok {
				t.Errorf("GlobalCounterpart(%q) = %q,%v want %q,%v", tt.domain, got, ok, tt.want, tt.ok)
			}
		})
	}
}
