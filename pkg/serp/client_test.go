package serp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rubiojr/scour/pkg/core"
)

func TestSearchForcesSafeSearch(t *testing.T) {
	var captured searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		_, _ = w.Write([]byte(`{"organic":[]}`))
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, 0)
	_, err := c.Search(context.Background(), Query{
		Text: "anything", Kind: core.KindWeb, Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if captured.Safe != "active" {
		t.Errorf("safe = %q, want active on every call", captured.Safe)
	}
}

func TestSearchParamsAndEndpoint(t *testing.T) {
	var gotPath string
	var captured searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Error("missing API key header")
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"news":[]}`))
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, 0)
	_, err := c.Search(context.Background(), Query{
		Text:        "elections",
		Kind:        core.KindNews,
		Page:        2,
		PageSize:    20,
		CountryCode: "gb",
		Location:    "London,United Kingdom",
		Language:    "en",
		TimeRange:   core.TimeWeek,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/news" {
		t.Errorf("endpoint = %q, want /news", gotPath)
	}
	if captured.GL != "gb" || captured.HL != "en" || captured.Location != "London,United Kingdom" {
		t.Errorf("geo params not forwarded: %+v", captured)
	}
	if captured.TBS != "qdr:w" {
		t.Errorf("tbs = %q, want qdr:w", captured.TBS)
	}
	if captured.Page != 2 || captured.Num != 20 {
		t.Errorf("paging not forwarded: page=%d num=%d", captured.Page, captured.Num)
	}
}

func TestSearchDecodesWebResults(t *testing.T) {
	payload := `{
		"organic": [
			{"title": "Go", "link": "https://go.dev", "snippet": "The Go language", "position": 1, "date": "2 days ago"},
			{"title": "Go wiki", "link": "https://go.dev/wiki", "snippet": "Wiki", "position": 2}
		],
		"searchInformation": {"correctedQuery": "golang"},
		"relatedSearches": [{"query": "go tutorial"}, {"query": "go install"}]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, 0)
	resp, err := c.Search(context.Background(), Query{Text: "golamg", Kind: core.KindWeb})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(resp.Items))
	}
	if resp.Items[0].Kind != core.KindWeb || resp.Items[0].Position != 1 || resp.Items[0].Date != "2 days ago" {
		t.Errorf("first item mapped wrong: %+v", resp.Items[0])
	}
	if resp.CorrectedQuery != "golang" {
		t.Errorf("corrected query = %q", resp.CorrectedQuery)
	}
	if len(resp.RelatedSearches) != 2 || resp.RelatedSearches[0] != "go tutorial" {
		t.Errorf("related searches = %v", resp.RelatedSearches)
	}
}

func TestSearchDecodesVideoResults(t *testing.T) {
	payload := `{"videos":[{"title":"clip","link":"https://videos.example/1","channel":"c","duration":"3:21","views":"1.2M","likes":"10k","position":1}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, 0)
	resp, err := c.Search(context.Background(), Query{Text: "clip", Kind: core.KindVideo})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	item := resp.Items[0]
	if item.Video == nil || item.Video.Duration != "3:21" {
		t.Fatalf("video meta missing: %+v", item)
	}
	if item.Views() != 1200000 || item.Engagement() != 10000 {
		t.Errorf("derived counts wrong: views=%d engagement=%d", item.Views(), item.Engagement())
	}
}

func TestSearchMissingAPIKey(t *testing.T) {
	c := NewClient("", "http://unused", 0)
	if _, err := c.Search(context.Background(), Query{Text: "q"}); err != ErrMissingAPIKey {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, 0)
	if _, err := c.Search(context.Background(), Query{Text: "q"}); err == nil {
		t.Error("expected error on non-200 upstream status")
	}
}
