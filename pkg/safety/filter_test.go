package safety

import (
	"reflect"
	"testing"

	"github.com/rubiojr/scour/pkg/core"
)

func TestFilterQuerySafeContextPrecedence(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		query   string
		allowed bool
	}{
		{"breast cancer screening", true},
		{"golang concurrency patterns", true},
		{"free porn videos", false},
		{"sex education for teenagers", true},
		{"anatomy of the human body", true},
		{"色情", false},
		{"乳腺癌 检查", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			v := f.FilterQuery(tt.query)
			if v.Allowed != tt.allowed {
				t.Errorf("FilterQuery(%q).Allowed = %v, want %v (reason %q)", tt.query, v.Allowed, tt.allowed, v.Reason)
			}
			if !tt.allowed && v.Reason == "" {
				t.Errorf("blocked query %q must carry a reason", tt.query)
			}
		})
	}
}

func TestLatinWordBoundaries(t *testing.T) {
	f := NewFilterWithSets(
		map[string][]string{},
		map[string][]string{"en": {"xxx"}},
		nil,
	)

	if v := f.FilterQuery("openxxxsource library"); !v.Allowed {
		t.Error("latin keyword inside a larger word must not match")
	}
	if v := f.FilterQuery("watch xxx now"); v.Allowed {
		t.Error("latin keyword on word boundary must match")
	}
}

func TestNonLatinSubstringMatching(t *testing.T) {
	f := NewFilterWithSets(
		map[string][]string{},
		map[string][]string{"zh": {"色情"}},
		nil,
	)
	if v := f.FilterQuery("最新色情网站"); v.Allowed {
		t.Error("non-latin keyword must match by containment")
	}
}

func TestFilterResultsDomainBlocklist(t *testing.T) {
	f := NewFilter()

	items := []core.ResultItem{
		{Kind: core.KindWeb, Title: "ok", Link: "https://example.com/page"},
		{Kind: core.KindWeb, Title: "blocked host", Link: "https://pornhub.com/x"},
		{Kind: core.KindWeb, Title: "blocked subdomain", Link: "https://cdn.xvideos.com/y"},
		{Kind: core.KindWeb, Title: "www stripped", Link: "https://www.redtube.com/z"},
		{Kind: core.KindWeb, Title: "not a suffix trick", Link: "https://notpornhub.company.com/a"},
	}

	got := f.FilterResults(items)
	wantTitles := []string{"ok", "not a suffix trick"}
	var gotTitles []string
	for _, item := range got {
		gotTitles = append(gotTitles, item.Title)
	}
	if !reflect.DeepEqual(gotTitles, wantTitles) {
		t.Errorf("FilterResults kept %v, want %v", gotTitles, wantTitles)
	}
}

func TestFilterResultsTextPolicy(t *testing.T) {
	f := NewFilter()

	items := []core.ResultItem{
		{Title: "Breast cancer screening guidelines", Link: "https://clinic.example.org"},
		{Title: "Free porn collection", Link: "https://sketchy.example.com"},
	}

	got := f.FilterResults(items)
	if len(got) != 1 || got[0].Title != "Breast cancer screening guidelines" {
		t.Errorf("expected only the medical result to survive, got %+v", got)
	}
}

func TestFilterResultsIdempotent(t *testing.T) {
	f := NewFilter()

	items := []core.ResultItem{
		{Title: "one", Link: "https://a.example.com"},
		{Title: "porn", Link: "https://b.example.com"},
		{Title: "three", Link: "https://pornhub.com/q"},
		{Title: "four", Link: "https://d.example.com"},
	}

	once := f.FilterResults(items)
	twice := f.FilterResults(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering is not idempotent: %+v vs %+v", once, twice)
	}
}
