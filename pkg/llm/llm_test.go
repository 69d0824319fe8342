package llm

import (
	"testing"

	"github.com/rubiojr/scour/pkg/core"
)

func TestFallbackSummary(t *testing.T) {
	items := []core.ResultItem{
		{Snippet: "First fact."},
		{Snippet: ""},
		{Snippet: "Second fact."},
		{Snippet: "Third fact."},
		{Snippet: "Fourth fact."},
	}
	got := FallbackSummary("q", items)
	want := "First fact. Second fact. Third fact."
	if got != want {
		t.Errorf("FallbackSummary = %q, want %q", got, want)
	}

	if FallbackSummary("q", nil) != "" {
		t.Error("no snippets must yield an empty summary")
	}
}

func TestIsExplanatory(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"how does tcp work", true},
		{"what is a goroutine", true},
		{"is rust faster than go?", true},
		{"explain quantum entanglement", true},
		{"facebook login", false},
		{"amazon", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsExplanatory(tt.query); got != tt.want {
			t.Errorf("IsExplanatory(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
