package tabs

import (
	"fmt"
	"testing"

	"github.com/rubiojr/scour/pkg/core"
)

func webResult(link, title string) core.ResultItem {
	return core.ResultItem{Kind: core.KindWeb, Link: link, Title: title}
}

func TestExtractDomainsCapAndRanking(t *testing.T) {
	var results []core.ResultItem
	// 15 distinct domains; domain-N appears N times.
	for n := 1; n <= 15; n++ {
		for i := 0; i < n; i++ {
			results = append(results, webResult(fmt.Sprintf("https://domain-%d.com/p%d", n, i), "page"))
		}
	}
	// A dominating excluded platform.
	for i := 0; i < 50; i++ {
		results = append(results, webResult("https://www.youtube.com/watch", "video"))
	}

	tiles := ExtractDomains(results, core.IntentGeneral)
	if len(tiles) != MaxTiles {
		t.Fatalf("got %d tiles, want %d", len(tiles), MaxTiles)
	}
	if tiles[0].Domain != "domain-15.com" || tiles[0].Count != 15 {
		t.Errorf("top tile = %+v, want domain-15.com with 15", tiles[0])
	}
	for i := 1; i < len(tiles); i++ {
		if tiles[i].Count > tiles[i-1].Count {
			t.Errorf("tiles not sorted descending by count at %d", i)
		}
	}
	for _, tile := range tiles {
		if tile.Domain == "youtube.com" {
			t.Error("excluded platform emitted as tile")
		}
	}
}

func TestExtractDomainsTieBreakFirstSeen(t *testing.T) {
	results := []core.ResultItem{
		webResult("https://alpha.com/1", "a"),
		webResult("https://beta.com/1", "b"),
		webResult("https://alpha.com/2", "a"),
		webResult("https://beta.com/2", "b"),
	}
	tiles := ExtractDomains(results, core.IntentGeneral)
	if len(tiles) != 2 || tiles[0].Domain != "alpha.com" || tiles[1].Domain != "beta.com" {
		t.Errorf("tie not broken by first-seen order: %+v", tiles)
	}
}

func TestExtractDomainsIntentGating(t *testing.T) {
	results := []core.ResultItem{
		webResult("https://sneakerstore.com/sale", "Buy sneakers on sale"),
		webResult("https://en.wikipedia.org/wiki/Sneaker", "Sneaker - Wikipedia shop history"),
		webResult("https://randomblog.net/post", "My day out"),
	}

	tiles := ExtractDomains(results, core.IntentShopping)
	if len(tiles) != 1 || tiles[0].Domain != "sneakerstore.com" {
		t.Errorf("shopping intent tiles = %+v, want only sneakerstore.com", tiles)
	}

	general := ExtractDomains(results, core.IntentGeneral)
	if len(general) != 3 {
		t.Errorf("general intent keeps everything not excluded, got %+v", general)
	}
}

func TestRegistrableHost(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://www.example.com/page", "example.com"},
		{"https://sub.example.com/", "sub.example.com"},
		{"not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := registrableHost(tt.link); got != tt.want {
			t.Errorf("registrableHost(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}
