// Package tabs derives ranked "domain tiles" (topic sub-tabs) from
// aggregated results. Extraction is intent-aware: a shopping query only
// surfaces domains that look like storefronts, while general queries keep
// every non-excluded domain.
package tabs

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rubiojr/scour/pkg/core"
)

// MaxTiles caps the extracted tab set.
const MaxTiles = 10

// DomainTile is one derived sub-tab.
type DomainTile struct {
	Domain      string `json:"domain"`
	DisplayName string `json:"display_name"`
	Count       int    `json:"count"`
}

// platformExclusions are hosts that already have dedicated tabs: the search
// engine itself and the major social/video platforms. Never emitted as
// tiles regardless of how often they appear.
var platformExclusions = map[string]struct{}{
	"google.com":    {},
	"bing.com":      {},
	"youtube.com":   {},
	"facebook.com":  {},
	"instagram.com": {},
	"twitter.com":   {},
	"x.com":         {},
	"tiktok.com":    {},
	"linkedin.com":  {},
	"pinterest.com": {},
	"reddit.com":    {},
}

type intentPattern struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// intentPatterns gate extraction for non-general intents. The include
// pattern must match the combined host+title+snippet text and the exclude
// pattern must not; the exclusions keep encyclopedia/video/social hosts out
// of e.g. shopping tabs even when a shopping keyword coincidentally appears.
var intentPatterns = map[core.Intent]intentPattern{
	core.IntentShopping: {
		include: regexp.MustCompile(`shop|store|buy|price|deal|cart|product|sale|outlet`),
		exclude: regexp.MustCompile(`wikipedia|wiktionary|youtube|vimeo|facebook|reddit|news`),
	},
	core.IntentNews: {
		include: regexp.MustCompile(`news|times|post|herald|daily|tribune|journal|press|report|breaking`),
		exclude: regexp.MustCompile(`shop|store|wikipedia`),
	},
	core.IntentLearning: {
		include: regexp.MustCompile(`learn|course|tutorial|edu|academy|university|lesson|guide|documentation|wiki`),
		exclude: regexp.MustCompile(`shop|store|buy`),
	},
	core.IntentVideos: {
		include: regexp.MustCompile(`video|watch|stream|clip|episode|film|movie`),
		exclude: regexp.MustCompile(`wikipedia|shop`),
	},
	core.IntentTravel: {
		include: regexp.MustCompile(`travel|hotel|flight|booking|trip|tour|vacation|destination|airline`),
		exclude: regexp.MustCompile(`wikipedia|youtube`),
	},
	core.IntentHealth: {
		include: regexp.MustCompile(`health|medical|clinic|doctor|symptom|treatment|medicine|hospital|wellness`),
		exclude: regexp.MustCompile(`shop|store|forum`),
	},
	core.IntentTech: {
		include: regexp.MustCompile(`tech|software|developer|code|programming|api|cloud|digital|computing`),
		exclude: regexp.MustCompile(`shop\b|store\b`),
	},
	core.IntentFinance: {
		include: regexp.MustCompile(`finance|invest|stock|market|bank|trading|crypto|economy|fund`),
		exclude: regexp.MustCompile(`wikipedia|youtube|shop`),
	},
	core.IntentEntertainment: {
		include: regexp.MustCompile(`movie|music|celebrity|show|entertainment|game|review|trailer`),
		exclude: regexp.MustCompile(`shop|store`),
	},
	core.IntentFood: {
		include: regexp.MustCompile(`recipe|food|cook|restaurant|kitchen|meal|dish|cuisine|baking`),
		exclude: regexp.MustCompile(`wikipedia|youtube`),
	},
}

var titleCaser = cases.Title(language.English)

// ExtractDomains returns up to MaxTiles tiles, most-frequent-domain-first,
// ties broken by first-seen order.
func ExtractDomains(results []core.ResultItem, intent core.Intent) []DomainTile {
	pattern, gated := intentPatterns[intent]

	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, item := range results {
		host := registrableHost(item.Link)
		if host == "" {
			continue
		}
		if _, excluded := platformExclusions[host]; excluded {
			continue
		}
		if gated {
			text := strings.ToLower(host + " " + item.Title + " " + item.Snippet)
			if !pattern.include.MatchString(text) || pattern.exclude.MatchString(text) {
				continue
			}
		}
		if _, seen := firstSeen[host]; !seen {
			firstSeen[host] = i
		}
		counts[host]++
	}

	tiles := make([]DomainTile, 0, len(counts))
	for host, count := range counts {
		tiles = append(tiles, DomainTile{
			Domain:      host,
			DisplayName: displayName(host),
			Count:       count,
		})
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Count != tiles[j].Count {
			return tiles[i].Count > tiles[j].Count
		}
		return firstSeen[tiles[i].Domain] < firstSeen[tiles[j].Domain]
	})

	if len(tiles) > MaxTiles {
		tiles = tiles[:MaxTiles]
	}
	return tiles
}

// registrableHost extracts the result's host with a leading "www." removed.
func registrableHost(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// displayName turns "seriouseats.com" into "Seriouseats".
func displayName(host string) string {
	label := host
	if idx := strings.Index(host, "."); idx > 0 {
		label = host[:idx]
	}
	return titleCaser.String(label)
}
