// Package safety implements the layered content policy: multilingual
// safe-context and blocked keyword sets applied to query text and result
// text, plus a domain blocklist applied to result links. Filtering is
// monotonic and idempotent; running it twice changes nothing.
package safety

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/log"
)

// Verdict is the outcome of checking one piece of text.
type Verdict struct {
	Allowed bool
	// Reason is set when Allowed is false, e.g. "blocked_keyword".
	Reason string
}

// matcher checks one keyword against lowercase text. Latin-only keywords
// match on word boundaries so "essex" or "analysis" never trip substrings;
// keywords containing non-Latin characters match by plain containment since
// CJK, Arabic and similar scripts do not tokenize on ASCII boundaries.
type matcher struct {
	keyword string
	re      *regexp.Regexp // nil for substring matchers
}

func (m matcher) matches(lowerText string) bool {
	if m.re != nil {
		return m.re.MatchString(lowerText)
	}
	return strings.Contains(lowerText, m.keyword)
}

var latinOnlyRe = regexp.MustCompile(`^[a-zA-Z \-']+$`)

func compileMatchers(sets map[string][]string) []matcher {
	var matchers []matcher
	for _, keywords := range sets {
		for _, kw := range keywords {
			lower := strings.ToLower(kw)
			if latinOnlyRe.MatchString(kw) {
				re := regexp.MustCompile(`\b` + regexp.QuoteMeta(lower) + `\b`)
				matchers = append(matchers, matcher{keyword: lower, re: re})
			} else {
				matchers = append(matchers, matcher{keyword: lower})
			}
		}
	}
	return matchers
}

// Filter classifies queries and drops disallowed result items. Construct
// once with NewFilter and share; all state is immutable after construction.
type Filter struct {
	safeContext []matcher
	blocked     []matcher
	domains     map[string]struct{}
	logger      *log.Logger
}

// NewFilter builds a filter from the built-in multilingual keyword sets and
// domain blocklist.
func NewFilter() *Filter {
	return NewFilterWithSets(safeContextKeywords, blockedKeywords, blockedDomains)
}

// NewFilterWithSets builds a filter from caller-supplied keyword sets and
// domain list. Used by tests to exercise precedence with small inputs.
func NewFilterWithSets(safe, blocked map[string][]string, domains []string) *Filter {
	domainSet := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		domainSet[strings.ToLower(d)] = struct{}{}
	}
	return &Filter{
		safeContext: compileMatchers(safe),
		blocked:     compileMatchers(blocked),
		domains:     domainSet,
		logger:      log.ForComponent("safety"),
	}
}

// FilterQuery decides whether a query may proceed. Safe context always wins:
// if any safe-context phrase matches, the query is allowed even when a
// blocked phrase also matches.
func (f *Filter) FilterQuery(text string) Verdict {
	lower := strings.ToLower(text)
	for _, m := range f.safeContext {
		if m.matches(lower) {
			return Verdict{Allowed: true}
		}
	}
	for _, m := range f.blocked {
		if m.matches(lower) {
			f.logger.Debugf("query blocked by keyword %q", m.keyword)
			return Verdict{Allowed: false, Reason: "blocked_keyword"}
		}
	}
	return Verdict{Allowed: true}
}

// FilterResults drops disallowed items, preserving the order of the rest.
// An item is dropped when its link host is blocklisted or its combined
// title+snippet text fails the same safe-context→blocked check used for
// queries.
func (f *Filter) FilterResults(items []core.ResultItem) []core.ResultItem {
	kept := make([]core.ResultItem, 0, len(items))
	for _, item := range items {
		if f.hostBlocked(item.Link) {
			f.logger.Debugf("dropped result with blocklisted host: %s", item.Link)
			continue
		}
		if !f.FilterQuery(item.Title + " " + item.Snippet).Allowed {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// hostBlocked reports whether the link's host matches the blocklist exactly
// or as a subdomain of a blocklisted apex, after stripping a leading "www.".
func (f *Filter) hostBlocked(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	if _, ok := f.domains[host]; ok {
		return true
	}
	for apex := range f.domains {
		if strings.HasSuffix(host, "."+apex) {
			return true
		}
	}
	return false
}
