// Package dispatch fans a single logical query out to every configured
// source concurrently, applies per-source query rewriting and the
// domain-fallback retry policy, and joins the results deterministically.
//
// The concurrency model is a plain fan-out/fan-in: one goroutine per source,
// no global pool, joined with a WaitGroup. Each goroutine writes into its
// own slot of a pre-sized slice, so the aggregated order depends only on the
// source list, never on upstream completion order. A source's fallback retry
// runs sequentially inside its own goroutine and does not block the others.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/geo"
	"github.com/rubiojr/scour/pkg/log"
	"github.com/rubiojr/scour/pkg/serp"
)

// Searcher is the upstream call contract. *serp.Client implements it; tests
// substitute fakes.
type Searcher interface {
	Search(ctx context.Context, q serp.Query) (*serp.Response, error)
}

// Request is one dispatch batch.
type Request struct {
	Query    string
	Sources  []core.Source
	Location core.LocationSignature
	// UpstreamLocation is the location string for the provider, possibly
	// city-hinted by the resolver. Empty means no geo bias.
	UpstreamLocation string
	Filters          core.SearchFilters
	Page             int
	Limit            int
	// SiteOverride scopes every source to this domain, taking precedence
	// over each source's own SiteDomain.
	SiteOverride string
}

// SourceOutcome records what happened for one source in the batch.
type SourceOutcome struct {
	Source core.Source `json:"source"`
	// Domain is the effective scoped domain queried, after any fallback
	// substitution. Empty for unscoped sources.
	Domain string `json:"domain,omitempty"`
	// Fallback is true when the results came from the global counterpart
	// domain instead of the originally requested one.
	Fallback bool `json:"fallback,omitempty"`
	Count    int  `json:"count"`
	Failed   bool `json:"failed,omitempty"`
}

// Result is the joined batch output. Items preserve source list order, and
// upstream order within each source.
type Result struct {
	Items           []core.ResultItem
	CorrectedQuery  string
	RelatedSearches []string
	Outcomes        []SourceOutcome
}

// Dispatcher coordinates the fan-out. Safe for concurrent use.
type Dispatcher struct {
	upstream Searcher
	logger   *log.Logger
}

// New creates a dispatcher over the given upstream.
func New(upstream Searcher) *Dispatcher {
	return &Dispatcher{
		upstream: upstream,
		logger:   log.ForComponent("dispatch"),
	}
}

type sourceResult struct {
	outcome         SourceOutcome
	items           []core.ResultItem
	correctedQuery  string
	relatedSearches []string
	err             error
}

// Dispatch runs the batch. Individual source failures contribute zero
// results and are logged; only a configuration error that fails every
// source escalates.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	if len(req.Sources) == 0 {
		req.Sources = []core.Source{core.NativeSource()}
	}

	slots := make([]sourceResult, len(req.Sources))
	var wg sync.WaitGroup
	for i, src := range req.Sources {
		wg.Add(1)
		go func(i int, src core.Source) {
			defer wg.Done()
			slots[i] = d.fetchSource(ctx, req, src)
		}(i, src)
	}
	wg.Wait()

	result := &Result{}
	failures := 0
	var configErr error
	for _, slot := range slots {
		if slot.err != nil {
			failures++
			if errors.Is(slot.err, serp.ErrMissingAPIKey) {
				configErr = slot.err
			} else {
				d.logger.Warnf("source %s failed: %v", slot.outcome.Source.ID, slot.err)
			}
		}
		result.Items = append(result.Items, slot.items...)
		// First source (in list order) with a payload wins; later sources
		// never overwrite.
		if result.CorrectedQuery == "" {
			result.CorrectedQuery = slot.correctedQuery
		}
		if len(result.RelatedSearches) == 0 {
			result.RelatedSearches = slot.relatedSearches
		}
		result.Outcomes = append(result.Outcomes, slot.outcome)
	}

	if configErr != nil && failures == len(req.Sources) {
		return nil, fmt.Errorf("no source could be queried: %w", configErr)
	}
	return result, nil
}

func (d *Dispatcher) fetchSource(ctx context.Context, req Request, src core.Source) sourceResult {
	scopeDomain := src.SiteDomain
	if req.SiteOverride != "" {
		scopeDomain = req.SiteOverride
	}

	q := serp.Query{
		Text:        effectiveText(req.Query, scopeDomain, req.Filters.FileType),
		Kind:        src.Kind,
		Page:        req.Page,
		PageSize:    req.Limit,
		CountryCode: req.Location.CountryCode,
		Location:    req.UpstreamLocation,
		Language:    geo.NormalizeLanguage(req.Filters.Language),
		TimeRange:   req.Filters.TimeRange,
	}

	outcome := SourceOutcome{Source: src, Domain: scopeDomain}
	resp, err := d.upstream.Search(ctx, q)
	if err != nil {
		outcome.Failed = true
		return sourceResult{outcome: outcome, err: err}
	}

	// Zero results from a site-scoped source: retry once against the
	// brand's global domain, with geo restriction dropped.
	if len(resp.Items) == 0 && scopeDomain != "" {
		if global, ok := GlobalCounterpart(scopeDomain); ok {
			retry := q
			retry.Text = effectiveText(req.Query, global, req.Filters.FileType)
			retry.CountryCode = ""
			retry.Location = ""
			retry.Language = geo.FallbackLanguage(req.Filters.Language, req.Location.CountryCode, req.Query)

			d.logger.Infof("source %s empty on %s, retrying global domain %s", src.ID, scopeDomain, global)
			if fbResp, fbErr := d.upstream.Search(ctx, retry); fbErr == nil && len(fbResp.Items) > 0 {
				resp = fbResp
				outcome.Domain = global
				outcome.Fallback = true
			} else if fbErr != nil {
				d.logger.Warnf("fallback to %s failed for source %s: %v", global, src.ID, fbErr)
			}
		}
	}

	items := make([]core.ResultItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		item.SourceID = src.ID
		items = append(items, item)
	}
	outcome.Count = len(items)

	return sourceResult{
		outcome:         outcome,
		items:           items,
		correctedQuery:  resp.CorrectedQuery,
		relatedSearches: resp.RelatedSearches,
	}
}

// effectiveText builds the final upstream search text: site scope first,
// then a file-type qualifier.
func effectiveText(query, scopeDomain string, fileType core.FileType) string {
	text := query
	if scopeDomain != "" {
		text += " site:" + scopeDomain
	}
	if fileType != "" && fileType != core.FileAny {
		text += " filetype:" + string(fileType)
	}
	return text
}
