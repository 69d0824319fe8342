// Package geo resolves raw location input (manual form fields, free text,
// IP-detected geography) into the canonical LocationSignature every query
// carries, and hosts the IP/reverse geocoding provider chain.
package geo

import (
	"regexp"
	"strings"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/log"
)

// Mode selects how the resolver combines manual and detected input.
type Mode string

const (
	// ModeManual uses the caller-supplied fields verbatim.
	ModeManual Mode = "manual"
	// ModeNormal uses the detected (typically IP-based) location.
	ModeNormal Mode = "normal"
	// ModeGlobal forces an empty signature, overriding everything else.
	ModeGlobal Mode = "global"
)

var alpha2Re = regexp.MustCompile(`^[a-z]{2}$`)

// Resolver turns partial locations into canonical signatures. It never
// returns an error: every input combination degrades to a valid, possibly
// empty, signature.
type Resolver struct {
	// StateCityHint enables the one-way state→major-city enrichment applied
	// to the upstream location string only. It silently narrows a state-level
	// search to one city, so it is configurable and logged when it fires.
	StateCityHint bool

	logger *log.Logger
}

// NewResolver creates a resolver. stateCityHint controls the upstream
// major-city enrichment (see Resolver.StateCityHint).
func NewResolver(stateCityHint bool) *Resolver {
	return &Resolver{
		StateCityHint: stateCityHint,
		logger:        log.ForComponent("geo"),
	}
}

// Resolve builds the canonical LocationSignature for a request.
func (r *Resolver) Resolve(manual core.PartialLocation, detected *core.PartialLocation, mode Mode) core.LocationSignature {
	switch mode {
	case ModeGlobal:
		return core.LocationSignature{}
	case ModeManual:
		return r.fromPartial(manual)
	default:
		if detected == nil || detected.Empty() {
			return core.LocationSignature{}
		}
		return r.fromPartial(*detected)
	}
}

func (r *Resolver) fromPartial(p core.PartialLocation) core.LocationSignature {
	sig := core.LocationSignature{
		Country: strings.TrimSpace(p.Country),
		State:   strings.TrimSpace(p.State),
		City:    strings.TrimSpace(p.City),
	}

	code := strings.ToLower(strings.TrimSpace(p.CountryCode))
	if !alpha2Re.MatchString(code) {
		code = CountryCode(sig.Country)
		if code == "" && p.CountryCode != "" {
			r.logger.Debugf("could not resolve country %q to a code, searching without geo bias", p.CountryCode)
		}
	}
	sig.CountryCode = code

	if ft := strings.TrimSpace(p.FreeText); ft != "" {
		sig.Canonical = normalizeFreeText(ft)
	} else {
		sig.Canonical = core.JoinLocationParts(sig.City, sig.State, sig.Country)
	}
	return sig
}

// normalizeFreeText keeps user-supplied location text verbatim except for
// comma whitespace: "Austin , Texas" becomes "Austin,Texas".
func normalizeFreeText(s string) string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}

// UpstreamLocation returns the location string passed to the upstream API.
// With StateCityHint enabled, a state-only signature gets a well-known major
// city prepended, which the upstream geotargets far more reliably than a bare
// state name. This narrows the geographic scope of the search and is logged
// every time it fires. The canonical signature is never modified.
func (r *Resolver) UpstreamLocation(sig core.LocationSignature) string {
	if sig.Global() {
		return ""
	}
	if r.StateCityHint && sig.City == "" && sig.State != "" {
		if city := MajorCityFor(sig.State); city != "" {
			hinted := core.JoinLocationParts(city, sig.State, sig.Country)
			r.logger.Infof("state-only location %q narrowed to %q for upstream call", sig.Canonical, hinted)
			return hinted
		}
	}
	return sig.Canonical
}
