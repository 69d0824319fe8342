package core

import "strings"

// PartialLocation is raw location input: manual form fields, free text, or
// whatever a geolocation provider detected. Any field may be empty.
type PartialLocation struct {
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	State       string `json:"state,omitempty"`
	City        string `json:"city,omitempty"`
	// FreeText is an explicit user-supplied location string. When present it
	// wins over the structured fields for canonical string construction.
	FreeText string `json:"free_text,omitempty"`
}

// Empty reports whether no location information is present at all.
func (p PartialLocation) Empty() bool {
	return p.Country == "" && p.CountryCode == "" && p.State == "" && p.City == "" && p.FreeText == ""
}

// LocationSignature is the canonical resolved geography attached to every
// query. An all-empty signature means "no geographic restriction".
type LocationSignature struct {
	Country string `json:"country,omitempty"`
	// CountryCode is ISO-3166 alpha-2, lowercase, or empty when the country
	// could not be resolved. Empty never fails a search.
	CountryCode string `json:"country_code,omitempty"`
	State       string `json:"state,omitempty"`
	City        string `json:"city,omitempty"`
	// Canonical is the display/location string sent upstream, e.g.
	// "Austin,Texas,United States".
	Canonical string `json:"canonical,omitempty"`
}

// Global reports whether the signature imposes no geographic restriction.
func (l LocationSignature) Global() bool {
	return l.Country == "" && l.CountryCode == "" && l.State == "" && l.City == "" && l.Canonical == ""
}

// JoinLocationParts builds a canonical location string from ordered parts,
// skipping empties and dropping a trailing part equal to the one before it
// (a detected "Madrid, Madrid" style duplicate).
func JoinLocationParts(parts ...string) string {
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(kept) > 0 && strings.EqualFold(kept[len(kept)-1], p) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ",")
}
