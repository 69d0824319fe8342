package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/geo"
	"github.com/rubiojr/scour/pkg/rank"
)

// ParseSearchParams converts HTTP query parameters into SearchParams.
// Unknown enum values degrade to their defaults; only structurally invalid
// numbers are errors.
//
// Supported parameters:
//
//	q              - search text (required at Search time, not here)
//	sources        - source selector ("all" or comma-separated IDs/domains)
//	page           - page number (default 1)
//	limit          - page size (default service-configured)
//	sort           - relevance|recent|most_viewed|most_engaged
//	intent         - explicit intent override
//	auto_intent    - "false" disables classification (default enabled)
//	location_mode  - manual|normal|global (default normal)
//	country, country_code, state, city, location - manual location fields
//	lat, lon       - coordinates for reverse geocoding (both required)
//	time_range     - any|day|week|month|year
//	language       - ISO-639-1 code or "any"
//	file_type      - any|pdf|doc|ppt|xls
//	site           - scope every source to one domain
func ParseSearchParams(values url.Values) (SearchParams, error) {
	params := SearchParams{
		Query:          values.Get("q"),
		SourceSelector: values.Get("sources"),
		Page:           1,
		Sort:           rank.ParseOrder(values.Get("sort")),
		Intent:         values.Get("intent"),
		AutoIntent:     values.Get("auto_intent") != "false",
		LocationMode:   parseMode(values.Get("location_mode")),
		SiteOverride:   values.Get("site"),
		Manual: core.PartialLocation{
			Country:     values.Get("country"),
			CountryCode: values.Get("country_code"),
			State:       values.Get("state"),
			City:        values.Get("city"),
			FreeText:    values.Get("location"),
		},
		Filters: core.SearchFilters{
			TimeRange: core.TimeRange(values.Get("time_range")),
			Language:  values.Get("language"),
			FileType:  core.FileType(values.Get("file_type")),
		},
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("invalid page parameter: %w", err)
		}
		params.Page = page
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("invalid limit parameter: %w", err)
		}
		params.Limit = limit
	}
	if rawLat, rawLon := values.Get("lat"), values.Get("lon"); rawLat != "" && rawLon != "" {
		lat, latErr := strconv.ParseFloat(rawLat, 64)
		lon, lonErr := strconv.ParseFloat(rawLon, 64)
		if latErr != nil || lonErr != nil {
			return params, fmt.Errorf("invalid lat/lon parameters")
		}
		params.Latitude = lat
		params.Longitude = lon
		params.HasCoordinates = true
	}

	// Manual fields without an explicit mode imply manual resolution.
	if values.Get("location_mode") == "" && !params.Manual.Empty() {
		params.LocationMode = geo.ModeManual
	}
	return params, nil
}

func parseMode(s string) geo.Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual":
		return geo.ModeManual
	case "global":
		return geo.ModeGlobal
	default:
		return geo.ModeNormal
	}
}
