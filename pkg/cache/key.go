package cache

import "github.com/rubiojr/scour/pkg/core"

// Key is the full parameter tuple identifying one cacheable response. It is
// a comparable struct used directly as the map key: two keys are equal only
// when every request parameter that affects the response is equal, so no
// delimiter-escaping collisions are possible.
type Key struct {
	Query          string
	SourceSelector string
	Page           int
	Limit          int
	Sort           string
	CountryCode    string
	Location       string
	TimeRange      core.TimeRange
	Language       string
	FileType       core.FileType
	SiteOverride   string
}
