package core

// Source is one upstream query target: either the native web search (empty
// SiteDomain) or a single site-scoped domain. Sources are static (from the
// per-intent catalog) or dynamic (derived from observed result domains).
type Source struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	SiteDomain  string     `json:"site_domain,omitempty"`
	Kind        ResultKind `json:"kind"`
}

// NativeSource is the unscoped web search every request can fall back to.
func NativeSource() Source {
	return Source{ID: "web", DisplayName: "Web", Kind: KindWeb}
}

// Scoped reports whether this source restricts results to a single site.
func (s Source) Scoped() bool {
	return s.SiteDomain != ""
}
