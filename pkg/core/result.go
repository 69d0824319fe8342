package core

import "github.com/rubiojr/scour/pkg/parse"

// ResultKind discriminates the result union. Exactly one of the kind-specific
// metadata pointers on ResultItem is non-nil for non-web kinds.
type ResultKind string

const (
	KindWeb   ResultKind = "web"
	KindImage ResultKind = "image"
	KindVideo ResultKind = "video"
	KindPlace ResultKind = "place"
	KindNews  ResultKind = "news"
)

// ResultItem is a single aggregated search result. Items are immutable after
// construction within a request; sorting and filtering produce new slices
// rather than mutating items in place.
type ResultItem struct {
	Kind     ResultKind `json:"kind"`
	Title    string     `json:"title"`
	Link     string     `json:"link"`
	Snippet  string     `json:"snippet,omitempty"`
	SourceID string     `json:"source_id,omitempty"`
	Favicon  string     `json:"favicon,omitempty"`
	// Position is the 1-based upstream rank. 0 means the upstream did not
	// provide one; such items sort after ranked ones under relevance.
	Position int `json:"position,omitempty"`
	// Date is the upstream-provided date text, relative or absolute.
	// Parsed lazily by the sorter; unparseable text means "no date".
	Date string `json:"date,omitempty"`

	Image *ImageMeta `json:"image,omitempty"`
	Video *VideoMeta `json:"video,omitempty"`
	Place *PlaceMeta `json:"place,omitempty"`
	News  *NewsMeta  `json:"news,omitempty"`
}

// ImageMeta carries image-specific fields.
type ImageMeta struct {
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	SourcePage   string `json:"source_page,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// VideoMeta carries video-specific fields. Counts are kept as the upstream's
// human-readable strings ("1.2M") and parsed on demand.
type VideoMeta struct {
	Duration string `json:"duration,omitempty"`
	Channel  string `json:"channel,omitempty"`
	Views    string `json:"views,omitempty"`
	Likes    string `json:"likes,omitempty"`
	Comments string `json:"comments,omitempty"`
	Shares   string `json:"shares,omitempty"`
}

// PlaceMeta carries local-result fields.
type PlaceMeta struct {
	Address  string  `json:"address,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Category string  `json:"category,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Reviews  int     `json:"reviews,omitempty"`
	Price    string  `json:"price,omitempty"`
}

// NewsMeta carries news-specific fields.
type NewsMeta struct {
	Publisher string `json:"publisher,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Views returns the numeric view count, 0 when absent or unparseable.
func (r ResultItem) Views() int64 {
	if r.Video == nil {
		return 0
	}
	return parse.Magnitude(r.Video.Views)
}

// Engagement is derived, never stored: likes + comments + shares, each
// parsed from the upstream's magnitude strings.
func (r ResultItem) Engagement() int64 {
	if r.Video == nil {
		return 0
	}
	return parse.Magnitude(r.Video.Likes) +
		parse.Magnitude(r.Video.Comments) +
		parse.Magnitude(r.Video.Shares)
}
