package serp

import "github.com/rubiojr/scour/pkg/core"

// Query is one upstream call. Text is the final effective search text, with
// any site-scope and file-type qualifiers already appended by the caller.
type Query struct {
	Text        string
	Kind        core.ResultKind
	Page        int
	PageSize    int
	CountryCode string // ISO-3166 alpha-2, "" for no geo restriction
	Location    string // free-text location bias, "" for none
	Language    string // ISO-639-1, "" for provider default
	TimeRange   core.TimeRange
}

// Response is the normalized upstream payload.
type Response struct {
	Items           []core.ResultItem
	CorrectedQuery  string
	RelatedSearches []string
}

// wire shapes, one per result kind endpoint

type searchRequest struct {
	Q        string `json:"q"`
	GL       string `json:"gl,omitempty"`
	HL       string `json:"hl,omitempty"`
	Location string `json:"location,omitempty"`
	Num      int    `json:"num,omitempty"`
	Page     int    `json:"page,omitempty"`
	TBS      string `json:"tbs,omitempty"`
	// Safe search is forced on for every call, independent of the content
	// safety filter. Defense in depth.
	Safe string `json:"safe"`
}

type webResponse struct {
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Date     string `json:"date"`
		Position int    `json:"position"`
	} `json:"organic"`
	SearchInformation struct {
		CorrectedQuery string `json:"correctedQuery"`
	} `json:"searchInformation"`
	RelatedSearches []struct {
		Query string `json:"query"`
	} `json:"relatedSearches"`
}

type imageResponse struct {
	Images []struct {
		Title        string `json:"title"`
		ImageURL     string `json:"imageUrl"`
		ThumbnailURL string `json:"thumbnailUrl"`
		Source       string `json:"source"`
		Link         string `json:"link"`
		ImageWidth   int    `json:"imageWidth"`
		ImageHeight  int    `json:"imageHeight"`
		Position     int    `json:"position"`
	} `json:"images"`
}

type videoResponse struct {
	Videos []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Channel  string `json:"channel"`
		Duration string `json:"duration"`
		Date     string `json:"date"`
		Views    string `json:"views"`
		Likes    string `json:"likes"`
		Comments string `json:"comments"`
		Shares   string `json:"shares"`
		Position int    `json:"position"`
	} `json:"videos"`
}

type placeResponse struct {
	Places []struct {
		Title       string  `json:"title"`
		Address     string  `json:"address"`
		Category    string  `json:"category"`
		PhoneNumber string  `json:"phoneNumber"`
		Website     string  `json:"website"`
		Rating      float64 `json:"rating"`
		RatingCount int     `json:"ratingCount"`
		PriceLevel  string  `json:"priceLevel"`
		Position    int     `json:"position"`
	} `json:"places"`
}

type newsResponse struct {
	News []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Date     string `json:"date"`
		Source   string `json:"source"`
		ImageURL string `json:"imageUrl"`
		Position int    `json:"position"`
	} `json:"news"`
}

// timeRangeTBS maps the engine's time filter to the provider's tbs values.
var timeRangeTBS = map[core.TimeRange]string{
	core.TimeDay:   "qdr:d",
	core.TimeWeek:  "qdr:w",
	core.TimeMonth: "qdr:m",
	core.TimeYear:  "qdr:y",
}
