package core

// DefaultCatalog maps each intent to the static sources the dispatcher fans
// out to alongside the native web search. Loaded once at startup; the config
// file can replace individual entries but the catalog is never mutated at
// runtime.
func DefaultCatalog() map[Intent][]Source {
	return map[Intent][]Source{
		IntentGeneral: {
			NativeSource(),
		},
		IntentShopping: {
			NativeSource(),
			{ID: "amazon", DisplayName: "Amazon", SiteDomain: "amazon.com", Kind: KindWeb},
			{ID: "ebay", DisplayName: "eBay", SiteDomain: "ebay.com", Kind: KindWeb},
			{ID: "etsy", DisplayName: "Etsy", SiteDomain: "etsy.com", Kind: KindWeb},
		},
		IntentNews: {
			{ID: "news", DisplayName: "Top Stories", Kind: KindNews},
			{ID: "reuters", DisplayName: "Reuters", SiteDomain: "reuters.com", Kind: KindNews},
			{ID: "bbc", DisplayName: "BBC", SiteDomain: "bbc.com", Kind: KindNews},
		},
		IntentLearning: {
			NativeSource(),
			{ID: "wikipedia", DisplayName: "Wikipedia", SiteDomain: "wikipedia.org", Kind: KindWeb},
			{ID: "coursera", DisplayName: "Coursera", SiteDomain: "coursera.org", Kind: KindWeb},
			{ID: "khanacademy", DisplayName: "Khan Academy", SiteDomain: "khanacademy.org", Kind: KindWeb},
		},
		IntentVideos: {
			{ID: "videos", DisplayName: "Videos", Kind: KindVideo},
			{ID: "youtube", DisplayName: "YouTube", SiteDomain: "youtube.com", Kind: KindVideo},
			{ID: "vimeo", DisplayName: "Vimeo", SiteDomain: "vimeo.com", Kind: KindVideo},
		},
		IntentTravel: {
			NativeSource(),
			{ID: "places", DisplayName: "Places", Kind: KindPlace},
			{ID: "tripadvisor", DisplayName: "Tripadvisor", SiteDomain: "tripadvisor.com", Kind: KindWeb},
			{ID: "booking", DisplayName: "Booking.com", SiteDomain: "booking.com", Kind: KindWeb},
		},
		IntentHealth: {
			NativeSource(),
			{ID: "mayoclinic", DisplayName: "Mayo Clinic", SiteDomain: "mayoclinic.org", Kind: KindWeb},
			{ID: "webmd", DisplayName: "WebMD", SiteDomain: "webmd.com", Kind: KindWeb},
			{ID: "nih", DisplayName: "NIH", SiteDomain: "nih.gov", Kind: KindWeb},
		},
		IntentTech: {
			NativeSource(),
			{ID: "github", DisplayName: "GitHub", SiteDomain: "github.com", Kind: KindWeb},
			{ID: "stackoverflow", DisplayName: "Stack Overflow", SiteDomain: "stackoverflow.com", Kind: KindWeb},
			{ID: "hackernews", DisplayName: "Hacker News", SiteDomain: "news.ycombinator.com", Kind: KindWeb},
		},
		IntentFinance: {
			NativeSource(),
			{ID: "bloomberg", DisplayName: "Bloomberg", SiteDomain: "bloomberg.com", Kind: KindWeb},
			{ID: "investopedia", DisplayName: "Investopedia", SiteDomain: "investopedia.com", Kind: KindWeb},
		},
		IntentEntertainment: {
			NativeSource(),
			{ID: "imdb", DisplayName: "IMDb", SiteDomain: "imdb.com", Kind: KindWeb},
			{ID: "rottentomatoes", DisplayName: "Rotten Tomatoes", SiteDomain: "rottentomatoes.com", Kind: KindWeb},
		},
		IntentFood: {
			NativeSource(),
			{ID: "allrecipes", DisplayName: "Allrecipes", SiteDomain: "allrecipes.com", Kind: KindWeb},
			{ID: "seriouseats", DisplayName: "Serious Eats", SiteDomain: "seriouseats.com", Kind: KindWeb},
		},
	}
}

// CatalogFor returns the sources for an intent, falling back to the general
// catalog for unknown intents.
func CatalogFor(catalog map[Intent][]Source, intent Intent) []Source {
	if sources, ok := catalog[intent]; ok && len(sources) > 0 {
		return sources
	}
	return catalog[IntentGeneral]
}
