package geo

import "strings"

// Static geography tables. Built once at init, read-only afterwards; the
// resolver receives them as data rather than reaching for globals so tests
// can substitute smaller tables.

// countryCodes maps lowercase English country names to ISO-3166 alpha-2
// codes. Lookup is exact-name, case-insensitive. Deliberately not exhaustive:
// an unresolvable name leaves the code empty and the search proceeds without
// geo bias.
var countryCodes = map[string]string{
	"united states":        "us",
	"united states of america": "us",
	"usa":                  "us",
	"united kingdom":       "gb",
	"uk":                   "gb",
	"germany":              "de",
	"france":               "fr",
	"spain":                "es",
	"italy":                "it",
	"portugal":             "pt",
	"netherlands":          "nl",
	"belgium":              "be",
	"switzerland":          "ch",
	"austria":              "at",
	"sweden":               "se",
	"norway":               "no",
	"denmark":              "dk",
	"finland":              "fi",
	"poland":               "pl",
	"ireland":              "ie",
	"canada":               "ca",
	"mexico":               "mx",
	"brazil":               "br",
	"argentina":            "ar",
	"chile":                "cl",
	"colombia":             "co",
	"peru":                 "pe",
	"japan":                "jp",
	"china":                "cn",
	"south korea":          "kr",
	"korea":                "kr",
	"india":                "in",
	"pakistan":             "pk",
	"bangladesh":           "bd",
	"indonesia":            "id",
	"malaysia":             "my",
	"singapore":            "sg",
	"thailand":             "th",
	"vietnam":              "vn",
	"philippines":          "ph",
	"australia":            "au",
	"new zealand":          "nz",
	"russia":               "ru",
	"ukraine":              "ua",
	"turkey":               "tr",
	"saudi arabia":         "sa",
	"united arab emirates": "ae",
	"uae":                  "ae",
	"qatar":                "qa",
	"kuwait":               "kw",
	"egypt":                "eg",
	"morocco":              "ma",
	"nigeria":              "ng",
	"kenya":                "ke",
	"south africa":         "za",
	"israel":               "il",
	"iran":                 "ir",
	"iraq":                 "iq",
	"greece":               "gr",
	"czech republic":       "cz",
	"czechia":              "cz",
	"hungary":              "hu",
	"romania":              "ro",
}

// CountryCode resolves an English country name to its lowercase alpha-2
// code. Returns "" when the name is unknown.
func CountryCode(name string) string {
	return countryCodes[strings.ToLower(strings.TrimSpace(name))]
}

// stateMajorCities maps lowercase state/province names to a well-known major
// city. Used only for the one-way upstream location hint, never for the
// canonical signature.
var stateMajorCities = map[string]string{
	"california":       "Los Angeles",
	"texas":            "Houston",
	"new york":         "New York City",
	"florida":          "Miami",
	"illinois":         "Chicago",
	"washington":       "Seattle",
	"massachusetts":    "Boston",
	"georgia":          "Atlanta",
	"ontario":          "Toronto",
	"quebec":           "Montreal",
	"british columbia": "Vancouver",
	"bavaria":          "Munich",
	"catalonia":        "Barcelona",
	"andalusia":        "Seville",
	"lombardy":         "Milan",
	"maharashtra":      "Mumbai",
	"karnataka":        "Bangalore",
	"tamil nadu":       "Chennai",
	"punjab":           "Lahore",
	"sindh":            "Karachi",
	"new south wales":  "Sydney",
	"victoria":         "Melbourne",
	"queensland":       "Brisbane",
	"sao paulo":        "Sao Paulo",
	"guangdong":        "Guangzhou",
	"hokkaido":         "Sapporo",
}

// MajorCityFor returns the major-city hint for a state, "" when unknown.
func MajorCityFor(state string) string {
	return stateMajorCities[strings.ToLower(strings.TrimSpace(state))]
}

// countryLanguages maps alpha-2 country codes to their default ISO-639-1
// language, consulted when a fallback retry needs a language and the request
// filters did not set one.
var countryLanguages = map[string]string{
	"us": "en", "gb": "en", "ca": "en", "au": "en", "nz": "en", "ie": "en",
	"in": "en", "pk": "en", "ng": "en", "ke": "en", "za": "en", "sg": "en",
	"ph": "en",
	"de": "de", "at": "de", "ch": "de",
	"fr": "fr", "be": "fr",
	"es": "es", "mx": "es", "ar": "es", "cl": "es", "co": "es", "pe": "es",
	"it": "it",
	"pt": "pt", "br": "pt",
	"nl": "nl",
	"se": "sv", "no": "no", "dk": "da", "fi": "fi",
	"pl": "pl", "cz": "cs", "hu": "hu", "ro": "ro", "gr": "el",
	"jp": "ja", "cn": "zh", "kr": "ko", "th": "th", "vn": "vi", "id": "id",
	"my": "ms", "bd": "bn",
	"ru": "ru", "ua": "uk", "tr": "tr",
	"sa": "ar", "ae": "ar", "qa": "ar", "kw": "ar", "eg": "ar", "ma": "ar",
	"iq": "ar", "il": "he", "ir": "fa",
}

// DefaultLanguage returns the default language for a country code, "" when
// unknown.
func DefaultLanguage(countryCode string) string {
	return countryLanguages[strings.ToLower(strings.TrimSpace(countryCode))]
}
