package dispatch

import "strings"

// brandCounterparts maps country-specific storefront domains to their global
// counterpart explicitly. Consulted before the ccTLD heuristic so brands
// with unusual naming still fall back correctly.
var brandCounterparts = map[string]string{
	"amazon.co.uk":  "amazon.com",
	"amazon.de":     "amazon.com",
	"amazon.fr":     "amazon.com",
	"amazon.es":     "amazon.com",
	"amazon.it":     "amazon.com",
	"amazon.ca":     "amazon.com",
	"amazon.com.au": "amazon.com",
	"amazon.co.jp":  "amazon.com",
	"amazon.in":     "amazon.com",
	"amazon.sa":     "amazon.com",
	"amazon.ae":     "amazon.com",
	"ebay.co.uk":    "ebay.com",
	"ebay.de":       "ebay.com",
	"ebay.com.au":   "ebay.com",
	"noon.com":      "noon.com", // already global, never substituted
	"google.co.uk":  "google.com",
	"booking.cn":    "booking.com",
}

// compound ccTLD suffixes the heuristic recognizes in addition to plain
// two-letter TLDs.
var ccTLDSuffixes = []string{
	".co.uk", ".com.au", ".co.jp", ".com.br", ".co.in", ".com.mx",
	".co.nz", ".com.sg", ".com.tr", ".co.za", ".com.sa", ".co.kr",
}

// GlobalCounterpart returns the global domain to retry against when a
// site-scoped query yields nothing. The explicit brand map wins; otherwise a
// two-letter or known compound ccTLD suffix is replaced with ".com". The
// second return value is false when no counterpart exists or the inferred
// domain equals the original.
func GlobalCounterpart(domain string) (string, bool) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return "", false
	}

	if global, ok := brandCounterparts[domain]; ok {
		if global == domain {
			return "", false
		}
		return global, true
	}

	for _, suffix := range ccTLDSuffixes {
		if strings.HasSuffix(domain, suffix) {
			inferred := strings.TrimSuffix(domain, suffix) + ".com"
			if inferred != domain {
				return inferred, true
			}
			return "", false
		}
	}

	// Plain two-letter TLD, e.g. "shop.sa" -> "shop.com".
	if idx := strings.LastIndex(domain, "."); idx > 0 {
		tld := domain[idx+1:]
		if len(tld) == 2 && tld != "co" {
			inferred := domain[:idx] + ".com"
			if inferred != domain {
				return inferred, true
			}
		}
	}
	return "", false
}
