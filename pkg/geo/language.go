package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// NormalizeLanguage validates a caller-supplied language filter and returns
// its ISO-639-1 base code, or "" when the input is "any", empty or not a
// recognizable tag.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || strings.EqualFold(lang, "any") {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// ScriptLanguage guesses a language from the dominant script of the query
// text. It is the third link in the fallback-language chain (after the
// filter language and the geography default) so precision matters less than
// never returning an error. Latin-script text yields "" so callers move on
// to their final default.
func ScriptLanguage(text string) string {
	counts := map[string]int{}
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			counts["zh"]++
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			counts["ja"]++
		case unicode.Is(unicode.Hangul, r):
			counts["ko"]++
		case unicode.Is(unicode.Arabic, r):
			counts["ar"]++
		case unicode.Is(unicode.Cyrillic, r):
			counts["ru"]++
		case unicode.Is(unicode.Thai, r):
			counts["th"]++
		case unicode.Is(unicode.Devanagari, r):
			counts["hi"]++
		case unicode.Is(unicode.Bengali, r):
			counts["bn"]++
		case unicode.Is(unicode.Hebrew, r):
			counts["he"]++
		case unicode.Is(unicode.Greek, r):
			counts["el"]++
		}
	}

	best, bestCount := "", 0
	for lang, n := range counts {
		if n > bestCount {
			best, bestCount = lang, n
		}
	}
	return best
}

// FallbackLanguage picks the language for a domain-fallback retry: the
// configured filter language, else the geography's default, else the query's
// script language, else English.
func FallbackLanguage(filterLang, countryCode, query string) string {
	if lang := NormalizeLanguage(filterLang); lang != "" {
		return lang
	}
	if lang := DefaultLanguage(countryCode); lang != "" {
		return lang
	}
	if lang := ScriptLanguage(query); lang != "" {
		return lang
	}
	return "en"
}
