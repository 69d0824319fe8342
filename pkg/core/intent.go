// Package core defines the domain types shared across the engine: result
// items and their per-kind metadata, search sources, filters, intents and
// resolved locations. Types here are plain data; behavior lives in the
// component packages that consume them.
package core

// Intent classifies what a query is after. It selects which source catalog
// the dispatcher fans out to and how the tab extractor scores domains.
type Intent string

const (
	IntentGeneral       Intent = "general"
	IntentShopping      Intent = "shopping"
	IntentNews          Intent = "news"
	IntentLearning      Intent = "learning"
	IntentVideos        Intent = "videos"
	IntentTravel        Intent = "travel"
	IntentHealth        Intent = "health"
	IntentTech          Intent = "tech"
	IntentFinance       Intent = "finance"
	IntentEntertainment Intent = "entertainment"
	IntentFood          Intent = "food"
)

// ParseIntent maps a string to a known Intent, falling back to general for
// anything unrecognized. Classifier failures therefore degrade safely.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentShopping, IntentNews, IntentLearning, IntentVideos, IntentTravel,
		IntentHealth, IntentTech, IntentFinance, IntentEntertainment, IntentFood,
		IntentGeneral:
		return Intent(s)
	}
	return IntentGeneral
}
