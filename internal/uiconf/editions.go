// Package uiconf holds the static presentation tables the launcher page is
// rendered from: editions, page artwork, outbound links, analytics goals and
// widget defaults.
package uiconf

// EditionNotPurchased is the edition key the host sends for unowned games.
const EditionNotPurchased = "not_purchased"

// editions maps an edition key to its display title. The not-purchased entry
// is an i18n key, not literal text.
var editions = map[string]string{
	EditionNotPurchased:  "Game not purchased!",
	"standard":           "Standard Edition",
	"arena":              "Arena Standard",
	"ryzhy":              "Ryzhy Standard",
	"left_behind":        "Left Behind Edition",
	"prepare_for_escape": "Prepare for Escape Edition",
	"edge_of_darkness":   "Edge of Darkness Limited Edition",
	"press_edition":      "Press Edition",
	"tournament":         "Tournament Edition",
	"tournament_live":    "Tournament Edition",
}

// Edition describes how an edition key is displayed.
type Edition struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	// Localized is set when Title is an i18n key to translate.
	Localized bool `json:"localized"`
	// Error marks the title for error styling.
	Error bool `json:"error"`
}

// EditionTitle returns the display form of an edition key.
func EditionTitle(key string) (Edition, bool) {
	title, ok := editions[key]
	if !ok {
		return Edition{}, false
	}
	if key == EditionNotPurchased {
		return Edition{Key: key, Title: title, Localized: true, Error: true}, true
	}
	return Edition{Key: key, Title: title}, true
}

// Editions returns a copy of the edition table.
func Editions() map[string]string {
	out := make(map[string]string, len(editions))
	for k, v := range editions {
		out[k] = v
	}
	return out
}
