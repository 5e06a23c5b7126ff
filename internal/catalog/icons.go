package catalog

import "github.com/bsglauncher/webui/internal/domain"

// SelectedPollsIcon returns the poll icon for the active game. Only Russian
// and English artwork exists; any other language gets the English icon.
func (c *Catalog) SelectedPollsIcon(lang string) string {
	if lang != "ru" {
		lang = "en"
	}
	if c.SelectedGameName() == domain.GameEFT {
		return "img/polls/eft_ico_" + lang + ".png"
	}
	return "img/polls/arena_ico_" + lang + ".png"
}
