package domain

import (
	"encoding/json"
	"time"
)

// GameEFT is the catalog key of the flagship game; every other key is
// treated as the arena title by the label and icon helpers.
const GameEFT = "eft"

// SiteConfiguration is per-game remote configuration from the site.
type SiteConfiguration struct {
	HeaderLinks                 json.RawMessage `json:"headerLinks,omitempty"`
	ShowFeedbackCard            bool            `json:"showFeedbackCard"`
	IsMatchingConfigEnabled     bool            `json:"isMatchingConfigEnabled"`
	ETSMaxProfileLevel          int             `json:"etsMaxProfileLevel"`
	ETSMaxGamePurchaseMonths    int             `json:"etsMaxGamePurchaseMonths"`
	IsArenaFreeWeekendEnabled   bool            `json:"isArenaFreeWeekendEnabled"`
	ArenaDiscountLabelText      string          `json:"arenaDiscountLabelText"`
	ArenaDiscountLabelIsEnabled bool            `json:"arenaDiscountLabelIsEnabled"`
	EFTDiscountLabelText        string          `json:"eftDiscountLabelText"`
	EFTDiscountLabelIsEnabled   bool            `json:"eftDiscountLabelIsEnabled"`
	DiscountLabelStart          *time.Time      `json:"discountLabelStart"`
	DiscountLabelEnd            *time.Time      `json:"discountLabelEnd"`
}

// DecodeSiteConfiguration parses a site configuration document. An empty or
// null document yields the zero configuration.
func DecodeSiteConfiguration(data []byte) (SiteConfiguration, error) {
	var c SiteConfiguration
	if len(data) == 0 || string(data) == "null" {
		return c, nil
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return SiteConfiguration{}, validationFromJSON("site configuration", err)
	}
	if string(c.HeaderLinks) == "null" {
		c.HeaderLinks = nil
	}
	return c, nil
}

// DiscountLabel returns the discount label text for game when the label is
// enabled and now lies within [start, end]. Missing bounds never match.
func (c SiteConfiguration) DiscountLabel(game string, now time.Time) (string, bool) {
	if c.DiscountLabelStart == nil || c.DiscountLabelEnd == nil {
		return "", false
	}
	if now.Before(*c.DiscountLabelStart) || now.After(*c.DiscountLabelEnd) {
		return "", false
	}
	text, enabled := c.ArenaDiscountLabelText, c.ArenaDiscountLabelIsEnabled
	if game == GameEFT {
		text, enabled = c.EFTDiscountLabelText, c.EFTDiscountLabelIsEnabled
	}
	if !enabled {
		return "", false
	}
	return text, true
}
