package domain

import (
	"fmt"
	"regexp"
)

var (
	languageCodeRegex = regexp.MustCompile(`^[a-z]{2}$`)
	gameKeyRegex      = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{0,63}$`)
)

// ValidateLanguageCode checks a two-letter launcher language code.
func ValidateLanguageCode(code string) error {
	if code == "" {
		return fmt.Errorf("language is required")
	}
	if !languageCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid language code: %s", code)
	}
	return nil
}

// ValidateGameKey checks a catalog game key such as "eft" or "arena".
func ValidateGameKey(key string) error {
	if key == "" {
		return fmt.Errorf("game is required")
	}
	if !gameKeyRegex.MatchString(key) {
		return fmt.Errorf("invalid game key: %s", key)
	}
	return nil
}
