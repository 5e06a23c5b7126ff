// Package i18n holds the UI language table and maps browser and host language
// values onto it.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultCode is the fallback UI language.
const DefaultCode = "en"

// Language is one selectable UI language.
type Language struct {
	Code  string       `json:"code"`
	Label string       `json:"label"`
	Tag   language.Tag `json:"-"`
}

// BCP47 returns the canonical tag string, e.g. "es-MX" for code "mx".
func (l Language) BCP47() string {
	return l.Tag.String()
}

// languages is in display order. Labels are native names.
var languages = []Language{
	{Code: "ru", Label: "Русский", Tag: language.Russian},
	{Code: "en", Label: "English", Tag: language.English},
	{Code: "de", Label: "Deutsch", Tag: language.German},
	{Code: "it", Label: "Italiano", Tag: language.Italian},
	{Code: "es", Label: "Español", Tag: language.Spanish},
	{Code: "mx", Label: "Español mexicano", Tag: language.MustParse("es-MX")},
	{Code: "fr", Label: "Français", Tag: language.French},
	{Code: "pt", Label: "Português", Tag: language.Portuguese},
	{Code: "tr", Label: "Türkçe", Tag: language.Turkish},
	{Code: "zh", Label: "中文", Tag: language.Chinese},
	{Code: "cs", Label: "Čeština", Tag: language.Czech},
	{Code: "ko", Label: "한국어", Tag: language.Korean},
}

var (
	byCode = func() map[string]Language {
		m := make(map[string]Language, len(languages))
		for _, l := range languages {
			m[l.Code] = l
		}
		return m
	}()

	// matchCodes[i] is the code for the i-th tag given to the matcher.
	// The default language goes first so it wins on no match.
	matchCodes, matcher = func() ([]string, language.Matcher) {
		codes := []string{DefaultCode}
		tags := []language.Tag{byCode[DefaultCode].Tag}
		for _, l := range languages {
			if l.Code == DefaultCode {
				continue
			}
			codes = append(codes, l.Code)
			tags = append(tags, l.Tag)
		}
		return codes, language.NewMatcher(tags)
	}()
)

// Languages returns the language table in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Lookup returns the language with the given launcher code.
func Lookup(code string) (Language, bool) {
	l, ok := byCode[code]
	return l, ok
}

// Normalize maps a launcher code or a BCP 47 tag to a launcher code.
// Unknown values become DefaultCode.
func Normalize(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return DefaultCode
	}
	if _, ok := byCode[value]; ok {
		return value
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultCode
	}
	return matchTags(tag)
}

// Match picks the best launcher code for an Accept-Language header value.
func Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultCode
	}
	return matchTags(tags...)
}

func matchTags(tags ...language.Tag) string {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(matchCodes) {
		return DefaultCode
	}
	return matchCodes[idx]
}
