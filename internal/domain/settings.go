package domain

import (
	"encoding/json"
)

const (
	// DefaultLanguage is used when the host reports no language.
	DefaultLanguage = "en"
	// DefaultMaxBugReportSize is 15 MiB.
	DefaultMaxBugReportSize int64 = 15 * 1024 * 1024
	// DefaultAvatar is shown for accounts without an avatar.
	DefaultAvatar = "img/avatar.jpg"
)

// GeoInfo is the geographic origin of the account.
type GeoInfo struct {
	Country   string `json:"country"`
	Continent string `json:"continent"`
}

// Account is the signed-in user.
type Account struct {
	ID       int64   `json:"id"`
	Nickname string  `json:"nickname"`
	Avatar   string  `json:"avatar"`
	GeoInfo  GeoInfo `json:"geoInfo"`
}

// AvatarOrDefault returns the avatar path or the placeholder image.
func (a Account) AvatarOrDefault() string {
	if a.Avatar == "" {
		return DefaultAvatar
	}
	return a.Avatar
}

// Settings mirrors the launcher settings the page renders. Empty strings,
// zero numbers and false stand for "not set".
type Settings struct {
	Language                  string          `json:"language"`
	Account                   Account         `json:"account"`
	SelectedGame              string          `json:"selectedGame"`
	SupportNotificationsCount int             `json:"supportNotificationsCount"`
	AuthCenterURI             string          `json:"authCenterUri"`
	TempFolder                string          `json:"tempFolder"`
	Configuration             json.RawMessage `json:"configuration,omitempty"`
	GamesRootDir              string          `json:"gamesRootDir"`
	CloseBehavior             string          `json:"closeBehavior"`
	GameStartBehavior         string          `json:"gameStartBehavior"`
	KeepLoggedIn              bool            `json:"keepLoggedIn"`
	LaunchMinimized           bool            `json:"launchMinimized"`
	LaunchOnStartup           bool            `json:"launchOnStartup"`
	Login                     string          `json:"login"`
	IPRegion                  string          `json:"ipRegion"`
	MaxBugReportSize          int64           `json:"maxBugReportSize"`
	MaxDownloadSpeed          int64           `json:"maxDownloadSpeed"`
	MaxUploadSpeed            int64           `json:"maxUploadSpeed"`
	QueueAutoLogIn            bool            `json:"queueAutoLogIn"`
	QueueNotifyWithSound      bool            `json:"queueNotifyWithSound"`
	SaveLogin                 bool            `json:"saveLogin"`
	VolumeValue               int             `json:"volumeValue"`
}

// DefaultSettings returns settings with every named default applied.
func DefaultSettings() Settings {
	s := Settings{}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.MaxBugReportSize == 0 {
		s.MaxBugReportSize = DefaultMaxBugReportSize
	}
	if string(s.Configuration) == "null" {
		s.Configuration = nil
	}
}

// DecodeSettings parses a settings document and applies defaults.
func DecodeSettings(data []byte) (Settings, error) {
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, validationFromJSON("settings", err)
	}
	s.applyDefaults()
	return s, nil
}

// SupportConfiguration drives the support/bug report form.
type SupportConfiguration struct {
	Categories           []json.RawMessage `json:"categories"`
	GameLogsFreshnessSec int64             `json:"gameLogsFreshnessSec"`
	GameLogsSizeLimit    int64             `json:"gameLogsSizeLimit"`
}

// DecodeSupportConfiguration parses the support configuration document.
func DecodeSupportConfiguration(data []byte) (SupportConfiguration, error) {
	var c SupportConfiguration
	if err := json.Unmarshal(data, &c); err != nil {
		return SupportConfiguration{}, validationFromJSON("support configuration", err)
	}
	if c.Categories == nil {
		c.Categories = []json.RawMessage{}
	}
	return c, nil
}
