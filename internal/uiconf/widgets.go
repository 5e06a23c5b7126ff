package uiconf

import (
	"time"

	"github.com/bsglauncher/webui/internal/domain"
)

// SlickConfig configures a slick carousel.
type SlickConfig struct {
	Dots          bool   `json:"dots"`
	Infinite      bool   `json:"infinite"`
	Speed         int    `json:"speed"`
	Autoplay      bool   `json:"autoplay"`
	AutoplaySpeed int    `json:"autoplaySpeed"`
	Fade          bool   `json:"fade"`
	CSSEase       string `json:"cssEase"`
	PrevArrow     string `json:"prevArrow"`
	NextArrow     string `json:"nextArrow"`
	AppendDots    string `json:"appendDots,omitempty"`
}

// MainCarousel is the main page carousel.
func MainCarousel() SlickConfig {
	return SlickConfig{
		Infinite:      true,
		Speed:         500,
		AutoplaySpeed: 10000,
		Fade:          true,
		CSSEase:       "linear",
		PrevArrow:     `<div class="slick-prev"></div>`,
		NextArrow:     `<div class="slick-next"></div>`,
	}
}

// NewsCarousel is the news carousel; it adds dots under the caption.
func NewsCarousel() SlickConfig {
	c := MainCarousel()
	c.Dots = true
	c.AppendDots = "#news_list .slick-slide .caption"
	return c
}

// Select2Options are the dropdown defaults.
type Select2Options struct {
	MinimumResultsForSearch int    `json:"minimumResultsForSearch"`
	Placeholder             string `json:"placeholder"`
	Language                string `json:"language"`
}

// RangeSlider holds the static part of the volume slider config. Event
// callbacks live in the page.
type RangeSlider struct {
	Type       string `json:"type"`
	Skin       string `json:"skin"`
	HideMinMax bool   `json:"hide_min_max"`
	HideFromTo bool   `json:"hide_from_to"`
}

// PushstreamConfig configures the push notification stream client.
type PushstreamConfig struct {
	URLPrefixWebsocket        string `json:"urlPrefixWebsocket"`
	Host                      string `json:"host"`
	Port                      string `json:"port,omitempty"`
	Modes                     string `json:"modes"`
	MessagesPublishedAfter    int    `json:"messagesPublishedAfter"`
	MessagesControlByArgument bool   `json:"messagesControlByArgument"`
}

// FeedbackLimits bounds the tester feedback form.
type FeedbackLimits struct {
	AnswersRequiredTypes []int `json:"answersRequiredTypes"`
	TextInputMinLen      int   `json:"textInputMinLen"`
	TextInputMaxLen      int   `json:"textInputMaxLen"`
	TextAreaMinLen       int   `json:"textAreaMinLen"`
	TextAreaMaxLen       int   `json:"textAreaMaxLen"`
}

// AnswerRequired reports whether a question type needs an answer.
func (f FeedbackLimits) AnswerRequired(questionType int) bool {
	for _, t := range f.AnswersRequiredTypes {
		if t == questionType {
			return true
		}
	}
	return false
}

// Timings are UI delays and refresh intervals in milliseconds.
type Timings struct {
	ContentCacheMs             int64    `json:"contentCacheInterval"`
	FadeOutMs                  int64    `json:"fadeOutSpeed"`
	FadeInMs                   int64    `json:"fadeInSpeed"`
	AutoUpdateMs               int64    `json:"autoUpdateInterval"`
	ResizeDeltaMs              int64    `json:"resizeDelta"`
	ImportantNewsMarqueeSpeed  int      `json:"importantNewsMarqueeSpeed"`
	PushstreamWaitUntilRefresh [2]int64 `json:"pushstreamWaitUntilRefresh"`
}

// Assets lists sound and placeholder resources.
type Assets struct {
	SoundManager           map[string]string `json:"sm2distr"`
	SoundFolder            string            `json:"soundFolder"`
	Volume                 int               `json:"volume"`
	DummyImage             string            `json:"dummyImage"`
	DummyAvatar            string            `json:"dummyAvatar"`
	DummyNewsItem          string            `json:"dummyNewsItem"`
	APIRoute               string            `json:"apiRoute"`
	ErrorMessageLangPrefix string            `json:"errorMessageLangPrefix"`
}

// Gates lists, per UI action, the update and install states that allow it.
type Gates struct {
	UpdateStates []domain.GameUpdateState `json:"gameUpdateStates"`
	GameStates   []domain.GameState       `json:"gameStates"`
}

// Config is everything the page needs besides live data.
type Config struct {
	Editions         map[string]string    `json:"editions"`
	Pages            map[string]GamePages `json:"pageParams"`
	AuthCenterURI    string               `json:"authCenterUri"`
	AuthCenterLinks  map[string]string    `json:"authCenterLinks"`
	MainMenuTemplate map[string]string    `json:"mainMenuTemplate"`
	ClickGoals       []string             `json:"clickGoals"`
	EventGoals       []string             `json:"eventGoals"`
	MainCarousel     SlickConfig          `json:"mainSlickConfig"`
	NewsCarousel     SlickConfig          `json:"newsSlickConfig"`
	Select2          Select2Options       `json:"s2opt"`
	RangeSlider      RangeSlider          `json:"ionSliderDefaultConfig"`
	Pushstream       PushstreamConfig     `json:"pushstreamConfig"`
	Feedback         FeedbackLimits       `json:"feedback"`
	Timings          Timings              `json:"timings"`
	Assets           Assets               `json:"assets"`
	MaxBugReportSize int64                `json:"maxBugReportSize"`
	Gates            map[string]Gates     `json:"gates"`
}

// Gate names in Config.Gates.
const (
	GateSelectFolder   = "selectFolder"
	GateCheckForUpdate = "checkForUpdate"
	GateSelectBranch   = "selectBranch"
	GateSendFeedback   = "sendFeedback"
)

// Default builds the page configuration. contentCache overrides the content
// cache interval when positive.
func Default(language string, contentCache time.Duration) Config {
	if language == "" {
		language = domain.DefaultLanguage
	}
	cache := 24 * time.Hour
	if contentCache > 0 {
		cache = contentCache
	}

	pages := make(map[string]GamePages, len(pageParams))
	for k, v := range pageParams {
		pages[k] = v
	}

	return Config{
		Editions:         Editions(),
		Pages:            pages,
		AuthCenterURI:    AuthCenterURI,
		AuthCenterLinks:  AuthCenterLinks(""),
		MainMenuTemplate: MainMenuLinks(""),
		ClickGoals:       ClickGoals(),
		EventGoals:       EventGoals(),
		MainCarousel:     MainCarousel(),
		NewsCarousel:     NewsCarousel(),
		Select2:          Select2Options{MinimumResultsForSearch: -1, Language: language},
		RangeSlider:      RangeSlider{Type: "single", Skin: "eft", HideMinMax: true, HideFromTo: true},
		Pushstream: PushstreamConfig{
			URLPrefixWebsocket:        "/push/notifier/getwebsocket",
			Host:                      "wstream.escapefromtarkov.com",
			Modes:                     "websocket",
			MessagesPublishedAfter:    5,
			MessagesControlByArgument: true,
		},
		Feedback: FeedbackLimits{
			AnswersRequiredTypes: []int{2, 3, 4},
			TextInputMaxLen:      255,
			TextAreaMaxLen:       500,
		},
		Timings: Timings{
			ContentCacheMs:             cache.Milliseconds(),
			FadeOutMs:                  200,
			FadeInMs:                   400,
			AutoUpdateMs:               (30 * time.Minute).Milliseconds(),
			ResizeDeltaMs:              200,
			ImportantNewsMarqueeSpeed:  40,
			PushstreamWaitUntilRefresh: [2]int64{0, (5 * time.Minute).Milliseconds()},
		},
		Assets: Assets{
			SoundManager: map[string]string{
				"debug":   "/js/plugins/sm2/soundmanager2.js",
				"default": "/js/plugins/sm2/soundmanager2-nodebug-jsmin.js",
			},
			SoundFolder:            "sound",
			Volume:                 50,
			DummyImage:             "img/dummy.jpg",
			DummyAvatar:            domain.DefaultAvatar,
			DummyNewsItem:          "img/dummyNewsItem.jpg",
			APIRoute:               "launcher/",
			ErrorMessageLangPrefix: "error_msg_",
		},
		MaxBugReportSize: domain.DefaultMaxBugReportSize,
		Gates:            gates(),
	}
}

func gates() map[string]Gates {
	all := []domain.GameUpdateState{domain.GameUpdateIdle, domain.GameUpdatePause, domain.GameUpdateStopped}
	idle := []domain.GameUpdateState{domain.GameUpdateIdle}
	installable := []domain.GameState{
		domain.GameStateInstallRequired, domain.GameStateUpdateRequired, domain.GameStateRepairRequired,
		domain.GameStateReinstallRequired, domain.GameStateReadyToGame,
	}
	return map[string]Gates{
		GateSelectFolder:   {UpdateStates: idle, GameStates: installable},
		GateCheckForUpdate: {UpdateStates: idle, GameStates: []domain.GameState{domain.GameStateUpdateRequired, domain.GameStateReadyToGame}},
		GateSelectBranch:   {UpdateStates: all, GameStates: installable},
		GateSendFeedback:   {UpdateStates: all, GameStates: installable[1:]},
	}
}
