package uiconf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	tests := []struct {
		name    string
		game    string
		branch  string
		page    string
		wantImg string
		wantPos string
	}{
		{"eft default main", "eft", "default", PageMain, "img/main_art.jpg", "center top"},
		{"eft ets news item", "eft", "ets", PageNewsItem, "img/news_art_ets.jpg", "right top"},
		{"eft tournament settings", "eft", "tournament", PageSettings, "img/settings_art_tournament.jpg", "right top"},
		{"eft unknown branch falls back", "eft", "pve", PageMain, "img/main_art.jpg", "center top"},
		{"arena main", "arena", "default", PageMain, "img/arena_art.jpg", "center 1px"},
		{"arena ets branch falls back", "arena", "ets", PageNews, "img/settings_art_arena.jpg", "right top"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Page(tt.game, tt.branch, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantImg, p.Img)
			assert.Equal(t, tt.wantPos, p.ImgPos)
		})
	}
}

func TestPage_NotFound(t *testing.T) {
	_, err := Page("unknown", "default", PageMain)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	_, err = Page("eft", "default", "shop")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestGamePages(t *testing.T) {
	eft, ok := Game("eft")
	require.True(t, ok)
	assert.Equal(t, int64(89771130), eft.VKGroupID)

	arena, ok := Game("arena")
	require.True(t, ok)
	assert.Equal(t, int64(218983927), arena.VKGroupID)
	assert.Equal(t, "https://twitter.com/tarkovarena", arena.TwitterLink)
}

func TestEditionTitle(t *testing.T) {
	e, ok := EditionTitle("edge_of_darkness")
	require.True(t, ok)
	assert.Equal(t, "Edge of Darkness Limited Edition", e.Title)
	assert.False(t, e.Localized)

	e, ok = EditionTitle(EditionNotPurchased)
	require.True(t, ok)
	assert.True(t, e.Localized)
	assert.True(t, e.Error)

	_, ok = EditionTitle("collector")
	assert.False(t, ok)
}

func TestLinks(t *testing.T) {
	links := AuthCenterLinks("")
	assert.Equal(t, "https://www.escapefromtarkov.com/", links[LinkRoot])
	assert.Equal(t,
		"https://www.escapefromtarkov.com/registration?utm_source=launcher&utm_medium=link&utm_campaign=footer",
		links[LinkRegistration])

	custom := AuthCenterLinks("https://auth.example.org/")
	assert.Equal(t, "https://auth.example.org/", custom[LinkRoot])

	menu := MainMenuLinks("https://www.arena.tarkov.com")
	assert.Equal(t, "https://www.arena.tarkov.com", menu["root"])
	assert.Equal(t, "https://www.arena.tarkov.com/preorder-page", menu["preorder"])
	assert.Len(t, menu, 6)
}

func TestClickGoals(t *testing.T) {
	name, ok := ClickGoal(ActionBuy, "eft")
	assert.True(t, ok)
	assert.Equal(t, "click_buy_eft", name)

	_, ok = ClickGoal(ActionBuy, "pve")
	assert.False(t, ok)

	assert.True(t, IsClickGoal(GoalCreateAccount))
	assert.False(t, IsClickGoal("click_nothing"))
	assert.Len(t, ClickGoals(), 17)
	assert.Equal(t, []string{"login"}, EventGoals())
}

func TestFeedbackLimits(t *testing.T) {
	f := Default("en", 0).Feedback
	assert.True(t, f.AnswerRequired(3))
	assert.False(t, f.AnswerRequired(1))
	assert.Equal(t, 255, f.TextInputMaxLen)
	assert.Equal(t, 500, f.TextAreaMaxLen)
}

func TestDefault(t *testing.T) {
	cfg := Default("", 0)

	assert.Equal(t, "en", cfg.Select2.Language)
	assert.Equal(t, int64(86400000), cfg.Timings.ContentCacheMs)
	assert.Equal(t, int64(1800000), cfg.Timings.AutoUpdateMs)
	assert.Equal(t, [2]int64{0, 300000}, cfg.Timings.PushstreamWaitUntilRefresh)
	assert.Equal(t, "/push/notifier/getwebsocket", cfg.Pushstream.URLPrefixWebsocket)
	assert.True(t, cfg.NewsCarousel.Dots)
	assert.False(t, cfg.MainCarousel.Dots)
	assert.Equal(t, int64(15*1024*1024), cfg.MaxBugReportSize)
	assert.Len(t, cfg.Gates, 4)
	assert.Equal(t, []domain.GameState{
		domain.GameStateUpdateRequired, domain.GameStateRepairRequired,
		domain.GameStateReinstallRequired, domain.GameStateReadyToGame,
	}, cfg.Gates[GateSendFeedback].GameStates)

	short := Default("ru", time.Hour)
	assert.Equal(t, int64(3600000), short.Timings.ContentCacheMs)
	assert.Equal(t, "ru", short.Select2.Language)

	body, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"ionSliderDefaultConfig":{"type":"single","skin":"eft","hide_min_max":true,"hide_from_to":true}`)
}
