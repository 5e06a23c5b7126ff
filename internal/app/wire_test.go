package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bsglauncher/webui/internal/auth"
	"github.com/bsglauncher/webui/internal/catalog"
	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/poller"
	"github.com/bsglauncher/webui/internal/projection"
	"github.com/bsglauncher/webui/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHost struct{}

func (stubHost) Games(context.Context) ([]domain.RawGame, error) {
	return []domain.RawGame{{Name: "eft", IsSelected: true}}, nil
}

func (stubHost) Settings(context.Context) (domain.Settings, error) {
	return domain.Settings{Language: "de"}, nil
}

func (stubHost) SupportConfiguration(context.Context) (domain.SupportConfiguration, error) {
	return domain.SupportConfiguration{}, nil
}

func (stubHost) SiteConfiguration(context.Context, string) (domain.SiteConfiguration, error) {
	return domain.SiteConfiguration{}, nil
}

type testApp struct {
	router  http.Handler
	catalog *catalog.Catalog
	jwt     *auth.JWTManager
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.New(logger)
	view := catalog.NewView("")
	p := poller.New(poller.Options{Source: stubHost{}, Catalog: cat, View: view, Logger: logger})
	settings := service.NewSettingsService(stubHost{}, cat, view, nil, nil, logger)
	_, err := settings.Load(context.Background())
	require.NoError(t, err)
	jwtMgr := auth.NewJWTManager("wire-test-secret-with-enough-length", time.Hour)

	router := NewRouter(RouterDeps{
		JWTMgr:               jwtMgr,
		Logger:               logger,
		Catalog:              cat,
		Refresher:            p,
		Snapshots:            p,
		Settings:             settings,
		SiteConfig:           service.NewSiteConfigService(stubHost{}, projection.NewInMemoryStore(), time.Hour, logger),
		HostState:            func() string { return "closed" },
		ContentCacheInterval: time.Hour,
	})
	return testApp{router: router, catalog: cat, jwt: jwtMgr}
}

func (a testApp) do(method, target, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	a := newTestApp(t)
	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/games", http.StatusOK},
		{http.MethodGet, "/games/selected", http.StatusNotFound},
		{http.MethodGet, "/settings", http.StatusOK},
		{http.MethodGet, "/ui/config", http.StatusOK},
		{http.MethodGet, "/ui/languages", http.StatusOK},
		{http.MethodGet, "/ui/pages/eft/default/main", http.StatusOK},
		{http.MethodGet, "/polls/icon", http.StatusOK},
		{http.MethodGet, "/site-config/eft/discount-label", http.StatusOK},
		{http.MethodGet, "/ws", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := a.do(tt.method, tt.target, "", nil)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			}
		})
	}
}

func TestRouter_HostSnapshotRequiresToken(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodPost, "/host/snapshot", `[]`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := a.jwt.IssueHostToken("host-1")
	require.NoError(t, err)
	header := http.Header{"Authorization": {"Bearer " + token}}

	w = a.do(http.MethodPost, "/host/snapshot", `[{"name":"eft","isSelected":true,"selectedBranch":"live","branches":[{"name":"live"}]}]`, header)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "eft", a.catalog.SelectedGameName())

	w = a.do(http.MethodGet, "/games/selected/branch", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/host/snapshot", `{"games":[]}`, header)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_SetLanguageRedraws(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodPut, "/settings/language", `{"language":"mx"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"language":"mx"`)

	w = a.do(http.MethodGet, "/ui/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"language":"mx"`)
}

func TestRouter_RefreshAccepted(t *testing.T) {
	a := newTestApp(t)
	w := a.do(http.MethodPost, "/games/refresh", "", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
}
