package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bsglauncher/webui/internal/catalog"
	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/projection"
	"github.com/bsglauncher/webui/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeHost struct {
	settings   domain.Settings
	support    domain.SupportConfiguration
	siteConfig domain.SiteConfiguration
	err        error
	siteCalls  int
}

func (h *fakeHost) Settings(context.Context) (domain.Settings, error) {
	if h.err != nil {
		return domain.Settings{}, h.err
	}
	return h.settings, nil
}

func (h *fakeHost) SupportConfiguration(context.Context) (domain.SupportConfiguration, error) {
	return h.support, h.err
}

func (h *fakeHost) SiteConfiguration(_ context.Context, _ string) (domain.SiteConfiguration, error) {
	h.siteCalls++
	if h.err != nil {
		return domain.SiteConfiguration{}, h.err
	}
	return h.siteConfig, nil
}

type redrawRecorder struct{ languages []string }

func (r *redrawRecorder) Redraw(view *catalog.View) {
	r.languages = append(r.languages, view.Language())
}

type fakeSettingsRepo struct {
	stored *domain.Settings
	saved  []domain.Settings
	err    error
}

func (r *fakeSettingsRepo) Load(context.Context, repository.DBTX) (*domain.Settings, error) {
	return r.stored, r.err
}

func (r *fakeSettingsRepo) Save(_ context.Context, _ repository.DBTX, s domain.Settings) error {
	r.saved = append(r.saved, s)
	return nil
}

type fakeDB struct{ repository.DBTX }

// --- SettingsService Tests ---

func TestSettingsService_LoadFromHost(t *testing.T) {
	host := &fakeHost{settings: domain.Settings{Language: "DE", SelectedGame: "eft"}}
	view := catalog.NewView("")
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(host, &redrawRecorder{}, view, fakeDB{}, repo, testLogger())

	s, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "de", s.Language)
	assert.Equal(t, "de", view.Language())
	assert.Equal(t, "eft", svc.Current().SelectedGame)
	assert.Len(t, repo.saved, 1)
}

func TestSettingsService_LoadFallsBackToStored(t *testing.T) {
	host := &fakeHost{err: domain.ErrHostUnavailable("host down", nil)}
	repo := &fakeSettingsRepo{stored: &domain.Settings{Language: "fr", Login: "player"}}
	svc := NewSettingsService(host, &redrawRecorder{}, catalog.NewView(""), fakeDB{}, repo, testLogger())

	s, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, "player", s.Login)
	assert.Empty(t, repo.saved)
}

func TestSettingsService_LoadFallsBackToDefaults(t *testing.T) {
	host := &fakeHost{err: errors.New("refused")}
	svc := NewSettingsService(host, &redrawRecorder{}, catalog.NewView(""), nil, nil, testLogger())

	s, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, s.Language)
	assert.Equal(t, domain.DefaultMaxBugReportSize, s.MaxBugReportSize)
}

func TestSettingsService_LoadStoredError(t *testing.T) {
	hostErr := errors.New("refused")
	repo := &fakeSettingsRepo{err: errors.New("db down")}
	svc := NewSettingsService(&fakeHost{err: hostErr}, &redrawRecorder{}, catalog.NewView(""), fakeDB{}, repo, testLogger())

	s, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, hostErr)
	assert.Equal(t, domain.DefaultLanguage, s.Language)
}

func TestSettingsService_SetLanguage(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"known code", "ru", "ru"},
		{"upper case", "KO", "ko"},
		{"mexican spanish", "mx", "mx"},
		{"unknown falls back", "xx", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redraws := &redrawRecorder{}
			view := catalog.NewView("")
			repo := &fakeSettingsRepo{}
			svc := NewSettingsService(&fakeHost{}, redraws, view, fakeDB{}, repo, testLogger())

			s, err := svc.SetLanguage(context.Background(), tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Language)
			assert.Equal(t, tt.want, view.Language())
			assert.Equal(t, []string{tt.want}, redraws.languages)
			require.Len(t, repo.saved, 1)
			assert.Equal(t, tt.want, repo.saved[0].Language)
		})
	}
}

func TestSettingsService_SetLanguageEmpty(t *testing.T) {
	redraws := &redrawRecorder{}
	svc := NewSettingsService(&fakeHost{}, redraws, catalog.NewView(""), nil, nil, testLogger())

	_, err := svc.SetLanguage(context.Background(), "  ")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, redraws.languages)
}

func TestSettingsService_SupportConfiguration(t *testing.T) {
	host := &fakeHost{support: domain.SupportConfiguration{GameLogsSizeLimit: 1024}}
	svc := NewSettingsService(host, &redrawRecorder{}, catalog.NewView(""), nil, nil, testLogger())

	cfg, err := svc.SupportConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.GameLogsSizeLimit)
}

// --- SiteConfigService Tests ---

func discountConfig() domain.SiteConfiguration {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	return domain.SiteConfiguration{
		EFTDiscountLabelText:        "-30%",
		EFTDiscountLabelIsEnabled:   true,
		ArenaDiscountLabelText:      "-50%",
		ArenaDiscountLabelIsEnabled: false,
		DiscountLabelStart:          &start,
		DiscountLabelEnd:            &end,
	}
}

func TestSiteConfigService_CachesPerGame(t *testing.T) {
	host := &fakeHost{siteConfig: discountConfig()}
	svc := NewSiteConfigService(host, projection.NewInMemoryStore(), time.Hour, testLogger())
	ctx := context.Background()

	_, err := svc.ForGame(ctx, "eft")
	require.NoError(t, err)
	_, err = svc.ForGame(ctx, "eft")
	require.NoError(t, err)
	assert.Equal(t, 1, host.siteCalls)

	_, err = svc.ForGame(ctx, "arena")
	require.NoError(t, err)
	assert.Equal(t, 2, host.siteCalls)

	require.NoError(t, svc.Invalidate(ctx, "eft"))
	_, err = svc.ForGame(ctx, "eft")
	require.NoError(t, err)
	assert.Equal(t, 3, host.siteCalls)
}

func TestSiteConfigService_InvalidGame(t *testing.T) {
	host := &fakeHost{}
	svc := NewSiteConfigService(host, projection.NewInMemoryStore(), time.Hour, testLogger())

	_, err := svc.ForGame(context.Background(), "../etc")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Zero(t, host.siteCalls)
}

func TestSiteConfigService_HostError(t *testing.T) {
	host := &fakeHost{err: domain.ErrHostUnavailable("host down", nil)}
	svc := NewSiteConfigService(host, projection.NewInMemoryStore(), time.Hour, testLogger())

	_, err := svc.ForGame(context.Background(), "eft")
	require.Error(t, err)

	host.err = nil
	host.siteConfig = discountConfig()
	_, err = svc.ForGame(context.Background(), "eft")
	require.NoError(t, err)
	assert.Equal(t, 2, host.siteCalls)
}

func TestSiteConfigService_DiscountLabel(t *testing.T) {
	inWindow := time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)
	after := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		game      string
		now       time.Time
		wantLabel string
		wantOK    bool
	}{
		{"eft in window", "eft", inWindow, "-30%", true},
		{"arena disabled", "arena", inWindow, "", false},
		{"eft after window", "eft", after, "", false},
	}
	svc := NewSiteConfigService(&fakeHost{siteConfig: discountConfig()}, projection.NewInMemoryStore(), time.Hour, testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok, err := svc.DiscountLabel(context.Background(), tt.game, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}
