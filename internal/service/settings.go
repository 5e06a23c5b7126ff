package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bsglauncher/webui/internal/catalog"
	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/i18n"
	"github.com/bsglauncher/webui/internal/repository"
)

// SettingsSource fetches launcher settings from the host.
type SettingsSource interface {
	Settings(ctx context.Context) (domain.Settings, error)
	SupportConfiguration(ctx context.Context) (domain.SupportConfiguration, error)
}

// Redrawer re-renders localized UI. *catalog.Catalog implements it.
type Redrawer interface {
	Redraw(view *catalog.View)
}

// SettingsService owns the current launcher settings and the UI language.
type SettingsService struct {
	source   SettingsSource
	redrawer Redrawer
	view     *catalog.View
	db       repository.DBTX
	repo     repository.SettingsRepository
	logger   *slog.Logger

	mu       sync.RWMutex
	settings domain.Settings
}

// NewSettingsService creates a SettingsService. db and repo may be nil, in
// which case settings live in memory only.
func NewSettingsService(
	source SettingsSource,
	redrawer Redrawer,
	view *catalog.View,
	db repository.DBTX,
	repo repository.SettingsRepository,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		source:   source,
		redrawer: redrawer,
		view:     view,
		db:       db,
		repo:     repo,
		logger:   logger,
		settings: domain.DefaultSettings(),
	}
}

// Load fetches settings from the host. When the host is unreachable the
// stored copy is used, then the defaults.
func (s *SettingsService) Load(ctx context.Context) (domain.Settings, error) {
	settings, err := s.source.Settings(ctx)
	if err != nil {
		s.logger.Warn("host settings unavailable", "error", err)
		stored, loadErr := s.loadStored(ctx)
		if loadErr != nil {
			return s.Current(), err
		}
		settings = stored
	} else {
		s.persist(ctx, settings)
	}

	settings.Language = i18n.Normalize(settings.Language)

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.view.SetLanguage(settings.Language)

	s.logger.Info("settings loaded", "language", settings.Language, "selected_game", settings.SelectedGame)
	return settings, nil
}

func (s *SettingsService) loadStored(ctx context.Context) (domain.Settings, error) {
	if s.repo == nil || s.db == nil {
		return domain.DefaultSettings(), nil
	}
	stored, err := s.repo.Load(ctx, s.db)
	if err != nil {
		s.logger.Error("load stored settings", "error", err)
		return domain.Settings{}, err
	}
	if stored == nil {
		return domain.DefaultSettings(), nil
	}
	return *stored, nil
}

// Current returns a copy of the current settings.
func (s *SettingsService) Current() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetLanguage switches the UI language. Unknown codes fall back to English.
// Every redrawer is told about the switch, even if the language is unchanged.
func (s *SettingsService) SetLanguage(ctx context.Context, code string) (domain.Settings, error) {
	if strings.TrimSpace(code) == "" {
		return domain.Settings{}, domain.ErrValidation("language is required")
	}
	language := i18n.Normalize(code)

	s.mu.Lock()
	s.settings.Language = language
	settings := s.settings
	s.mu.Unlock()

	s.view.SetLanguage(language)
	s.redrawer.Redraw(s.view)
	s.persist(ctx, settings)

	s.logger.Info("language changed", "requested", code, "language", language)
	return settings, nil
}

// SupportConfiguration passes the support form configuration through from
// the host.
func (s *SettingsService) SupportConfiguration(ctx context.Context) (domain.SupportConfiguration, error) {
	return s.source.SupportConfiguration(ctx)
}

func (s *SettingsService) persist(ctx context.Context, settings domain.Settings) {
	if s.repo == nil || s.db == nil {
		return
	}
	if err := s.repo.Save(ctx, s.db, settings); err != nil {
		s.logger.Error("store settings", "error", err)
	}
}
