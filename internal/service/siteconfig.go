package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/projection"
)

// SiteConfigSource fetches a game's site configuration from the host.
type SiteConfigSource interface {
	SiteConfiguration(ctx context.Context, game string) (domain.SiteConfiguration, error)
}

// SiteConfigService serves per-game site configuration, cached for the
// content cache interval.
type SiteConfigService struct {
	source SiteConfigSource
	store  projection.Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewSiteConfigService creates a SiteConfigService.
func NewSiteConfigService(source SiteConfigSource, store projection.Store, ttl time.Duration, logger *slog.Logger) *SiteConfigService {
	return &SiteConfigService{source: source, store: store, ttl: ttl, logger: logger}
}

// ForGame returns the site configuration for game, from cache when fresh.
func (s *SiteConfigService) ForGame(ctx context.Context, game string) (domain.SiteConfiguration, error) {
	if err := domain.ValidateGameKey(game); err != nil {
		return domain.SiteConfiguration{}, domain.ErrValidation(err.Error())
	}

	cached, err := projection.GetSiteConfig(ctx, s.store, game)
	if err == nil {
		return cached.Config, nil
	}
	if !errors.Is(err, projection.ErrMiss) {
		s.logger.Warn("site config cache read failed", "game", game, "error", err)
	}

	cfg, err := s.source.SiteConfiguration(ctx, game)
	if err != nil {
		return domain.SiteConfiguration{}, err
	}

	p := projection.SiteConfigProjection{Game: game, Config: cfg}
	if err := projection.UpdateSiteConfig(ctx, s.store, p, s.ttl); err != nil {
		s.logger.Warn("site config cache write failed", "game", game, "error", err)
	}
	return cfg, nil
}

// DiscountLabel returns the discount label shown for game at now, if a
// discount window is open.
func (s *SiteConfigService) DiscountLabel(ctx context.Context, game string, now time.Time) (string, bool, error) {
	cfg, err := s.ForGame(ctx, game)
	if err != nil {
		return "", false, err
	}
	label, ok := cfg.DiscountLabel(game, now)
	return label, ok, nil
}

// Invalidate drops the cached configuration for game.
func (s *SiteConfigService) Invalidate(ctx context.Context, game string) error {
	return projection.InvalidateSiteConfig(ctx, s.store, game)
}
