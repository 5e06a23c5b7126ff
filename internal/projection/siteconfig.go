package projection

import (
	"context"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
)

// SiteConfigProjection is a cached site configuration for one game.
type SiteConfigProjection struct {
	Game      string                   `json:"game"`
	Config    domain.SiteConfiguration `json:"config"`
	FetchedAt time.Time                `json:"fetched_at"`
}

func siteConfigKey(game string) string {
	return "projection:siteconfig:" + game
}

// UpdateSiteConfig caches a game's site configuration for ttl.
func UpdateSiteConfig(ctx context.Context, store Store, p SiteConfigProjection, ttl time.Duration) error {
	if p.FetchedAt.IsZero() {
		p.FetchedAt = time.Now().UTC()
	}
	return SetJSON(ctx, store, siteConfigKey(p.Game), p, ttl)
}

// GetSiteConfig retrieves a cached site configuration. A miss wraps ErrMiss.
func GetSiteConfig(ctx context.Context, store Store, game string) (*SiteConfigProjection, error) {
	var p SiteConfigProjection
	if err := GetJSON(ctx, store, siteConfigKey(game), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// InvalidateSiteConfig removes a game's cached site configuration.
func InvalidateSiteConfig(ctx context.Context, store Store, game string) error {
	return store.Delete(ctx, siteConfigKey(game))
}
