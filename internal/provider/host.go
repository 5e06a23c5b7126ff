package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
)

// maxHostResponse bounds how much of a host response is read.
const maxHostResponse = 8 << 20

// HostClient talks to the launcher host process that owns the install and
// update engine. The web UI only reads from it.
type HostClient struct {
	baseURL *url.URL
	logger  *slog.Logger
	client  *http.Client
}

// NewHostClient creates a host client. baseURL is the host's API root, e.g.
// http://127.0.0.1:4300/launcher/.
func NewHostClient(baseURL string, logger *slog.Logger) (*HostClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse host base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("host base url must be absolute: %q", baseURL)
	}
	return &HostClient{
		baseURL: u,
		logger:  logger,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Games fetches the current games snapshot.
func (c *HostClient) Games(ctx context.Context) ([]domain.RawGame, error) {
	body, err := c.get(ctx, "games", nil)
	if err != nil {
		return nil, err
	}
	return domain.DecodeGames(body)
}

// Settings fetches the launcher settings.
func (c *HostClient) Settings(ctx context.Context) (domain.Settings, error) {
	body, err := c.get(ctx, "settings", nil)
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.DecodeSettings(body)
}

// SupportConfiguration fetches the support form configuration.
func (c *HostClient) SupportConfiguration(ctx context.Context) (domain.SupportConfiguration, error) {
	body, err := c.get(ctx, "support/configuration", nil)
	if err != nil {
		return domain.SupportConfiguration{}, err
	}
	return domain.DecodeSupportConfiguration(body)
}

// SiteConfiguration fetches the site configuration for one game.
func (c *HostClient) SiteConfiguration(ctx context.Context, game string) (domain.SiteConfiguration, error) {
	body, err := c.get(ctx, "site/configuration", url.Values{"game": {game}})
	if err != nil {
		return domain.SiteConfiguration{}, err
	}
	return domain.DecodeSiteConfiguration(body)
}

func (c *HostClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("launcher host unreachable", "path", path, "error", err)
		return nil, domain.ErrHostUnavailable("launcher host unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("launcher host returned non-200", "path", path, "status", resp.StatusCode)
		return nil, domain.ErrHostUnavailable(fmt.Sprintf("launcher host %s returned %d", path, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHostResponse+1))
	if err != nil {
		return nil, domain.ErrHostUnavailable("read launcher host response", err)
	}
	if len(body) > maxHostResponse {
		c.logger.Warn("launcher host response too large", "path", path, "limit", maxHostResponse)
		return nil, domain.ErrHostUnavailable(
			fmt.Sprintf("launcher host %s response exceeds %d bytes", path, maxHostResponse), nil)
	}
	return body, nil
}
