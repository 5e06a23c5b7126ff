package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bsglauncher/webui/internal/auth"
	"github.com/bsglauncher/webui/internal/guard"
	"github.com/bsglauncher/webui/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter. Pool may be nil.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	Logger *slog.Logger

	Catalog    handler.CatalogReader
	Refresher  handler.Refresher
	Snapshots  handler.SnapshotApplier
	Settings   handler.SettingsService
	SiteConfig handler.SiteConfigService
	WebSocket  http.HandlerFunc

	// HostState reports the launcher host circuit state for /health.
	HostState func() string
	// WSClients reports the number of connected pages for /health.
	WSClients func() int

	ContentCacheInterval time.Duration
	CORSAllowedOrigins   []string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	language := func() string { return deps.Settings.Current().Language }

	// Guards
	refreshLimiter := guard.NewRateLimiter(6, time.Minute)
	pushIdempotency := guard.NewIdempotencyGuard(10 * time.Minute)

	// Handlers
	catalogHandler := handler.NewCatalogHandler(deps.Catalog, deps.Refresher, refreshLimiter, language)
	settingsHandler := handler.NewSettingsHandler(deps.Settings)
	siteConfigHandler := handler.NewSiteConfigHandler(deps.SiteConfig)
	uiHandler := handler.NewUIConfigHandler(language, deps.ContentCacheInterval)
	hostHandler := handler.NewHostHandler(deps.Snapshots, pushIdempotency, logger)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))

	// WebSocket upgrade (no JSON content-type)
	if deps.WebSocket != nil {
		r.Get("/ws", deps.WebSocket)
	}

	r.Group(func(r chi.Router) {
		r.Use(handler.JSONContentType)

		r.Get("/health", handler.HealthHandler(deps.Pool, deps.HostState, deps.WSClients))

		r.Route("/games", func(r chi.Router) {
			r.Get("/", catalogHandler.ListGames)
			r.Post("/refresh", catalogHandler.Refresh)
			r.Get("/selected", catalogHandler.SelectedGame)
			r.Get("/selected/branch", catalogHandler.SelectedBranch)
			r.Get("/selected/branches/{branch}", catalogHandler.SelectedGameBranch)
			r.Get("/{name}", catalogHandler.GetGame)
		})
		r.Get("/polls/icon", catalogHandler.PollsIcon)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/language", settingsHandler.SetLanguage)
			r.Get("/support", settingsHandler.SupportConfiguration)
		})

		r.Route("/site-config/{game}", func(r chi.Router) {
			r.Get("/", siteConfigHandler.GetSiteConfig)
			r.Get("/discount-label", siteConfigHandler.DiscountLabel)
		})

		r.Route("/ui", func(r chi.Router) {
			r.Get("/config", uiHandler.Config)
			r.Get("/languages", uiHandler.Languages)
			r.Get("/pages/{game}/{branch}/{page}", uiHandler.Page)
		})

		// Host-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthenticateHost(deps.JWTMgr))
			r.Post("/host/snapshot", hostHandler.PushSnapshot)
		})
	})

	return r
}
