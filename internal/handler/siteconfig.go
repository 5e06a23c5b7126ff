package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/go-chi/chi/v5"
)

// SiteConfigService is the site configuration behaviour the handler needs.
type SiteConfigService interface {
	ForGame(ctx context.Context, game string) (domain.SiteConfiguration, error)
	DiscountLabel(ctx context.Context, game string, now time.Time) (string, bool, error)
}

// SiteConfigHandler serves per-game site configuration.
type SiteConfigHandler struct {
	svc SiteConfigService
	now func() time.Time
}

// NewSiteConfigHandler creates a SiteConfigHandler.
func NewSiteConfigHandler(svc SiteConfigService) *SiteConfigHandler {
	return &SiteConfigHandler{svc: svc, now: time.Now}
}

// GetSiteConfig handles GET /site-config/{game}.
func (h *SiteConfigHandler) GetSiteConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.ForGame(r.Context(), chi.URLParam(r, "game"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, cfg)
}

type discountLabelResponse struct {
	Game  string `json:"game"`
	Label string `json:"label"`
	Shown bool   `json:"shown"`
}

// DiscountLabel handles GET /site-config/{game}/discount-label.
func (h *SiteConfigHandler) DiscountLabel(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")
	label, shown, err := h.svc.DiscountLabel(r.Context(), game, h.now())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, discountLabelResponse{Game: game, Label: label, Shown: shown})
}
