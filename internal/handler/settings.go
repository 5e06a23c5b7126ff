package handler

import (
	"context"
	"net/http"

	"github.com/bsglauncher/webui/internal/domain"
)

// SettingsService is the settings behaviour the handler needs.
type SettingsService interface {
	Current() domain.Settings
	SetLanguage(ctx context.Context, code string) (domain.Settings, error)
	SupportConfiguration(ctx context.Context) (domain.SupportConfiguration, error)
}

// SettingsHandler serves launcher settings.
type SettingsHandler struct {
	svc SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetSettings handles GET /settings.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, settingsView(h.svc.Current()))
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

// SetLanguage handles PUT /settings/language.
func (h *SettingsHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req setLanguageRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		RespondError(w, err)
		return
	}
	settings, err := h.svc.SetLanguage(r.Context(), req.Language)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, settingsView(settings))
}

// SupportConfiguration handles GET /settings/support.
func (h *SettingsHandler) SupportConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.SupportConfiguration(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, cfg)
}
