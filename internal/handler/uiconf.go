package handler

import (
	"net/http"
	"time"

	"github.com/bsglauncher/webui/internal/i18n"
	"github.com/bsglauncher/webui/internal/uiconf"
	"github.com/go-chi/chi/v5"
)

// UIConfigHandler serves the static page configuration tables.
type UIConfigHandler struct {
	language     func() string
	contentCache time.Duration
}

// NewUIConfigHandler creates a UIConfigHandler.
func NewUIConfigHandler(language func() string, contentCache time.Duration) *UIConfigHandler {
	return &UIConfigHandler{language: language, contentCache: contentCache}
}

// Config handles GET /ui/config?lang=.
func (h *UIConfigHandler) Config(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" && h.language != nil {
		lang = h.language()
	}
	RespondJSON(w, http.StatusOK, uiconf.Default(i18n.Normalize(lang), h.contentCache))
}

// Page handles GET /ui/pages/{game}/{branch}/{page}.
func (h *UIConfigHandler) Page(w http.ResponseWriter, r *http.Request) {
	p, err := uiconf.Page(chi.URLParam(r, "game"), chi.URLParam(r, "branch"), chi.URLParam(r, "page"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

type languageEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

type languagesResponse struct {
	Current   string          `json:"current"`
	Preferred string          `json:"preferred"`
	Languages []languageEntry `json:"languages"`
}

// Languages handles GET /ui/languages. Preferred is the best match for the
// request's Accept-Language header.
func (h *UIConfigHandler) Languages(w http.ResponseWriter, r *http.Request) {
	resp := languagesResponse{Current: i18n.DefaultCode}
	if h.language != nil {
		resp.Current = h.language()
	}
	resp.Preferred = i18n.Match(r.Header.Get("Accept-Language"))
	for _, l := range i18n.Languages() {
		resp.Languages = append(resp.Languages, languageEntry{Code: l.Code, Label: l.Label, Tag: l.BCP47()})
	}
	RespondJSON(w, http.StatusOK, resp)
}
