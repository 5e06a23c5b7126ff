package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/guard"
	"github.com/go-chi/chi/v5"
)

// CatalogReader is the read side of the game catalog.
type CatalogReader interface {
	Games() []domain.Game
	Game(name string) domain.Game
	SelectedGame() domain.Game
	SelectedBranch() (domain.Branch, bool)
	CurrentGameBranchByName(name string) (domain.Branch, bool)
	SelectedPollsIcon(lang string) string
}

// Refresher schedules a forced poll of the launcher host.
type Refresher interface {
	Trigger()
}

// CatalogHandler serves the game catalog.
type CatalogHandler struct {
	catalog   CatalogReader
	refresher Refresher
	limiter   *guard.RateLimiter
	language  func() string
}

// NewCatalogHandler creates a CatalogHandler. language supplies the current
// UI language for the polls icon when the request names none.
func NewCatalogHandler(catalog CatalogReader, refresher Refresher, limiter *guard.RateLimiter, language func() string) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, refresher: refresher, limiter: limiter, language: language}
}

// ListGames handles GET /games.
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, newGameViews(h.catalog.Games()))
}

// GetGame handles GET /games/{name}.
func (h *CatalogHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := domain.ValidateGameKey(name); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}
	game := h.catalog.Game(name)
	if game.IsPlaceholder() {
		RespondError(w, domain.ErrNotFound("game", name))
		return
	}
	RespondJSON(w, http.StatusOK, newGameView(game))
}

// SelectedGame handles GET /games/selected.
func (h *CatalogHandler) SelectedGame(w http.ResponseWriter, r *http.Request) {
	game := h.catalog.SelectedGame()
	if game.IsPlaceholder() {
		RespondError(w, domain.ErrNotFound("game", "selected"))
		return
	}
	RespondJSON(w, http.StatusOK, newGameView(game))
}

// SelectedBranch handles GET /games/selected/branch.
func (h *CatalogHandler) SelectedBranch(w http.ResponseWriter, r *http.Request) {
	branch, ok := h.catalog.SelectedBranch()
	if !ok {
		RespondError(w, domain.ErrNotFound("branch", "selected"))
		return
	}
	RespondJSON(w, http.StatusOK, newBranchView(branch))
}

// SelectedGameBranch handles GET /games/selected/branches/{branch}.
func (h *CatalogHandler) SelectedGameBranch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "branch")
	branch, ok := h.catalog.CurrentGameBranchByName(name)
	if !ok {
		RespondError(w, domain.ErrNotFound("branch", name))
		return
	}
	RespondJSON(w, http.StatusOK, newBranchView(branch))
}

// Refresh handles POST /games/refresh. The poll runs in the background.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil {
		if res := h.limiter.Check(r.Context(), ClientIP(r)); !res.Allowed {
			RespondError(w, domain.ErrRateLimited(res.Reason))
			return
		}
	}
	h.refresher.Trigger()
	RespondJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// PollsIcon handles GET /polls/icon?lang=.
func (h *CatalogHandler) PollsIcon(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" && h.language != nil {
		lang = h.language()
	}
	RespondJSON(w, http.StatusOK, map[string]string{"icon": h.catalog.SelectedPollsIcon(lang)})
}

// ClientIP returns the first X-Forwarded-For address, else the remote host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
