package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bsglauncher/webui/internal/auth"
	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/guard"
	"github.com/bsglauncher/webui/internal/repository"
)

// SnapshotApplier applies a pushed snapshot. The poller implements it.
type SnapshotApplier interface {
	Apply(ctx context.Context, source string, games []domain.RawGame, force bool) int
}

// HostHandler receives pushes from the launcher host.
type HostHandler struct {
	applier     SnapshotApplier
	idempotency *guard.IdempotencyGuard
	logger      *slog.Logger
}

// NewHostHandler creates a HostHandler.
func NewHostHandler(applier SnapshotApplier, idempotency *guard.IdempotencyGuard, logger *slog.Logger) *HostHandler {
	return &HostHandler{applier: applier, idempotency: idempotency, logger: logger}
}

type snapshotResponse struct {
	Games   int  `json:"games"`
	Changed int  `json:"changed"`
	Force   bool `json:"force"`
}

// PushSnapshot handles POST /host/snapshot?force=. The body is the games
// array as the host serializes it. A repeated Idempotency-Key is rejected.
func (h *HostHandler) PushSnapshot(w http.ResponseWriter, r *http.Request) {
	force := false
	if v := r.URL.Query().Get("force"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			RespondError(w, domain.ErrValidation("force must be a boolean"))
			return
		}
		force = parsed
	}

	key := r.Header.Get("Idempotency-Key")
	if h.idempotency != nil {
		if res := h.idempotency.Check(r.Context(), key); !res.Allowed {
			RespondError(w, domain.ErrConflict(res.Reason))
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.forget(key)
		RespondError(w, domain.ErrValidation("snapshot body too large or unreadable"))
		return
	}
	games, err := domain.DecodeGames(body)
	if err != nil {
		h.forget(key)
		RespondError(w, err)
		return
	}

	changed := h.applier.Apply(r.Context(), repository.SourcePush, games, force)
	h.logger.Info("host snapshot pushed",
		"host_id", auth.HostIDFromContext(r.Context()),
		"games", len(games),
		"changed", changed,
		"force", force,
		"request_id", GetRequestID(r.Context()),
	)
	RespondJSON(w, http.StatusOK, snapshotResponse{Games: len(games), Changed: changed, Force: force})
}

func (h *HostHandler) forget(key string) {
	if h.idempotency != nil && key != "" {
		h.idempotency.Remove(key)
	}
}
