package provider

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHostServer(t *testing.T, mux *http.ServeMux) *HostClient {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewHostClient(srv.URL+"/launcher/", testLogger())
	require.NoError(t, err)
	return c
}

func TestNewHostClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHostClient("launcher/", testLogger())
	assert.Error(t, err)
}

func TestHostClient_Games(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/games", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, `[{"name":"eft","isSelected":true,"selectedBranch":"default",
			"branches":[{"name":"default","participantStatus":2}]}]`)
	})
	c := newHostServer(t, mux)

	games, err := c.Games(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "eft", games[0].Name)
	assert.Equal(t, domain.ParticipantApproved, games[0].Branches[0].ParticipantStatus)
}

func TestHostClient_GamesMalformed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/games", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"name":"eft","branches":{"name":"default"}}]`)
	})
	c := newHostServer(t, mux)

	_, err := c.Games(context.Background())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestHostClient_Non200(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/settings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newHostServer(t, mux)

	_, err := c.Settings(context.Background())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "HOST_UNAVAILABLE", appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
}

func TestHostClient_ResponseSizeLimit(t *testing.T) {
	var size atomic.Int64
	size.Store(maxHostResponse)
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/games", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "[]"+strings.Repeat(" ", int(size.Load())-2))
	})
	c := newHostServer(t, mux)

	games, err := c.Games(context.Background())
	require.NoError(t, err, "a body of exactly the limit is accepted")
	assert.Empty(t, games)

	size.Store(maxHostResponse + 1)
	_, err = c.Games(context.Background())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "HOST_UNAVAILABLE", appErr.Code)
	assert.Contains(t, appErr.Message, "exceeds")
}

func TestHostClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewHostClient(base+"/launcher/", testLogger())
	require.NoError(t, err)

	_, err = c.Games(context.Background())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "HOST_UNAVAILABLE", appErr.Code)
	assert.Error(t, appErr.Cause)
}

func TestHostClient_Settings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/settings", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"language":"de","account":{"nickname":"Nikita"}}`)
	})
	c := newHostServer(t, mux)

	s, err := c.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "de", s.Language)
	assert.Equal(t, "Nikita", s.Account.Nickname)
	assert.Equal(t, domain.DefaultMaxBugReportSize, s.MaxBugReportSize)
}

func TestHostClient_SupportConfiguration(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/support/configuration", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"categories":[{"id":1}],"gameLogsSizeLimit":1048576}`)
	})
	c := newHostServer(t, mux)

	cfg, err := c.SupportConfiguration(context.Background())
	require.NoError(t, err)
	assert.Len(t, cfg.Categories, 1)
	assert.Equal(t, int64(1048576), cfg.GameLogsSizeLimit)
}

func TestHostClient_SiteConfiguration(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/site/configuration", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "arena", r.URL.Query().Get("game"))
		_, _ = io.WriteString(w, `{"isArenaFreeWeekendEnabled":true}`)
	})
	c := newHostServer(t, mux)

	cfg, err := c.SiteConfiguration(context.Background(), "arena")
	require.NoError(t, err)
	assert.True(t, cfg.IsArenaFreeWeekendEnabled)
}
