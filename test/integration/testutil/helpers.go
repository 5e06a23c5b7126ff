//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/bsglauncher/webui/internal/domain"
)

// FakeHost serves the launcher host API from canned documents.
type FakeHost struct {
	srv *httptest.Server

	mu       sync.Mutex
	games    []byte
	settings []byte
	failing  bool
}

// NewFakeHost starts a fake host with an empty catalog and default settings.
func NewFakeHost() *FakeHost {
	h := &FakeHost{
		games:    []byte(`[]`),
		settings: []byte(`{"language":"en","selectedGame":"eft"}`),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/launcher/games", h.serve(func() []byte { return h.games }))
	mux.HandleFunc("/launcher/settings", h.serve(func() []byte { return h.settings }))
	mux.HandleFunc("/launcher/support/configuration", h.serve(func() []byte {
		return []byte(`{"categories":[],"gameLogsFreshnessSec":3600}`)
	}))
	mux.HandleFunc("/launcher/site/configuration", h.serve(func() []byte {
		return []byte(`{"eftDiscountLabelText":"-20%","eftDiscountLabelIsEnabled":true,"discountLabelStart":"2000-01-01T00:00:00Z","discountLabelEnd":"2999-01-01T00:00:00Z"}`)
	}))
	h.srv = httptest.NewServer(mux)
	return h
}

func (h *FakeHost) serve(doc func() []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.mu.Lock()
		failing := h.failing
		body := doc()
		h.mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

// URL returns the host API root.
func (h *FakeHost) URL() string { return h.srv.URL + "/launcher/" }

// SetGames replaces the games snapshot the host returns.
func (h *FakeHost) SetGames(games []domain.RawGame) {
	body, err := domain.EncodeGames(games)
	if err != nil {
		panic(err)
	}
	h.mu.Lock()
	h.games = body
	h.mu.Unlock()
}

// SetFailing makes every endpoint answer 503.
func (h *FakeHost) SetFailing(failing bool) {
	h.mu.Lock()
	h.failing = failing
	h.mu.Unlock()
}

// Close stops the fake host.
func (h *FakeHost) Close() { h.srv.Close() }

// SampleGames returns a selected game with two branches and a second,
// unselected game.
func SampleGames() []domain.RawGame {
	return []domain.RawGame{
		{
			Name:           "eft",
			FullName:       "Escape from Tarkov",
			GameEdition:    "standard",
			IsBought:       true,
			IsSelected:     true,
			SelectedBranch: "live",
			Branches: []domain.RawBranch{
				{Name: "live", IsActive: true, IsDefault: true, Status: 1, ParticipantStatus: domain.ParticipantApproved},
				{Name: "ets", Status: 1, ParticipantStatus: domain.ParticipantApproved},
			},
		},
		{
			Name:           "arena",
			FullName:       "Escape from Tarkov: Arena",
			SelectedBranch: "live",
			Branches: []domain.RawBranch{
				{Name: "live", IsDefault: true, Status: 1},
			},
		},
	}
}

// HostToken issues a host-realm token for hostID.
func (env *TestEnv) HostToken(hostID string) string {
	env.t.Helper()
	token, err := env.JWTMgr.IssueHostToken(hostID)
	if err != nil {
		env.t.Fatalf("HostToken: %v", err)
	}
	return token
}

// PushSnapshot posts games to /host/snapshot with a host token.
func (env *TestEnv) PushSnapshot(games []domain.RawGame, force bool, idempotencyKey string) *http.Response {
	env.t.Helper()
	body, err := domain.EncodeGames(games)
	if err != nil {
		env.t.Fatalf("PushSnapshot: encode: %v", err)
	}
	path := "/host/snapshot"
	if force {
		path += "?force=true"
	}
	req, err := http.NewRequest(http.MethodPost, env.Server.URL+path, bytes.NewReader(body))
	if err != nil {
		env.t.Fatalf("PushSnapshot: new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.HostToken("test-host"))
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("PushSnapshot: %v", err)
	}
	return resp
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with an optional bearer token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do(http.MethodPost, path, body, token)
}

// PUT performs a PUT request without authentication.
func (env *TestEnv) PUT(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.do(http.MethodPut, path, body, "")
}

func (env *TestEnv) do(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, env.Server.URL+path, buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
