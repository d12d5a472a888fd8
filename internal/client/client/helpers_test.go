package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// memStore is a TokenStore with call accounting and error injection.
type memStore struct {
	mu           sync.Mutex
	access       string
	refresh      string
	accessErr    error
	clearCalls   int
	setCalls     int
	refreshReads int
}

func (s *memStore) AccessToken(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.accessErr
}

func (s *memStore) SetAccessToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	s.access = token
	return nil
}

func (s *memStore) ClearAccessToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCalls++
	s.access = ""
	return nil
}

func (s *memStore) RefreshToken(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshReads++
	return s.refresh, nil
}

func (s *memStore) SetRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = token
	return nil
}

func (s *memStore) snapshot() (access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh
}

// fakeAPI mimics the platform API: a protected endpoint that accepts one
// access token, and a configurable refresh endpoint.
type fakeAPI struct {
	t *testing.T

	validToken string

	refreshStatus int
	refreshBody   any
	// refreshGate, when set, holds refresh replies until it is closed.
	refreshGate chan struct{}
	// refreshHangup makes the refresh endpoint drop the connection.
	refreshHangup bool
	// onRefresh and onProtected run at the start of the matching handler.
	onRefresh   func()
	onProtected func(auth string)

	protectedCalls atomic.Int32
	refreshCalls   atomic.Int32

	mu             sync.Mutex
	protectedAuth  []string
	refreshAuth    []string
	refreshPayload []map[string]string
}

func newFakeAPI(t *testing.T, validToken string) *fakeAPI {
	return &fakeAPI{t: t, validToken: validToken, refreshStatus: http.StatusOK}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		if f.onRefresh != nil {
			f.onRefresh()
		}
		b, _ := io.ReadAll(r.Body)
		var payload map[string]string
		_ = json.Unmarshal(b, &payload)

		f.mu.Lock()
		f.refreshAuth = append(f.refreshAuth, r.Header.Get("Authorization"))
		f.refreshPayload = append(f.refreshPayload, payload)
		f.mu.Unlock()

		if f.refreshGate != nil {
			<-f.refreshGate
		}
		if f.refreshHangup {
			hj, ok := w.(http.Hijacker)
			require.True(f.t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(f.t, err)
			_ = conn.Close()
			return
		}

		writeJSON(w, f.refreshStatus, f.refreshBody)
	})
	mux.HandleFunc("/api/event/get-events", func(w http.ResponseWriter, r *http.Request) {
		f.protectedCalls.Add(1)
		auth := r.Header.Get("Authorization")
		if f.onProtected != nil {
			f.onProtected(auth)
		}

		f.mu.Lock()
		f.protectedAuth = append(f.protectedAuth, auth)
		f.mu.Unlock()

		if auth != "Bearer "+f.validToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "jwt expired"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]string{{"_id": "e1", "eventName": "Spring Art"}})
	})
	return mux
}

func (f *fakeAPI) start(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeAPI) authHeaders() (protected, refresh []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.protectedAuth...), append([]string(nil), f.refreshAuth...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, store TokenStore, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithTransport(srv.Client().Transport)}, opts...)
	c, err := New(srv.URL+"/api/", store, opts...)
	require.NoError(t, err)
	return c
}

// errRT always fails, simulating a network failure.
type errRT struct{}

func (errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, errors.New("connection refused") }
