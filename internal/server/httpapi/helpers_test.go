package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/config"
	"github.com/dmitrijs2005/eventadmin/internal/server/httpapi"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
	ss "github.com/dmitrijs2005/eventadmin/internal/server/services"
	"github.com/stretchr/testify/require"
)

const (
	rootEmail   = "root@example.com"
	eventsEmail = "events@example.com"
	password    = "pw"
)

type backend struct {
	srv   *httptest.Server
	store *memory.Store
	svc   httpapi.Services
}

// newBackend starts a seeded backend with a super administrator and an
// event administrator.
func newBackend(t *testing.T, accessTTL time.Duration) *backend {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  accessTTL,
		RefreshTokenValidityDuration: time.Hour,
	}
	logger := logging.NewNopLogger()
	store := memory.NewStore()
	svc := httpapi.Services{
		Admins:       ss.NewAdminService(store, cfg, logger),
		Events:       ss.NewEventService(store, logger),
		Posts:        ss.NewPostService(store, logger),
		Users:        ss.NewUserService(store, logger),
		Transactions: ss.NewTransactionService(store),
	}
	_, err := svc.Admins.Add(t.Context(), models.NewAdmin{Name: "Root", Email: rootEmail, Password: password, Role: models.RoleSuperAdmin})
	require.NoError(t, err)
	_, err = svc.Admins.Add(t.Context(), models.NewAdmin{Name: "Eve", Email: eventsEmail, Password: password, Role: models.RoleEventAdmin})
	require.NoError(t, err)
	ss.SeedSampleData(store, time.Now())

	srv := httptest.NewServer(httpapi.NewHTTPServer("", logger, svc).Handler())
	t.Cleanup(srv.Close)
	return &backend{srv: srv, store: store, svc: svc}
}

// call sends a raw request and decodes the JSON reply into a map.
func (b *backend) call(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, b.srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

// login returns the access and refresh token for email.
func (b *backend) login(t *testing.T, email string) (string, string) {
	t.Helper()
	code, out := b.call(t, http.MethodPost, "/api/admin/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, code, out)
	return out["token"].(string), out["refreshToken"].(string)
}
