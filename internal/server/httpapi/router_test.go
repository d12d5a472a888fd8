package httpapi_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	b := newBackend(t, time.Hour)

	code, out := b.call(t, http.MethodPost, "/api/admin/login", "", map[string]string{"email": rootEmail, "password": password})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["success"])
	assert.NotEmpty(t, out["token"])
	assert.NotEmpty(t, out["refreshToken"])
	admin := out["data"].(map[string]any)["administrator"].(map[string]any)
	assert.Equal(t, rootEmail, admin["email"])
	assert.Equal(t, "super_admin", admin["role"])
	assert.NotContains(t, admin, "Salt")
	assert.NotContains(t, admin, "Verifier")

	code, out = b.call(t, http.MethodPost, "/api/admin/login", "", map[string]string{"email": rootEmail, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "invalid email or password", out["message"])
}

func TestRefreshToken(t *testing.T) {
	b := newBackend(t, time.Hour)
	_, refresh := b.login(t, rootEmail)

	code, out := b.call(t, http.MethodPost, "/api/admin/refresh-token", "", map[string]string{"refreshToken": refresh})
	require.Equal(t, http.StatusOK, code)
	access2 := out["accessToken"].(string)
	refresh2 := out["refreshToken"].(string)
	assert.NotEmpty(t, access2)
	assert.NotEqual(t, refresh, refresh2)

	code, out = b.call(t, http.MethodPost, "/api/admin/refresh-token", "", map[string]string{"refreshToken": refresh})
	assert.Equal(t, http.StatusUnauthorized, code, "reused refresh token")
	assert.Equal(t, false, out["success"])

	code, _ = b.call(t, http.MethodPost, "/api/admin/refresh-token", refresh2, nil)
	assert.Equal(t, http.StatusOK, code, "bearer header is accepted")

	code, _ = b.call(t, http.MethodPost, "/api/admin/refresh-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = b.call(t, http.MethodGet, "/api/auth/check-token", access2, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAuthMiddleware(t *testing.T) {
	b := newBackend(t, time.Hour)
	access, refresh := b.login(t, rootEmail)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"refresh token as access token", refresh, http.StatusUnauthorized},
		{"valid", access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := b.call(t, http.MethodGet, "/api/auth/check-token", tt.token, nil)
			assert.Equal(t, tt.want, code)
			if tt.want != http.StatusOK {
				assert.Equal(t, false, out["success"])
			}
		})
	}
}

func TestRoles(t *testing.T) {
	b := newBackend(t, time.Hour)
	eventsToken, _ := b.login(t, eventsEmail)

	code, _ := b.call(t, http.MethodGet, "/api/admin/list", eventsToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = b.call(t, http.MethodGet, "/api/v1/auth/users", eventsToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = b.call(t, http.MethodGet, "/api/post/reports", eventsToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, out := b.call(t, http.MethodPost, "/api/event/create-event", eventsToken,
		map[string]any{"eventName": "Night Shots", "entryFee": 3, "prizePool": 90, "endDate": "2999-01-01"})
	require.Equal(t, http.StatusCreated, code, out)
	assert.Equal(t, "Night Shots", out["event"].(map[string]any)["eventName"])

	code, _ = b.call(t, http.MethodGet, "/api/event/get-events", eventsToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestErrorMapping(t *testing.T) {
	b := newBackend(t, time.Hour)
	root, _ := b.login(t, rootEmail)

	code, out := b.call(t, http.MethodPost, "/api/event/create-event", root, map[string]any{"eventName": "x", "endDate": "soon"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out["message"], "endDate")

	code, _ = b.call(t, http.MethodDelete, "/api/event/delete-event/missing", root, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = b.call(t, http.MethodPost, "/api/admin/add", root, map[string]string{"email": eventsEmail, "password": "x", "role": "user_admin"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = b.call(t, http.MethodGet, "/api/v1/auth/users?page=zero", root, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, out = b.call(t, http.MethodGet, "/api/nowhere", root, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, out["success"])

	code, _ = b.call(t, http.MethodGet, "/api/admin/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestWrongMethodOnKnownRoute(t *testing.T) {
	b := newBackend(t, time.Hour)
	root, _ := b.login(t, rootEmail)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/login"},
		{http.MethodGet, "/api/event/create-event"},
		{http.MethodPost, "/api/event/get-events"},
		{http.MethodDelete, "/api/admin/list"},
		{http.MethodGet, "/api/v1/auth/banning/u1"},
		{http.MethodPut, "/api/post/reports"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			code, out := b.call(t, tc.method, tc.path, root, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, code)
			assert.Equal(t, false, out["success"])
		})
	}

	code, _ := b.call(t, http.MethodGet, "/api/admin/list", root, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = b.call(t, http.MethodGet, "/api/event/nowhere", root, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRequestIDAndMetrics(t *testing.T) {
	b := newBackend(t, time.Hour)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, b.srv.URL+"/api/admin/login", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))

	resp, err = http.Post(b.srv.URL+"/api/admin/login", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36, "a uuid is assigned when none is sent")

	resp, err = http.Get(b.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `eventadmin_devserver_requests_total{code="401",route="/api/admin/login"}`)
}

func TestPasswordResetFlow(t *testing.T) {
	b := newBackend(t, time.Hour)

	code, _ := b.call(t, http.MethodPost, "/api/admin/forgot-password", "", map[string]string{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = b.call(t, http.MethodPost, "/api/admin/forgot-password", "", map[string]string{"email": rootEmail})
	require.Equal(t, http.StatusOK, code)
	otp, err := b.store.GetOTP(rootEmail)
	require.NoError(t, err)

	code, _ = b.call(t, http.MethodPost, "/api/admin/verify-otp", "", map[string]string{"email": rootEmail, "otp": otp.Code})
	require.Equal(t, http.StatusOK, code)
	code, _ = b.call(t, http.MethodPost, "/api/admin/reset-password", "", map[string]string{"email": rootEmail, "password": "fresh"})
	require.Equal(t, http.StatusOK, code)

	code, _ = b.call(t, http.MethodPost, "/api/admin/login", "", map[string]string{"email": rootEmail, "password": "fresh"})
	assert.Equal(t, http.StatusOK, code)
}
