package client

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresh_ExpiredTokenIsRefreshedAndRetried(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshBody = map[string]any{"success": true, "accessToken": "A2"}
	srv := api.start(t)

	store := &memStore{access: "A1", refresh: "R1"}
	c := newTestClient(t, srv, store)

	resp, err := c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var events []map[string]string
	require.NoError(t, resp.Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, "Spring Art", events[0]["eventName"])

	protected, refresh := api.authHeaders()
	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, protected)
	assert.Equal(t, []string{"Bearer R1"}, refresh)
	assert.Equal(t, []map[string]string{{"refreshToken": "R1"}}, api.refreshPayload)

	access, refreshTok := store.snapshot()
	assert.Equal(t, "A2", access)
	assert.Equal(t, "R1", refreshTok)

	// The next request goes out with the refreshed token directly.
	_, err = c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)
	protected, _ = api.authHeaders()
	assert.Equal(t, "Bearer A2", protected[2])
	assert.Equal(t, int32(1), api.refreshCalls.Load())
}

func TestRefresh_SecondUnauthorizedIsReturned(t *testing.T) {
	api := newFakeAPI(t, "never-valid")
	api.refreshBody = map[string]any{"accessToken": "A2"}
	srv := api.start(t)

	store := &memStore{access: "A1", refresh: "R1"}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(2), api.protectedCalls.Load())
	assert.Equal(t, int32(1), api.refreshCalls.Load())

	protected, _ := api.authHeaders()
	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, protected)
}

func TestRefresh_NoRefreshTokenReturnsOriginalError(t *testing.T) {
	api := newFakeAPI(t, "A2")
	srv := api.start(t)

	store := &memStore{access: "A1"}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "jwt expired", se.Message())
	assert.Equal(t, int32(0), api.refreshCalls.Load())
	assert.Equal(t, int32(1), api.protectedCalls.Load())

	access, _ := store.snapshot()
	assert.Equal(t, "A1", access)
	assert.Zero(t, store.clearCalls)
}

func TestRefresh_NoAccessTokenAtAll(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshBody = map[string]any{"accessToken": "A2"}
	srv := api.start(t)

	store := &memStore{refresh: "R1"}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)

	protected, _ := api.authHeaders()
	assert.Equal(t, []string{"", "Bearer A2"}, protected)
}

func TestRefresh_RejectedRefreshClearsAccessTokenOnly(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			api := newFakeAPI(t, "A2")
			api.refreshStatus = status
			api.refreshBody = map[string]any{"success": false, "message": "refresh token expired"}
			srv := api.start(t)

			store := &memStore{access: "A1", refresh: "R1"}
			c := newTestClient(t, srv, store)

			_, err := c.Get(context.Background(), "/event/get-events", nil)
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
			assert.Equal(t, "/event/get-events", se.Path, "caller sees the original error")

			assert.Equal(t, int32(1), api.refreshCalls.Load(), "refresh must not recurse")
			assert.Equal(t, int32(1), api.protectedCalls.Load())

			access, refresh := store.snapshot()
			assert.Empty(t, access)
			assert.Equal(t, "R1", refresh)
			assert.Equal(t, 1, store.clearCalls)
		})
	}
}

func TestRefresh_ServerErrorLeavesStorageUntouched(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshStatus = http.StatusInternalServerError
	api.refreshBody = map[string]any{"message": "boom"}
	srv := api.start(t)

	store := &memStore{access: "A1", refresh: "R1"}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	access, refresh := store.snapshot()
	assert.Equal(t, "A1", access)
	assert.Equal(t, "R1", refresh)
	assert.Zero(t, store.clearCalls)
	assert.Zero(t, store.setCalls)
}

func TestRefresh_TransportFailureLeavesStorageUntouched(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshHangup = true
	srv := api.start(t)

	store := &memStore{access: "A1", refresh: "R1"}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, IsTransport(err), "the original 401 is returned, not the refresh failure")

	access, _ := store.snapshot()
	assert.Equal(t, "A1", access)
	assert.Zero(t, store.clearCalls)
}

func TestRefresh_MalformedReplyClearsAccessToken(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshBody = map[string]any{"success": true}
	srv := api.start(t)

	store := &memStore{access: "A1", refresh: "R1"}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), api.protectedCalls.Load())

	access, refresh := store.snapshot()
	assert.Empty(t, access)
	assert.Equal(t, "R1", refresh)
}

func TestRefresh_RotatedRefreshTokenIsPersisted(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshBody = map[string]any{"accessToken": "A2", "refreshToken": "R2"}
	srv := api.start(t)

	store := &memStore{access: "A1", refresh: "R1"}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)

	access, refresh := store.snapshot()
	assert.Equal(t, "A2", access)
	assert.Equal(t, "R2", refresh)
}

func TestRefresh_TokenStoredMeanwhileIsRetriedWithoutRefresh(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshStatus = http.StatusUnauthorized
	api.refreshBody = map[string]any{"message": "refresh token revoked"}

	store := &memStore{access: "A1", refresh: "R1"}
	// Another request finishes a refresh, rotating both tokens, while this
	// one is still carrying A1.
	api.onProtected = func(auth string) {
		if auth == "Bearer A1" {
			store.mu.Lock()
			store.access, store.refresh = "A2", "R2"
			store.mu.Unlock()
		}
	}
	srv := api.start(t)
	c := newTestClient(t, srv, store)

	resp, err := c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	protected, _ := api.authHeaders()
	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, protected)
	assert.Equal(t, int32(0), api.refreshCalls.Load())

	access, refresh := store.snapshot()
	assert.Equal(t, "A2", access)
	assert.Equal(t, "R2", refresh)
	assert.Zero(t, store.clearCalls)
}

func TestRefresh_RejectedStaleRefreshKeepsNewerAccessToken(t *testing.T) {
	api := newFakeAPI(t, "A3")
	api.refreshStatus = http.StatusUnauthorized
	api.refreshBody = map[string]any{"message": "refresh token rotated"}

	store := &memStore{access: "A1", refresh: "R1"}
	// A concurrent refresh stores A3 while the exchange of the dead R1 is
	// still on the wire.
	api.onRefresh = func() {
		store.mu.Lock()
		store.access, store.refresh = "A3", "R3"
		store.mu.Unlock()
	}
	srv := api.start(t)
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), api.refreshCalls.Load())

	access, refresh := store.snapshot()
	assert.Equal(t, "A3", access)
	assert.Equal(t, "R3", refresh)
	assert.Zero(t, store.clearCalls)

	// The kept token is used by the next request.
	_, err = c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)
}

func TestRefresh_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	const n = 8

	api := newFakeAPI(t, "A2")
	api.refreshBody = map[string]any{"accessToken": "A2"}
	api.refreshGate = make(chan struct{})
	srv := api.start(t)

	store := &memStore{access: "A1", refresh: "R1"}
	c := newTestClient(t, srv, store)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), "/event/get-events", nil)
		}()
	}

	require.Eventually(t, func() bool {
		return api.protectedCalls.Load() == n && api.refreshCalls.Load() == 1
	}, 5*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(api.refreshGate)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), api.refreshCalls.Load())
	assert.Equal(t, int32(2*n), api.protectedCalls.Load())
}

func TestRefresh_FallsBackToInMemoryTokenWhenStoreFails(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshBody = map[string]any{"accessToken": "A2"}
	srv := api.start(t)

	store := &memStore{refresh: "R1", accessErr: assert.AnError}
	c := newTestClient(t, srv, store)

	_, err := c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)

	protected, _ := api.authHeaders()
	assert.Equal(t, []string{"", "Bearer A2", "Bearer A2"}, protected)
	assert.Equal(t, int32(1), api.refreshCalls.Load())
}

func TestRefresh_Metrics(t *testing.T) {
	api := newFakeAPI(t, "A2")
	api.refreshBody = map[string]any{"accessToken": "A2"}
	srv := api.start(t)

	okBefore := testutil.ToFloat64(tokenRefreshTotal.WithLabelValues(refreshOK))
	retriesBefore := testutil.ToFloat64(retriesTotal)

	c := newTestClient(t, srv, &memStore{access: "A1", refresh: "R1"})
	_, err := c.Get(context.Background(), "/event/get-events", nil)
	require.NoError(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(tokenRefreshTotal.WithLabelValues(refreshOK)))
	assert.Equal(t, retriesBefore+1, testutil.ToFloat64(retriesTotal))
}
