package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServer fakes the auth service validate endpoint. statuses are
// answered in order; the last one repeats.
func authServer(t *testing.T, sub string, statuses ...int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&calls, 1))
		var req introspectReq
		_ = json.NewDecoder(r.Body).Decode(&req)

		status := statuses[min(n, len(statuses))-1]
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(tokenClaims{Sub: sub, Jti: "1"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func getMe(app *App, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	valid := mintToken(t, subject("user", "7"), time.Now().Add(time.Hour))

	t.Run("valid token", func(t *testing.T) {
		srv, calls := authServer(t, subject("user", "7"), http.StatusOK)
		app := newTestApp(t, &fakeYields{}, Config{AuthIntrospectURL: srv.URL})

		rec := getMe(app, valid)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"entity_type":"user","id":"7"}`, rec.Body.String())
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("missing token", func(t *testing.T) {
		srv, calls := authServer(t, "", http.StatusOK)
		app := newTestApp(t, &fakeYields{}, Config{AuthIntrospectURL: srv.URL})

		rec := getMe(app, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})

	t.Run("expired token never reaches the auth service", func(t *testing.T) {
		srv, calls := authServer(t, "", http.StatusOK)
		app := newTestApp(t, &fakeYields{}, Config{AuthIntrospectURL: srv.URL})

		rec := getMe(app, mintToken(t, subject("user", "7"), time.Now().Add(-time.Hour)))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})

	t.Run("rejected token is not retried", func(t *testing.T) {
		srv, calls := authServer(t, "", http.StatusUnauthorized)
		app := newTestApp(t, &fakeYields{}, Config{AuthIntrospectURL: srv.URL})

		rec := getMe(app, valid)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("server errors are retried", func(t *testing.T) {
		srv, calls := authServer(t, subject("user", "7"), http.StatusBadGateway, http.StatusOK)
		app := newTestApp(t, &fakeYields{}, Config{AuthIntrospectURL: srv.URL})

		rec := getMe(app, valid)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int32(2), atomic.LoadInt32(calls))
	})

	t.Run("bypass", func(t *testing.T) {
		app := newTestApp(t, &fakeYields{}, Config{BypassAuth: true})

		rec := getMe(app, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"entity_type":"","id":""}`, rec.Body.String())
	})
}
