package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"yieldboard/logging"
)

type ctxKey string

const principalKey ctxKey = "principal"

// requestLogger tags each request with an id and logs it once it completes.
func (a *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := logging.RequestID(r)
		r.Header.Set(logging.RequestIDHeader, reqID)
		w.Header().Set(logging.RequestIDHeader, reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		a.log.WithRequest(r).
			WithField("status", ww.Status()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request")
	})
}

// authMiddleware delegates bearer token validation to the auth service and
// injects the caller into the context. Every failure answers 403.
func (a *App) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.cfg.BypassAuth {
			next.ServeHTTP(w, r)
			return
		}

		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		if raw == "" {
			writeError(w, http.StatusForbidden, "missing token", "")
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		p, err := precheckToken(raw, time.Now())
		if err != nil {
			writeError(w, http.StatusForbidden, "invalid token", err.Error())
			return
		}

		claims, err := a.auth.introspect(r.Context(), raw)
		if err != nil {
			reqLog := a.log.WithRequest(r).WithField("subject", p.ID)
			if errors.Is(err, errTokenRejected) {
				reqLog.Info("token rejected by auth service")
			} else {
				reqLog.WithField("error", err.Error()).Warn("token introspection failed")
			}
			writeError(w, http.StatusForbidden, "token introspection failed", "")
			return
		}
		if sub, err := parseSubject(claims.Sub); err == nil {
			p = sub
		}

		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mustPrincipal returns the caller from context, or the zero principal when
// authentication is bypassed.
func mustPrincipal(r *http.Request) principal {
	val := r.Context().Value(principalKey)
	if val == nil {
		return principal{}
	}
	return val.(principal)
}
