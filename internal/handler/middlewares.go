package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/upstream"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "not logged in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid session token")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, EmailCtxKey, claims.Email)
		ctx = context.WithValue(ctx, HotelCtxKey, claims.Hotel)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// hotel checks that the slug in the URL matches the hotel the session was
// minted for. Staff of one hotel can never touch another hotel's roster.
func (h *Handler) hotel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "hotelSlug")
		if slug == "" {
			h.errorResponse(w, r, "invalid hotel")
			return
		}

		sessionHotel := r.Context().Value(HotelCtxKey).(string)
		if slug != sessionHotel {
			h.errorResponse(w, r, "no access to this hotel")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) rosterPeriod(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		periodIDParam := chi.URLParam(r, "periodID")
		periodID, err := strconv.ParseInt(periodIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid roster period ID")
			return
		}

		hotel := r.Context().Value(HotelCtxKey).(string)
		period, err := h.upstream.GetPeriod(r.Context(), hotel, periodID)
		if err != nil {
			var upstreamErr *upstream.Error
			switch {
			case errors.As(err, &upstreamErr) && upstreamErr.StatusCode == http.StatusNotFound:
				h.errorResponse(w, r, "roster period not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), PeriodCtxKey, period)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) preventEditFinalizedPeriod(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)
		if period.IsFinalized {
			h.errorResponse(w, r, "roster period is finalized and locked against edits")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !slices.Contains(roles, role) {
				h.errorResponse(w, r, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
