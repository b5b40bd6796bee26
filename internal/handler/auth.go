package handler

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/upstream"
)

const sessionCookieName = "__hotelmate_roster_token"

type AuthClaims struct {
	Role  string `json:"role"`
	Hotel string `json:"hotel"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Login verifies credentials against the hotel backend and mints a local
// session cookie. No password ever touches local storage.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	account, err := h.upstream.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		var upstreamErr *upstream.Error
		switch {
		case errors.As(err, &upstreamErr) && upstreamErr.StatusCode < 500:
			h.errorResponse(w, r, "unknown username or wrong password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role:  string(account.Role),
		Hotel: account.Hotel,
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(account.ID, 10),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "logged in", account)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "logged out", nil)
}

var tokenLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// generateOverrideToken makes the short-lived confirmation token handed out
// when a publish would overwrite already-published shifts.
func generateOverrideToken() string {
	token := make([]rune, 24)
	for i := range token {
		token[i] = tokenLetters[rand.Intn(len(tokenLetters))]
	}
	return string(token)
}
