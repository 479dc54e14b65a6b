package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tair/market/pkg/auth"
	"github.com/tair/market/pkg/logger"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"
)

// TokenCookie is the cookie server-rendered pages read the session from
const TokenCookie = "token"

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok && id != 0
}

// WithUserID stores an authenticated user id in ctx
func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// Authenticator resolves the session token of a request
type Authenticator struct {
	tokens *auth.TokenManager
}

func NewAuthenticator(tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// tokenFromRequest reads "Authorization: Bearer <token>" first, then the session cookie
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func (a *Authenticator) identify(r *http.Request) (*http.Request, bool) {
	token := tokenFromRequest(r)
	if token == "" {
		return r, false
	}

	claims, err := a.tokens.Validate(token)
	if err != nil {
		logger.Debug(r.Context()).Err(err).Msg("Rejected session token")
		return r, false
	}

	ctx := WithUserID(r.Context(), claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	return r.WithContext(ctx), true
}

// Optional identifies the user when a valid token is present and never rejects
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, _ = a.identify(r)
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests without a valid session
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		r, ok := a.identify(r)
		if !ok {
			logger.Warn(r.Context()).Str("path", r.URL.Path).Msg("Unauthenticated request")
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":    false,
		"error": message,
	})
}
