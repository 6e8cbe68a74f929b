package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Dias221467/health-o-mania/pkg/apperr"
	jwtutil "github.com/Dias221467/health-o-mania/pkg/jwt"
	"github.com/Dias221467/health-o-mania/pkg/logger"
)

type contextKey string

// UserContextKey holds the *jwtutil.Claims of an authenticated request.
const UserContextKey = contextKey("user")

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header
// and stores the token claims in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, apperr.New(apperr.Unauthenticated, "You must be logged in."))
				return
			}

			claims, err := jwtutil.ValidateToken(strings.TrimSpace(token), secret)
			if err != nil {
				logger.Log.WithError(err).WithField("path", r.URL.Path).Warn("Rejected token")
				writeError(w, apperr.New(apperr.Unauthenticated, "You must be logged in."))
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the caller's claims, or nil outside
// AuthMiddleware.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(UserContextKey).(*jwtutil.Claims)
	return claims
}

// WithUser returns ctx carrying claims, as AuthMiddleware would.
func WithUser(ctx context.Context, claims *jwtutil.Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

func writeError(w http.ResponseWriter, e *apperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.HTTPStatus(e.Code))
	json.NewEncoder(w).Encode(e)
}

// OptionalAuthMiddleware attaches claims when a valid bearer token is
// present and lets the request through either way.
func OptionalAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if ok {
				if claims, err := jwtutil.ValidateToken(strings.TrimSpace(token), secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), UserContextKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
