package middleware

import (
	"context"
	"net/http"
)

// LastActiveUpdater records that a user just made a request.
type LastActiveUpdater interface {
	UpdateLastActive(ctx context.Context, userID string) error
}

func UpdateLastActiveMiddleware(users LastActiveUpdater) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := GetUserFromContext(r.Context()); claims != nil {
				_ = users.UpdateLastActive(r.Context(), claims.UserID)
			}
			next.ServeHTTP(w, r)
		})
	}
}
