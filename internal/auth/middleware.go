package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"school-service/internal/httputil"
)

type contextKey string

// AdminIDKey is the context key carrying the authenticated admin's id.
const AdminIDKey contextKey = "admin_id"

// Middleware validates the Authorization bearer token and stores the
// admin id in the request context.
func Middleware(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				logger.Warn("missing bearer token", "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			adminID, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("invalid token", "error", err)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminID extracts the authenticated admin id from the context.
func AdminID(ctx context.Context) (int, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(int)
	return adminID, ok
}
