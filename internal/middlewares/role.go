package middlewares

import (
	"net/http"

	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/response"
)

// RoleMiddleware returns a middleware that gates a route to the given
// roles. It must be mounted after AuthMiddleware: a request without an
// authenticated identity is rejected as unauthenticated, never evaluated
// against the allow-list.
func RoleMiddleware(allowedRoles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentityFromContext(r.Context())
			if !ok {
				logger.Log.Errorw("authorization attempted without authenticated identity")
				response.JSON(w, http.StatusUnauthorized, nil, "Not authorized to access this route")
				return
			}

			if _, ok := allowed[identity.Role]; !ok {
				logger.Log.Errorw("authorization failed", "user_id", identity.UserID, "role", identity.Role)
				response.JSON(w, http.StatusForbidden, nil, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
