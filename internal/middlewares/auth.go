package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/jwt"
	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/services"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// Tokener defines the minimal token interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// UserResolver resolves the live user record for the claimed user ID.
// A token for a deleted user must fail authentication: the claims alone
// are never trusted as proof that the subject still exists.
type UserResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (role string, err error)
}

type identityKeyType struct{}

var identityKey = identityKeyType{}

// GetIdentityFromContext retrieves the authenticated identity, if any.
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// setIdentityToContext is exported for handler tests via WithIdentity.
func setIdentityToContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithIdentity returns a copy of ctx carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return setIdentityToContext(ctx, id)
}

// AuthMiddleware returns a middleware that authenticates the bearer token,
// resolves the live user and attaches the identity to the request context.
func AuthMiddleware(tokener Tokener, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authentication failed", "err", err)
				response.JSON(w, http.StatusUnauthorized, nil, "Not authorized to access this route")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authentication failed", "err", err)
				response.JSON(w, http.StatusUnauthorized, nil, "Not authorized to access this route")
				return
			}

			// The role comes from the store, not the token, so a role
			// change takes effect on the next request. Only a missing
			// account is an authentication failure; a store outage is not.
			role, err := users.Resolve(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, services.ErrUserNotFound) {
					logger.Log.Errorw("authentication failed", "user_id", claims.UserID, "err", err)
					response.JSON(w, http.StatusUnauthorized, nil, "Not authorized to access this route")
					return
				}
				logger.Log.Errorw("failed to resolve user", "user_id", claims.UserID, "err", err)
				response.JSON(w, http.StatusInternalServerError, nil, "Internal server error")
				return
			}

			ctx = setIdentityToContext(ctx, Identity{UserID: claims.UserID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
