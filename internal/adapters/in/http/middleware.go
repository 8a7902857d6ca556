package http

import (
	"net/http"
	"strings"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// Actor identifies the authenticated caller of a request. It is resolved
// once by the auth middleware and passed explicitly to handlers; there is
// no ambient "current user" state.
type Actor struct {
	ID   kernel.UUID
	Role string
}

const actorContextKey = "actor"

// requireAuth verifies the bearer token and stores the resolved Actor in
// the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := auth.ParseToken(s.jwtSecret, token)
		if err != nil {
			return writeError(ctx, http.StatusUnauthorized, "invalid token")
		}

		actorID, err := kernel.UUIDFromString(claims.Subject)
		if err != nil {
			return writeError(ctx, http.StatusUnauthorized, "invalid token")
		}

		ctx.Set(actorContextKey, Actor{ID: actorID, Role: claims.Role})
		return next(ctx)
	}
}

// actorFrom returns the Actor resolved by requireAuth. The second result is
// false when the middleware did not run for this route.
func actorFrom(ctx echo.Context) (Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(Actor)
	return actor, ok
}

// requireRole fetches the actor and rejects the request when its role does
// not match. When the second result is false the error response has already
// been written and the handler must return nil.
func requireRole(ctx echo.Context, role string) (Actor, bool) {
	actor, ok := actorFrom(ctx)
	if !ok {
		_ = writeError(ctx, http.StatusUnauthorized, "missing bearer token")
		return Actor{}, false
	}
	if actor.Role != role {
		_ = writeError(ctx, http.StatusForbidden, "insufficient role")
		return Actor{}, false
	}
	return actor, true
}
