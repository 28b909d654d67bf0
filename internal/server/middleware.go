package server

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/internal/models"
	"casse-auctions/services/helpers"
	"casse-auctions/utils"
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

// IdentityResolver turns a session token into the caller's identity
type IdentityResolver interface {
	Identify(ctx context.Context, token string) (models.Identity, error)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":    c.Request.Method,
		"path":      c.Request.URL.Path,
		"status":    c.Writer.Status(),
		"latency":   time.Since(start).String(),
		"client_ip": c.ClientIP(),
	})
}

// SessionMiddleware attaches the identity of the session cookie, if any.
// Requests without a valid session continue anonymously.
func SessionMiddleware(resolver IdentityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := resolver.Identify(c.Request.Context(), token)
		switch {
		case err == nil:
			helpers.SetIdentity(c, identity)
		case errors.Is(err, biddingerrors.ErrUnauthorized):
			utils.Debug("SessionMiddleware: stale session cookie", map[string]any{"path": c.Request.URL.Path})
		default:
			utils.Error("SessionMiddleware: session lookup failed", map[string]any{"error": err.Error()})
		}
		c.Next()
	}
}

// RequireIdentity rejects anonymous requests with 401
func RequireIdentity(c *gin.Context) {
	if helpers.CurrentIdentity(c) == nil {
		helpers.RespondError(c, "RequireIdentity", biddingerrors.ErrUnauthorized, map[string]any{"path": c.Request.URL.Path})
		c.Abort()
		return
	}
	c.Next()
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403
func RequireAdmin(c *gin.Context) {
	identity := helpers.CurrentIdentity(c)
	if identity == nil {
		helpers.RespondError(c, "RequireAdmin", biddingerrors.ErrUnauthorized, map[string]any{"path": c.Request.URL.Path})
		c.Abort()
		return
	}
	if !identity.IsAdmin() {
		helpers.RespondError(c, "RequireAdmin", biddingerrors.ErrForbidden, map[string]any{
			"path":    c.Request.URL.Path,
			"user_id": identity.ID,
		})
		c.Abort()
		return
	}
	c.Next()
}
