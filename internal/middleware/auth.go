package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/forkful/recipebook/internal/apperror"
	"github.com/forkful/recipebook/internal/model"
	"github.com/forkful/recipebook/internal/repository"
	"github.com/forkful/recipebook/internal/session"
)

const ctxUserKey = "current_user"

// SessionAuth resolves the session cookie to a user once per request and
// stores it in the context. It never aborts: routes decide whether an
// identity is required.
func SessionAuth(sessions session.Store, users repository.UserRepository, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(session.CookieName)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID, err := sessions.Get(ctx, sid)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Warn().Err(err).Msg("session lookup failed")
			}
			c.Next()
			return
		}

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			// Stale session for a deleted user; treat as anonymous.
			c.Next()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// RequireAuth aborts with AUTH_REQUIRED when no identity was attached by
// SessionAuth.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			_ = c.Error(apperror.AuthRequired())
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user attached to the request, if any.
func UserFrom(c *gin.Context) (*model.User, bool) {
	val, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok
}
