package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adewale/walletapp/internal/repository"
	"github.com/adewale/walletapp/internal/utils"
)

// SessionCookieName is the cookie carrying the signed session id.
const SessionCookieName = "session_id"

// RequireSession returns an Echo middleware that gates protected pages.
// A request passes only if it carries a validly signed session cookie,
// the session id still resolves in the store, and the session's account
// still exists. Any failure redirects to /login rather than erroring;
// these are browser flows, not an API.
//
// On success the loaded account is stored in the echo context under
// "account" for handlers to use.
func RequireSession(secret string, sessions repository.SessionStore, accounts repository.AccountStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			sid, err := utils.ParseSessionID(secret, cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			sess, err := sessions.Get(ctx, sid)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			acc, err := accounts.GetByID(ctx, sess.AccountID)
			if err != nil {
				// The session points at a dead account; drop it so the
				// id cannot be replayed.
				_ = sessions.Delete(ctx, sid)
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set("account", acc)
			c.Set("session_id", sid)
			return next(c)
		}
	}
}
