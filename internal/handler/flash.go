package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "flash"

// setFlash stores a one-time notice to show after the next redirect.
// The cookie is short-lived; takeFlash clears it on first read.
func setFlash(c echo.Context, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// takeFlash returns the pending flash message, if any, and clears it.
func takeFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		msg = ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return msg
}
