package router // package router defines how HTTP routes are registered for the application

import (
	"github.com/labstack/echo/v4"

	"github.com/adewale/walletapp/internal/handler"
	"github.com/adewale/walletapp/internal/middleware"
	"github.com/adewale/walletapp/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication.
// These cover the landing page, account creation, login and the whole
// password-reset flow — everything a visitor without a session touches.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, p *handler.PasswordHandler) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	e.GET("/", a.Index)
	e.GET("/register", a.RegisterForm)
	e.POST("/register", a.Register)
	e.GET("/login", a.LoginForm)
	e.POST("/login", a.Login)
	// Logout only needs the cookie; an already-dead session still
	// redirects home, so no guard here.
	e.GET("/logout", a.Logout)

	e.GET("/forgot-password", p.ForgotForm)
	e.POST("/forgot-password", p.Forgot)
	e.GET("/reset-password", p.ResetForm)
	e.POST("/reset-password", p.Reset)
}

// RegisterProtected registers the pages behind the session guard. The
// guard resolves the signed cookie to a live session and the session to
// an existing account, redirecting to /login otherwise.
func RegisterProtected(e *echo.Echo, a *handler.AuthHandler, pay *handler.PaymentHandler,
	secret string, sessions repository.SessionStore, accounts repository.AccountStore) {

	g := e.Group("")
	g.Use(middleware.RequireSession(secret, sessions, accounts))
	g.GET("/dashboard", a.Dashboard)
	g.GET("/verify-payment", pay.Verify)
}
