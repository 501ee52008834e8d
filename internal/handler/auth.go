package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adewale/walletapp/internal/config"
	"github.com/adewale/walletapp/internal/middleware"
	"github.com/adewale/walletapp/internal/model"
	"github.com/adewale/walletapp/internal/queue"
	"github.com/adewale/walletapp/internal/repository"
	queue_publisher "github.com/adewale/walletapp/internal/service"
	"github.com/adewale/walletapp/internal/utils"
)

// sessionTTL is how long a login stays valid. Redis expires the session
// key at the same moment the cookie does.
const sessionTTL = 24 * time.Hour

// AuthHandler bundles dependencies for registration, login, logout and
// the dashboard.
type AuthHandler struct {
	Cfg      config.Config
	Accounts repository.AccountStore
	Sessions repository.SessionStore
}

func NewAuthHandler(cfg config.Config, accounts repository.AccountStore, sessions repository.SessionStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: accounts, Sessions: sessions}
}

type pageData struct {
	Title string
	Token string
}

// Index renders the landing page.
func (h *AuthHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index", pageData{Title: "Welcome"})
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", pageData{Title: "Register"})
}

// Register creates an account and redirects to the login page. Any
// collision on username, email or phone number is a single 400 so the
// form can be resubmitted.
func (h *AuthHandler) Register(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	phone := strings.TrimSpace(c.FormValue("phoneNumber"))
	if username == "" || email == "" || password == "" || phone == "" {
		return c.String(http.StatusBadRequest, "All fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Accounts.Create(ctx, username, email, phone, password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrAccountExists {
			return c.String(http.StatusBadRequest, "User already exists with that email, username, or phone number")
		}
		c.Logger().Errorf("registration failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}

	// Fire-and-forget: a dead broker must not fail registration.
	go func() {
		_ = queue_publisher.PublishAccountRegistered(context.Background(), queue.AccountRegisteredEvent{
			AccountID:    id,
			Username:     username,
			Email:        email,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", pageData{Title: "Log in"})
}

// Login verifies credentials and establishes a session. Unknown email
// and wrong password produce the same message so the endpoint cannot be
// used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.String(http.StatusBadRequest, "Invalid credentials")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := h.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.String(http.StatusBadRequest, "Invalid credentials")
		}
		c.Logger().Errorf("login lookup failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}
	if !utils.VerifyPassword(acc.PasswordHash, password) {
		return c.String(http.StatusBadRequest, "Invalid credentials")
	}

	now := time.Now().UTC()
	sess := &model.Session{
		ID:        uuid.NewString(),
		AccountID: acc.ID.Hex(),
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := h.Sessions.Create(ctx, sess); err != nil {
		c.Logger().Errorf("session create failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    utils.SignSessionID(h.Cfg.SessionSecret, sess.ID),
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout destroys the session and redirects home. The cookie is expired
// and the Redis key deleted, so the old id can never resolve again.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if sid, err := utils.ParseSessionID(h.Cfg.SessionSecret, cookie.Value); err == nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if err := h.Sessions.Delete(ctx, sid); err != nil {
				c.Logger().Errorf("logout failed: %v", err)
				return c.String(http.StatusInternalServerError, "Error logging out")
			}
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/")
}

type dashboardData struct {
	Title    string
	Username string
	Balance  float64
	Flash    string
}

// Dashboard renders the account page. The auth guard has already
// resolved the session to an account.
func (h *AuthHandler) Dashboard(c echo.Context) error {
	acc, ok := c.Get("account").(*model.Account)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Render(http.StatusOK, "dashboard", dashboardData{
		Title:    "Dashboard",
		Username: acc.Username,
		Balance:  acc.Balance,
		Flash:    takeFlash(c),
	})
}
