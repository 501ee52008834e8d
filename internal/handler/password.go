package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adewale/walletapp/internal/config"
	"github.com/adewale/walletapp/internal/mailer"
	"github.com/adewale/walletapp/internal/repository"
	"github.com/adewale/walletapp/internal/utils"
)

// PasswordHandler implements the forgotten-password flow: issuing a
// reset token, mailing the link, and redeeming the token for a new
// password.
type PasswordHandler struct {
	Cfg      config.Config
	Accounts repository.AccountStore
	Mail     mailer.Sender
}

func NewPasswordHandler(cfg config.Config, accounts repository.AccountStore, mail mailer.Sender) *PasswordHandler {
	return &PasswordHandler{Cfg: cfg, Accounts: accounts, Mail: mail}
}

// ForgotForm renders the forgot-password page.
func (h *PasswordHandler) ForgotForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot-password", pageData{Title: "Forgot password"})
}

// Forgot issues a reset token for the given email and mails the reset
// link. The token is stored before the mail is attempted; a re-request
// simply overwrites the pending pair.
func (h *PasswordHandler) Forgot(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	if email == "" {
		return c.String(http.StatusBadRequest, "Email is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if _, err := h.Accounts.GetByEmail(ctx, email); err != nil {
		if err == repository.ErrNotFound {
			return c.String(http.StatusNotFound, "User not found")
		}
		c.Logger().Errorf("forgot-password lookup failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}

	token, err := utils.NewResetToken()
	if err != nil {
		c.Logger().Errorf("reset token generation failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}
	if err := h.Accounts.SetResetToken(ctx, email, token.Raw, token.Exp); err != nil {
		c.Logger().Errorf("reset token store failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}

	resetLink := h.Cfg.BaseURL + "/reset-password?token=" + url.QueryEscape(token.Raw)
	if err := h.Mail.SendPasswordReset(ctx, email, resetLink); err != nil {
		c.Logger().Errorf("reset mail failed: %v", err)
		return c.String(http.StatusInternalServerError, "Error sending email")
	}

	return c.String(http.StatusOK, "Password reset link sent to your email")
}

// ResetForm renders the reset form with the token from the mailed link.
func (h *PasswordHandler) ResetForm(c echo.Context) error {
	return c.Render(http.StatusOK, "reset-password", pageData{
		Title: "Reset password",
		Token: c.QueryParam("token"),
	})
}

// Reset redeems a token for a new password. The token must match an
// account exactly and the server clock must still be strictly before
// its expiry; on success the hash is replaced and the token pair is
// cleared in the same update, so a second redemption fails.
func (h *PasswordHandler) Reset(c echo.Context) error {
	password := c.FormValue("password")
	confirm := c.FormValue("confirmPassword")
	token := strings.TrimSpace(c.FormValue("token"))

	if password == "" || password != confirm {
		return c.String(http.StatusBadRequest, "Passwords do not match")
	}
	if token == "" {
		return c.String(http.StatusBadRequest, "Invalid or expired token")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acc, err := h.Accounts.GetByResetToken(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.String(http.StatusBadRequest, "Invalid or expired token")
		}
		c.Logger().Errorf("reset token lookup failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}
	// Strictly-before check against the server clock; an expired token
	// must not touch the password.
	if !time.Now().Before(acc.ResetTokenExpiry) {
		return c.String(http.StatusBadRequest, "Invalid or expired token")
	}

	hash, err := utils.HashPassword(password, h.Cfg.BcryptCost)
	if err != nil {
		c.Logger().Errorf("password hash failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}
	if err := h.Accounts.ResetPassword(ctx, acc.ID.Hex(), hash); err != nil {
		c.Logger().Errorf("password reset failed: %v", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}

	return c.String(http.StatusOK, "Password has been successfully reset.")
}
