package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adewale/walletapp/internal/utils"
)

func TestForgotPassword_IssuesTokenAndSendsMail(t *testing.T) {
	app := newTestApp()
	postForm(app.e, "/register", registerForm("alice", "a@x.com", "Secret1", "+1000"))

	rec := postForm(app.e, "/forgot-password", url.Values{"email": {"a@x.com"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reset link sent")

	acc := app.accounts.get("a@x.com")
	require.NotEmpty(t, acc.ResetToken)
	assert.Len(t, acc.ResetToken, 64, "32 random bytes hex encoded")
	// Expiry is one hour out, give or take test runtime.
	assert.WithinDuration(t, time.Now().Add(time.Hour), acc.ResetTokenExpiry, time.Minute)

	require.Equal(t, 1, app.mail.sentCount())
	assert.Contains(t, app.mail.sent[0], "/reset-password?token="+acc.ResetToken)
}

func TestForgotPassword_UnknownEmail404(t *testing.T) {
	app := newTestApp()
	rec := postForm(app.e, "/forgot-password", url.Values{"email": {"nobody@x.com"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestForgotPassword_MailFailure500(t *testing.T) {
	app := newTestApp()
	postForm(app.e, "/register", registerForm("alice", "a@x.com", "Secret1", "+1000"))
	app.mail.Fail = true

	rec := postForm(app.e, "/forgot-password", url.Values{"email": {"a@x.com"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error sending email")
}

func TestForgotPassword_ReissueOverwritesToken(t *testing.T) {
	app := newTestApp()
	postForm(app.e, "/register", registerForm("alice", "a@x.com", "Secret1", "+1000"))

	postForm(app.e, "/forgot-password", url.Values{"email": {"a@x.com"}})
	first := app.accounts.get("a@x.com").ResetToken
	postForm(app.e, "/forgot-password", url.Values{"email": {"a@x.com"}})
	second := app.accounts.get("a@x.com").ResetToken

	assert.NotEqual(t, first, second)

	// The replaced token no longer redeems.
	rec := postForm(app.e, "/reset-password", url.Values{
		"password": {"NewPass1"}, "confirmPassword": {"NewPass1"}, "token": {first},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPassword_SuccessClearsTokenAndIsSingleUse(t *testing.T) {
	app := newTestApp()
	postForm(app.e, "/register", registerForm("alice", "a@x.com", "Secret1", "+1000"))
	postForm(app.e, "/forgot-password", url.Values{"email": {"a@x.com"}})
	token := app.accounts.get("a@x.com").ResetToken

	rec := postForm(app.e, "/reset-password", url.Values{
		"password": {"NewPass1"}, "confirmPassword": {"NewPass1"}, "token": {token},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "successfully reset")

	acc := app.accounts.get("a@x.com")
	assert.Empty(t, acc.ResetToken, "token consumed")
	assert.True(t, acc.ResetTokenExpiry.IsZero())
	assert.True(t, utils.VerifyPassword(acc.PasswordHash, "NewPass1"))
	assert.False(t, utils.VerifyPassword(acc.PasswordHash, "Secret1"))

	// Old credentials no longer log in, new ones do.
	old := postForm(app.e, "/login", url.Values{"email": {"a@x.com"}, "password": {"Secret1"}})
	assert.Equal(t, http.StatusBadRequest, old.Code)
	fresh := postForm(app.e, "/login", url.Values{"email": {"a@x.com"}, "password": {"NewPass1"}})
	assert.Equal(t, http.StatusFound, fresh.Code)

	// Second redemption with the same token fails: cleared state.
	rec = postForm(app.e, "/reset-password", url.Values{
		"password": {"Another1"}, "confirmPassword": {"Another1"}, "token": {token},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestResetPassword_ExpiredTokenLeavesPasswordUnchanged(t *testing.T) {
	app := newTestApp()
	postForm(app.e, "/register", registerForm("alice", "a@x.com", "Secret1", "+1000"))
	postForm(app.e, "/forgot-password", url.Values{"email": {"a@x.com"}})

	// Advance time past the one-hour window by backdating the expiry.
	acc := app.accounts.get("a@x.com")
	token := acc.ResetToken
	oldHash := acc.PasswordHash
	acc.ResetTokenExpiry = time.Now().Add(-time.Minute)

	rec := postForm(app.e, "/reset-password", url.Values{
		"password": {"NewPass1"}, "confirmPassword": {"NewPass1"}, "token": {token},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")

	assert.Equal(t, oldHash, app.accounts.get("a@x.com").PasswordHash, "password unchanged")
}

func TestResetPassword_MismatchAndMissingToken(t *testing.T) {
	app := newTestApp()

	rec := postForm(app.e, "/reset-password", url.Values{
		"password": {"one"}, "confirmPassword": {"two"}, "token": {"whatever"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match")

	rec = postForm(app.e, "/reset-password", url.Values{
		"password": {"same"}, "confirmPassword": {"same"}, "token": {""},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestResetPasswordForm_EmbedsToken(t *testing.T) {
	app := newTestApp()
	rec := get(app.e, "/reset-password?token=abc123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `value="abc123"`))
}
