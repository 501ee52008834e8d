package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adewale/walletapp/internal/model"
	"github.com/adewale/walletapp/internal/payment"
	"github.com/adewale/walletapp/internal/queue"
	"github.com/adewale/walletapp/internal/repository"
	queue_publisher "github.com/adewale/walletapp/internal/service"
)

// PaymentHandler verifies a payment reference with the provider and
// credits the matching account's balance. This is a user-initiated
// "check my payment" action behind the auth guard; recording consumed
// references in the payment store is what keeps a reference from being
// credited twice.
type PaymentHandler struct {
	Accounts repository.AccountStore
	Payments repository.PaymentStore
	Verifier payment.Verifier
}

func NewPaymentHandler(accounts repository.AccountStore, payments repository.PaymentStore, verifier payment.Verifier) *PaymentHandler {
	return &PaymentHandler{Accounts: accounts, Payments: payments, Verifier: verifier}
}

// Verify queries the provider once for the given reference. Every
// outcome redirects back to the dashboard with a flash message; only a
// confirmed, previously unseen reference whose customer email matches
// an account mutates anything.
func (h *PaymentHandler) Verify(c echo.Context) error {
	reference := strings.TrimSpace(c.QueryParam("reference"))
	if reference == "" {
		setFlash(c, "No payment reference supplied.")
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res := h.Verifier.Verify(ctx, reference)
	switch res.Status {
	case payment.StatusError:
		setFlash(c, "An error occurred during payment verification. Please try again.")
		return c.Redirect(http.StatusFound, "/dashboard")
	case payment.StatusFailed:
		setFlash(c, "Payment verification failed. Please try again.")
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	// Convert from minor units (e.g. kobo) to major units.
	amount := float64(res.Amount) / 100

	acc, err := h.Accounts.GetByEmail(ctx, res.CustomerEmail)
	if err != nil {
		if err == repository.ErrNotFound {
			setFlash(c, "User not found. Please contact support.")
			return c.Redirect(http.StatusFound, "/dashboard")
		}
		c.Logger().Errorf("payment account lookup failed: %v", err)
		setFlash(c, "An error occurred during payment verification. Please try again.")
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	// Consume the reference before crediting so a replay of the same
	// reference can never double-credit.
	if err := h.Payments.ConsumeReference(ctx, reference, acc.Email, amount); err != nil {
		if err == repository.ErrDuplicateReference {
			setFlash(c, "This payment has already been processed.")
			return c.Redirect(http.StatusFound, "/dashboard")
		}
		c.Logger().Errorf("payment reference record failed: %v", err)
		setFlash(c, "An error occurred during payment verification. Please try again.")
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	if err := h.Accounts.CreditBalance(ctx, acc.Email, amount); err != nil {
		c.Logger().Errorf("balance credit failed: %v", err)
		setFlash(c, "An error occurred during payment verification. Please try again.")
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	go func(acc model.Account) {
		_ = queue_publisher.PublishPaymentCredited(context.Background(), queue.PaymentCreditedEvent{
			AccountID:  acc.ID.Hex(),
			Email:      acc.Email,
			Reference:  reference,
			Amount:     amount,
			CreditedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}(*acc)

	setFlash(c, "Your balance has been updated successfully.")
	return c.Redirect(http.StatusFound, "/dashboard")
}
