// Package payment wraps the Paystack transaction-verification REST
// endpoint. The provider reports amounts in minor currency units
// (kobo); conversion to major units happens in the handler that
// credits the balance.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Status is the tri-state outcome of a verification attempt. Only
// StatusSuccess carries a usable amount and customer email; the other
// two must never lead to a balance mutation.
type Status int

const (
	StatusSuccess Status = iota // provider confirmed the payment
	StatusFailed                // provider rejected or has no such payment
	StatusError                 // transport or provider failure, outcome unknown
)

// Result describes one verification. Amount is in minor units exactly
// as the provider reports it.
type Result struct {
	Status        Status
	Amount        int64
	CustomerEmail string
}

// Verifier is what the payment handler depends on; tests substitute a
// canned implementation.
type Verifier interface {
	Verify(ctx context.Context, reference string) Result
}

// Client calls the Paystack API with a secret key.
type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

// verifyResponse mirrors the fields of Paystack's verification payload
// that the application reads. Everything else is ignored.
type verifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// Verify queries GET /transaction/verify/{reference} once. There is no
// retry: a transport or decode failure is reported as StatusError and
// the caller surfaces a transient-failure message.
func (c *Client) Verify(ctx context.Context, reference string) Result {
	u := fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{Status: StatusError}
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{Status: StatusError}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Status: StatusError}
	}
	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Status: StatusError}
	}
	if !body.Status || body.Data.Status != "success" {
		return Result{Status: StatusFailed}
	}
	return Result{
		Status:        StatusSuccess,
		Amount:        body.Data.Amount,
		CustomerEmail: body.Data.Customer.Email,
	}
}
