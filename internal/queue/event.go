// Package queue defines message payloads exchanged over the message broker.
package queue

// AccountRegisteredEvent is published when a new account is created.
// It contains enough information for downstream consumers to log or
// trigger onboarding flows without querying the primary database.
type AccountRegisteredEvent struct {
	AccountID    string `json:"account_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}

// PaymentCreditedEvent is published when a verified payment has been
// credited to an account's balance. Amount is in major currency units,
// exactly what was added to the balance.
type PaymentCreditedEvent struct {
	AccountID  string  `json:"account_id"`
	Email      string  `json:"email"`
	Reference  string  `json:"reference"`
	Amount     float64 `json:"amount"`
	CreditedAt string  `json:"credited_at"`
}
