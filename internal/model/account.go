package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account represents a registered user as stored in the `accounts`
// collection. The password is only ever stored as a bcrypt hash. The
// reset token fields are set together by the forgot-password flow and
// cleared together when the token is consumed; an account with neither
// field has no pending reset.
//
// Fields:
//
//	ID               – primary key (_id).
//	Username         – unique login name.
//	Email            – unique email address, stored lower-cased.
//	PhoneNumber      – unique phone number.
//	PasswordHash     – bcrypt hashed password.
//	ResetToken       – pending password-reset token (empty when none).
//	ResetTokenExpiry – when the pending token stops being valid.
//	Balance          – wallet balance in major currency units.
//	CreatedAt        – timestamp of registration.
type Account struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Username         string             `bson:"username"`
	Email            string             `bson:"email"`
	PhoneNumber      string             `bson:"phone_number"`
	PasswordHash     string             `bson:"password_hash"`
	ResetToken       string             `bson:"reset_token,omitempty"`
	ResetTokenExpiry time.Time          `bson:"reset_token_expiry,omitempty"`
	Balance          float64            `bson:"balance"`
	CreatedAt        time.Time          `bson:"created_at"`
}

// Payment records a consumed payment reference in the `payments`
// collection. The unique index on Reference guarantees a reference can
// credit a balance at most once, even across concurrent verifications.
type Payment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Reference  string             `bson:"reference"`
	Email      string             `bson:"email"`
	Amount     float64            `bson:"amount"`
	CreditedAt time.Time          `bson:"credited_at"`
}

// Session is the server-held record an opaque session id resolves to.
// Sessions live in Redis under a TTL; the client only ever holds the id.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
