package repository

import (
	"context"
	"time"

	"github.com/adewale/walletapp/internal/model"
)

// AccountStore is the persistence contract the handlers depend on.
// The production implementation is Mongo-backed; tests substitute an
// in-memory fake.
type AccountStore interface {
	Create(ctx context.Context, username, email, phone, password string, cost int) (string, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	SetResetToken(ctx context.Context, email, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, token string) (*model.Account, error)
	ResetPassword(ctx context.Context, id, newHash string) error
	CreditBalance(ctx context.Context, email string, amount float64) error
}

// PaymentStore records consumed payment references.
type PaymentStore interface {
	ConsumeReference(ctx context.Context, reference, email string, amount float64) error
}

// SessionStore maps opaque session ids to account identities.
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
