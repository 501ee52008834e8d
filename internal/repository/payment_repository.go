package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adewale/walletapp/internal/model"
)

// PaymentRepo records consumed payment references in the `payments`
// collection. The unique index on reference is the only idempotency
// guard the verification flow has.
type PaymentRepo struct{ C *mongo.Collection }

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{C: db.Collection("payments")}
}

// ConsumeReference inserts the reference before any balance is
// credited. A duplicate-key error means the reference was already
// consumed and maps to ErrDuplicateReference.
func (r *PaymentRepo) ConsumeReference(ctx context.Context, reference, email string, amount float64) error {
	_, err := r.C.InsertOne(ctx, model.Payment{
		Reference:  reference,
		Email:      email,
		Amount:     amount,
		CreditedAt: time.Now().UTC(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}
