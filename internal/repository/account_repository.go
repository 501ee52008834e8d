package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adewale/walletapp/internal/model"
	"github.com/adewale/walletapp/internal/utils"
)

// AccountRepo persists accounts in the `accounts` collection.
type AccountRepo struct{ C *mongo.Collection }

func NewAccountRepo(db *mongo.Database) *AccountRepo {
	return &AccountRepo{C: db.Collection("accounts")}
}

// Create hashes the password and inserts a new account. Uniqueness of
// username, email and phone number is enforced by the collection's
// unique indexes; a duplicate-key error maps to ErrAccountExists.
func (r *AccountRepo) Create(ctx context.Context, username, email, phone, password string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	acc := model.Account{
		Username:     strings.TrimSpace(username),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(phone),
		PasswordHash: hash,
		Balance:      0,
		CreatedAt:    time.Now().UTC(),
	}
	res, err := r.C.InsertOne(ctx, acc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrAccountExists
		}
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var acc model.Account
	err := r.C.FindOne(ctx, bson.M{"email": email}).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// GetByID fetches an account by its hex object id.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var acc model.Account
	err = r.C.FindOne(ctx, bson.M{"_id": oid}).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// SetResetToken stores a reset token pair on the account with the given
// email. Re-issuing while a token is already pending simply overwrites
// the previous pair.
func (r *AccountRepo) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.C.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"reset_token": token, "reset_token_expiry": expiry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByResetToken looks an account up by exact token match. Expiry is
// not checked here: the caller decides against the server clock so an
// expired token can be reported distinctly from a missing one.
func (r *AccountRepo) GetByResetToken(ctx context.Context, token string) (*model.Account, error) {
	var acc model.Account
	err := r.C.FindOne(ctx, bson.M{"reset_token": token}).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// ResetPassword replaces the password hash and clears the reset token
// pair in a single update, consuming the token.
func (r *AccountRepo) ResetPassword(ctx context.Context, id, newHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.C.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set":   bson.M{"password_hash": newHash},
			"$unset": bson.M{"reset_token": "", "reset_token_expiry": ""},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreditBalance atomically increments the balance of the account with
// the given email. The document store's per-document update semantics
// make the increment safe without in-process locking.
func (r *AccountRepo) CreditBalance(ctx context.Context, email string, amount float64) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.C.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$inc": bson.M{"balance": amount}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
