package utils // package utils provides helper functions for token creation and cookie signing

import (
	"crypto/rand" // secure random number generation
	"encoding/hex"
	"time"
)

// ResetTokenTTL is how long an issued password-reset token stays valid.
const ResetTokenTTL = time.Hour

// resetTokenBytes is the entropy of a reset token: 32 bytes gives 256
// bits, encoded as 64 hex characters.
const resetTokenBytes = 32

// ResetToken pairs the raw token handed to the user with its expiry.
// The raw value is stored on the account and compared by exact match;
// it proves control of the account's mailbox, nothing more.
type ResetToken struct {
	Raw string    // raw token string mailed to the user
	Exp time.Time // UTC expiration time
}

// NewResetToken returns a cryptographically random reset token expiring
// ResetTokenTTL from now. Issuing a new token for an account that
// already has one simply replaces the previous pair.
func NewResetToken() (ResetToken, error) {
	raw, err := randomHex(resetTokenBytes)
	if err != nil {
		return ResetToken{}, err
	}
	return ResetToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(ResetTokenTTL),
	}, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. If the random number generator
// fails, an error is returned.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
