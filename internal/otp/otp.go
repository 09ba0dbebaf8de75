package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"
)

// Verification failure modes. Callers map these to HTTP statuses.
var (
	ErrNotFound  = errors.New("otp: code not found")
	ErrExpired   = errors.New("otp: code expired")
	ErrExhausted = errors.New("otp: too many failed attempts")
	ErrInvalid   = errors.New("otp: invalid code")
)

const (
	// TTL is how long a stored code stays valid.
	TTL = 10 * time.Minute
	// MaxAttempts is the number of failed verifications allowed per code.
	MaxAttempts = 5
)

// Store keeps one pending code per phone number. Save overwrites any prior
// entry and resets the attempt counter. Verify consumes the entry on
// success, expiry, or attempt exhaustion.
type Store interface {
	Save(ctx context.Context, phone, code string) error
	Verify(ctx context.Context, phone, code string) error
}

// GenerateCode returns a 6-digit numeric code drawn uniformly from
// [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
