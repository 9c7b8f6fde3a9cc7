package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const DefaultOTPDigits = 6

// OTPGenerator produces fixed-length numeric codes. Leading zeros are kept.
type OTPGenerator struct {
	digits int
	ttl    time.Duration
	max    *big.Int
}

func NewOTPGenerator(digits int, ttl time.Duration) *OTPGenerator {
	if digits <= 0 {
		digits = DefaultOTPDigits
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	return &OTPGenerator{
		digits: digits,
		ttl:    ttl,
		max:    max,
	}
}

func (g *OTPGenerator) Digits() int {
	return g.digits
}

// Generate draws uniformly from [0, 10^digits).
func (g *OTPGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, g.max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", g.digits, n.Int64()), nil
}

func (g *OTPGenerator) ExpiryFrom(now time.Time) time.Time {
	return now.Add(g.ttl)
}
