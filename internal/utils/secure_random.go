package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	return randomHex(rand.Reader, lengthInBytes)
}

func randomHex(r io.Reader, lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// TransactionIDGenerator derives the identifier pair of a finalized transaction from the
// currency, the phone number, the clock and a random suffix.
type TransactionIDGenerator struct {
	Now    func() time.Time
	Random io.Reader
}

// NewTransactionIDGenerator returns a generator on the wall clock and crypto/rand.
func NewTransactionIDGenerator() *TransactionIDGenerator {
	return &TransactionIDGenerator{Now: time.Now, Random: rand.Reader}
}

// Generate returns
//
//	FormatID: <CUR><last 4 phone digits>-<4 base36 chars of the timestamp>, e.g. GHS4567-K3F9
//	UniqueID: <CUR>-<phone digits>-<unix millis>-<8 hex chars>
func (g *TransactionIDGenerator) Generate(currency, phone string) (domain.TransactionIDs, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return domain.TransactionIDs{}, fmt.Errorf("currency is required to generate transaction ids")
	}
	digits := phoneDigits(phone)
	if digits == "" {
		return domain.TransactionIDs{}, fmt.Errorf("phone number has no digits")
	}

	millis := g.Now().UnixMilli()
	suffix, err := randomHex(g.Random, 4)
	if err != nil {
		return domain.TransactionIDs{}, err
	}

	last4 := digits
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	stamp := strings.ToUpper(strconv.FormatInt(millis, 36))
	if len(stamp) > 4 {
		stamp = stamp[len(stamp)-4:]
	}

	return domain.TransactionIDs{
		FormatID: fmt.Sprintf("%s%s-%s", currency, last4, stamp),
		UniqueID: fmt.Sprintf("%s-%s-%d-%s", currency, digits, millis, suffix),
	}, nil
}

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
