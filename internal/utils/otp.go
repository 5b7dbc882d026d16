package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTPCode generates a cryptographically secure 4-digit code in the
// range 1000-9999 inclusive. A predictable generator would make the small
// code space guessable, so this always draws from crypto/rand.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
