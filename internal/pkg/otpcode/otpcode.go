package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpan is the number of valid codes: [100000, 999999] inclusive.
// The leading digit is never zero by construction.
const codeSpan = 900000

// Generate returns a uniformly random 6-digit code from crypto/rand.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
