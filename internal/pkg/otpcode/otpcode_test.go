package otpcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[1-9]\d{5}$`)

func TestGenerate_SixDigitsNoLeadingZero(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.True(t, sixDigits.MatchString(code), "code %q", code)
	}
}
