package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns an identifier of the form "<prefix>_<random>",
// where the random suffix is drawn from [0-9a-z] using crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("prefix cannot be empty")
	}
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(alphabet)))
	suffix := make([]byte, length)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random index: %w", err)
		}
		suffix[i] = alphabet[n.Int64()]
	}

	return prefix + "_" + string(suffix), nil
}
