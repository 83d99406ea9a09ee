package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	RecordIDLength   = 15
	RecordIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RecordID returns a new store record identifier in the collection service's
// 15 character lowercase alphanumeric format.
func RecordID() (string, error) {
	return RandomString(RecordIDLength, RecordIDAlphabet)
}

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}
