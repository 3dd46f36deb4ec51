package utils

import (
	"crypto/rand"
	"math/big"
)

const uniqueIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// UniqueIDLength is the length of the public lookup code handed out to users.
const UniqueIDLength = 8

// GenerateUniqueID returns a short lowercase alphanumeric code players share
// with captains so they can be invited.
func GenerateUniqueID() (string, error) {
	buf := make([]byte, UniqueIDLength)
	limit := big.NewInt(int64(len(uniqueIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = uniqueIDAlphabet[n.Int64()]
	}
	return string(buf), nil
}
