package test

import (
	"fmt"
	"math/rand/v2"
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RandomASCIIString returns an alphanumeric string with a length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	return randomFrom(alphanumeric, minLen+rand.IntN(maxLen-minLen+1))
}

// RandomLicensePlate returns a plate shaped like "KA01AB1234".
func RandomLicensePlate() string {
	return fmt.Sprintf("%s%02d%s%04d",
		randomFrom(upperLetters, 2), rand.IntN(100), randomFrom(upperLetters, 2), rand.IntN(10000))
}

func randomFrom(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(buf)
}
