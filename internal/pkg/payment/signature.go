// Package payment verifies payment gateway callbacks.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer computes and checks the gateway callback signature, the hex encoded
// HMAC-SHA256 of "orderRef|paymentRef".
type Signer struct {
	secret []byte
}

// NewSigner builds Signer keyed with the server-held payment secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the expected signature for the pair of gateway references.
func (s *Signer) Sign(orderRef, paymentRef string) string {
	return hex.EncodeToString(s.mac(orderRef, paymentRef))
}

// Verify reports whether signature matches. The comparison runs in constant
// time over the decoded MAC; malformed hex never matches.
func (s *Signer) Verify(orderRef, paymentRef, signature string) bool {
	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(s.mac(orderRef, paymentRef), supplied)
}

func (s *Signer) mac(orderRef, paymentRef string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return mac.Sum(nil)
}

// String keeps the secret out of formatted output.
func (s *Signer) String() string {
	return "payment.Signer{secret:[REDACTED]}"
}
