package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// HMACStrategy implements auth token creation/verification using HMAC signatures.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	return &HMACStrategy{secret: []byte(secret), ttl: opts.ttl()}
}

// IssueToken generates a signed token of the form base64("id:role:exp:sig").
func (s *HMACStrategy) IssueToken(identity model.Identity) (string, error) {
	if !identity.Role.Valid() {
		return "", ErrInvalidToken
	}
	expires := time.Now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%d:%s:%d", identity.UserID, identity.Role, expires)
	token := fmt.Sprintf("%s:%s", payload, s.sign(payload))
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates token and returns the encoded identity.
func (s *HMACStrategy) ParseToken(token string) (model.Identity, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return model.Identity{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return model.Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}

	role := model.Role(parts[1])
	if !role.Valid() {
		return model.Identity{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(time.Now()) {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{UserID: userID, Role: role}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
