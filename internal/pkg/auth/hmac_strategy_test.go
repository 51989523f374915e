package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

var washer = model.Identity{UserID: 42, Role: model.RoleWasher}

func signedHMACToken(s *HMACStrategy, payload string) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", payload, s.sign(payload))))
}

func TestNewHMACStrategy_DefaultTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestNewHMACStrategy_CustomTTL(t *testing.T) {
	ttl := 2 * time.Hour
	strategy := NewHMACStrategy("secret", Options{TTL: ttl})
	if strategy.ttl != ttl {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestHMACStrategy_IssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(washer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	identity, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if identity != washer {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestHMACStrategy_IssueRejectsUnknownRole(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(model.Identity{UserID: 1, Role: "root"}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseRejects(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	future := time.Now().Add(time.Minute).Unix()
	past := time.Now().Add(-time.Minute).Unix()

	valid, err := strategy.IssueToken(washer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(valid)
	parts := strings.Split(string(raw), ":")
	parts[3] = "tampered"
	tampered := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ":")))

	cases := map[string]string{
		"invalid base64":    "not-base64",
		"invalid parts":     base64.StdEncoding.EncodeToString([]byte("only:two")),
		"invalid signature": tampered,
		"other secret":      signedHMACToken(NewHMACStrategy("other", Options{}), fmt.Sprintf("1:customer:%d", future)),
		"invalid user id":   signedHMACToken(strategy, fmt.Sprintf("abc:customer:%d", future)),
		"unknown role":      signedHMACToken(strategy, fmt.Sprintf("1:root:%d", future)),
		"invalid expiry":    signedHMACToken(strategy, "1:customer:not-a-number"),
		"expired":           signedHMACToken(strategy, fmt.Sprintf("1:customer:%d", past)),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestHMACStrategy_Name(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy.Name() != "hmac" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}
