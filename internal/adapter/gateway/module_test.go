package gateway

import (
	"io"
	"log/slog"
	"testing"

	"github.com/Lonewolf123457499/CarWashApp/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{GatewayURL: "http://example.com", GatewayKeyID: "id", GatewayKeySecret: "secret"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}

	if _, err := newClient(clientParams{Config: &config.Config{GatewayURL: "relative"}, Logger: logger}); err == nil {
		t.Fatal("expected error for invalid config")
	}
}
