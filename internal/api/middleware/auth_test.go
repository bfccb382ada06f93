package middleware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walletgraph/walletgraph/internal/api/middleware"
)

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-1", "key-2"}}

	tests := []struct {
		name       string
		authHeader string
		success    bool
	}{
		{"valid key", "APIKey key-1", true},
		{"second valid key", "apikey key-2", true},
		{"invalid key", "APIKey nope", false},
		{"missing header", "", false},
		{"malformed header", "key-1", false},
		{"unsupported scheme", "Basic key-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := middleware.Authenticate(tt.authHeader, cfg)
			assert.Equal(t, tt.success, result.Success)
			if tt.success {
				assert.Equal(t, "apikey", result.AuthType)
			} else {
				assert.Error(t, result.Error)
			}
		})
	}
}

func TestAuthenticate_NoKeysConfigured(t *testing.T) {
	result := middleware.Authenticate("APIKey anything", middleware.AuthConfig{})
	assert.False(t, result.Success)
}

func TestAuthenticate_BearerWithoutPublicKey(t *testing.T) {
	result := middleware.Authenticate("Bearer some.jwt.token", middleware.AuthConfig{})
	assert.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "public key not configured")
}
