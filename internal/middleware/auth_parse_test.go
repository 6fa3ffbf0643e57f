package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantKey string
		wantErr error
	}{
		{"valid header", "Token abc123", "abc123", nil},
		{"keyword case-insensitive", "token abc123", "abc123", nil},
		{"extra whitespace between parts", "Token   abc123", "abc123", nil},
		{"missing header", "", "", ErrNoCredentials},
		{"different scheme", "Bearer abc123", "", ErrNoCredentials},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", ErrNoCredentials},
		{"keyword only", "Token", "", ErrTokenMissing},
		{"keyword with trailing space", "Token ", "", ErrTokenMissing},
		{"token with spaces", "Token abc 123", "", ErrTokenMultiWord},
		{"invalid encoding", "Token \xff\xfe", "", ErrTokenEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseAuthorizationHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
