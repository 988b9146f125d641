package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		expectedLen int // base64url length without padding
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.expectedLen)

			raw, err := base64.RawURLEncoding.DecodeString(token)
			require.NoError(t, err)
			require.Len(t, raw, tt.size)
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		_, err := GenerateToken(size)
		require.Error(t, err)
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 1000 {
		token, err := GenerateToken(TokenSize256)
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "generated a duplicate token")
		seen[token] = struct{}{}
	}
}

func TestMustGenerateToken(t *testing.T) {
	require.NotPanics(t, func() {
		token := MustGenerateToken(TokenSize256)
		require.NotEmpty(t, token)
	})
}
