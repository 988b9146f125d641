package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs access-token claims into compact serialized tokens.
type Signer interface {
	// Alg reports the JOSE algorithm identifier tokens are signed with.
	Alg() string

	// Sign serializes and signs the claims.
	Sign(claims Claims) (string, error)
}

// HS256Signer signs tokens with HMAC-SHA256 using a process-wide secret.
type HS256Signer struct {
	secret []byte
}

var _ Signer = (*HS256Signer)(nil)

// NewSignerHS256 builds an HMAC-SHA256 signer. The secret must be non-empty;
// there is no usable default.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}

	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string {
	return jwt.SigningMethodHS256.Alg()
}

func (s *HS256Signer) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign token: %w", err)
	}

	return signed, nil
}
