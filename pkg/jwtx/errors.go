package jwtx

import "errors"

var (
	// ErrNoSecret indicates the signing secret was empty.
	ErrNoSecret = errors.New("jwtx: signing secret is empty")

	// ErrMalformed indicates the token did not parse as a compact JWS.
	ErrMalformed = errors.New("jwtx: token is malformed")

	// ErrInvalidSig indicates the signature did not verify against the
	// configured secret, or the token was signed with the wrong algorithm.
	ErrInvalidSig = errors.New("jwtx: token signature is invalid")

	// ErrExpired indicates the token's exp claim is in the past.
	ErrExpired = errors.New("jwtx: token has expired")

	// ErrNotYetValid indicates the token's nbf claim is in the future.
	ErrNotYetValid = errors.New("jwtx: token is not yet valid")

	// ErrIssuer indicates the iss claim did not match the expected issuer.
	ErrIssuer = errors.New("jwtx: unexpected token issuer")
)
