package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
	"github.com/mauriciosalazarsh/anuncia/internal/session"
	"github.com/mauriciosalazarsh/anuncia/internal/store"
	"github.com/mauriciosalazarsh/anuncia/pkg/cryptox"
	"github.com/mauriciosalazarsh/anuncia/pkg/idx"
	"github.com/mauriciosalazarsh/anuncia/pkg/jwtx"
	"github.com/mauriciosalazarsh/anuncia/pkg/slogx"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidInput       = errors.New("invalid_input")
	ErrSessionInvalid     = errors.New("session_invalid")
	ErrSessionStore       = errors.New("session_store_failure")
)

// Session is a live authenticated session handed back to the transport
// layer, which carries the ID in a cookie. The signed token itself never
// leaves the server.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// AuthService owns the login, registration, validation and logout state
// machines. Sessions are opaque random identifiers mapped to signed tokens
// in the session store; the store TTL is the authoritative expiry.
type AuthService struct {
	Store      store.Store
	Sessions   session.Store
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	SessionTTL time.Duration
}

// Register creates a user and logs them straight in.
//
// A duplicate email is reported as ErrEmailTaken. This is a deliberate,
// narrow exception to credential-error uniformity: the register form needs
// to tell the user to log in instead.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, Session, error) {
	l := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateRegistration(name, email, password); err != nil {
		return domain.User{}, Session{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, Session{}, ErrEmailTaken
		}
		return domain.User{}, Session{}, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.issueSession(ctx, user, now)
	if err != nil {
		return domain.User{}, Session{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, sess, nil
}

// Login verifies the given credentials and creates a fresh session.
//
// Unknown email and wrong password are indistinguishable to the caller:
// both are ErrInvalidCredentials. When the email is unknown a dummy hash
// is still verified so the two paths cost roughly the same.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, Session, error) {
	l := slogx.FromContext(ctx)

	email = normalizeEmail(email)

	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash)
			return domain.User{}, Session{}, ErrInvalidCredentials
		}
		return domain.User{}, Session{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", user.ID))
		return domain.User{}, Session{}, ErrInvalidCredentials
	}

	sess, err := s.issueSession(ctx, user, time.Now().UTC())
	if err != nil {
		return domain.User{}, Session{}, err
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return user, sess, nil
}

// Validate runs the full session validation chain: session lookup, token
// verification, then user lookup. Every failure along the chain collapses
// into ErrSessionInvalid; a session that cannot be proven valid is invalid.
func (s *AuthService) Validate(ctx context.Context, sessionID string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if sessionID == "" {
		return domain.User{}, ErrSessionInvalid
	}

	token, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			l.Warn("session lookup failed", slog.Any("error", err))
		}
		return domain.User{}, ErrSessionInvalid
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		// A stored token that no longer verifies means the secret rotated
		// or the entry outlived the token. Drop the session either way.
		l.Warn("stored token failed verification", slog.Any("error", err))
		_ = s.Sessions.Delete(ctx, sessionID)
		return domain.User{}, ErrSessionInvalid
	}

	user, err := s.Store.Users().GetByID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Warn("user lookup failed during validation", slog.Any("error", err))
		}
		return domain.User{}, ErrSessionInvalid
	}

	return user, nil
}

// Logout terminates the session. Logging out an absent or already-expired
// session succeeds; the postcondition (no live session) already holds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		// The session may still be live; the caller must not pretend
		// otherwise.
		return fmt.Errorf("%w: %v", ErrSessionStore, err)
	}

	return nil
}

// issueSession signs a fresh token for the user and records it under a new
// random session identifier. The identifier is never derived from the user
// or the token.
func (s *AuthService) issueSession(ctx context.Context, user domain.User, now time.Time) (Session, error) {
	id, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	claims := jwtx.NewAccessClaims(user.ID, s.Issuer, s.SessionTTL, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	if err := s.Sessions.Put(ctx, id, token, s.SessionTTL); err != nil {
		// Without a stored entry there is no session; credentials alone
		// must not grant access.
		return Session{}, fmt.Errorf("%w: %v", ErrSessionStore, err)
	}

	return Session{ID: id, ExpiresAt: now.Add(s.SessionTTL)}, nil
}

// dummyHash is verified on unknown-email logins to keep timing close to the
// known-email path. The password behind it is discarded and unknown.
var dummyHash = func() string {
	h, err := cryptox.HashPassword(cryptox.MustGenerateToken(cryptox.TokenSize128))
	if err != nil {
		panic(err)
	}
	return h
}()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
