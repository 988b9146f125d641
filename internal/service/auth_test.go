package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/internal/session"
	"github.com/mauriciosalazarsh/anuncia/internal/store"
	"github.com/mauriciosalazarsh/anuncia/internal/store/drivers/sqlite"
	"github.com/mauriciosalazarsh/anuncia/pkg/jwtx"
)

var testSecret = []byte("test-secret-at-least-32-bytes-long!!")

type authFixture struct {
	auth     *service.AuthService
	store    store.Store
	sessions session.Store
	redis    *miniredis.Miniredis
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	mr := miniredis.RunT(t)
	sessions, err := session.NewRedisStore(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, "anuncia")
	require.NoError(t, err)

	return &authFixture{
		auth: &service.AuthService{
			Store:      db,
			Sessions:   sessions,
			Signer:     signer,
			Verifier:   verifier,
			Issuer:     "anuncia",
			SessionTTL: 30 * time.Minute,
		},
		store:    db,
		sessions: sessions,
		redis:    mr,
	}
}

func (f *authFixture) register(t *testing.T, email string) service.Session {
	t.Helper()

	_, sess, err := f.auth.Register(context.Background(), "Alice", email, "strongpassword")
	require.NoError(t, err)
	return sess
}

func TestRegister_AutoLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, sess, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, sess.ID)

	// Registration yields a session that validates as that user.
	got, err := f.auth.Validate(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "alice@example.com", got.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com")

	_, _, err := f.auth.Register(ctx, "Impostor", "Alice@Example.com", "otherpassword")
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestRegister_RejectsBadInput(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name, userName, email, password string
	}{
		{"empty name", "", "alice@example.com", "strongpassword"},
		{"empty email", "Alice", "", "strongpassword"},
		{"email without at", "Alice", "not-an-email", "strongpassword"},
		{"short password", "Alice", "alice@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.auth.Register(ctx, tc.userName, tc.email, tc.password)
			require.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestLogin_ThenValidate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, _, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)

	user, sess, err := f.auth.Login(ctx, "alice@example.com", "strongpassword")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	got, err := f.auth.Validate(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, registered.ID, got.ID)
}

func TestLogin_UniformCredentialErrors(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com")

	// Wrong password and unknown email are the same error.
	_, _, err := f.auth.Login(ctx, "alice@example.com", "wrongpassword")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = f.auth.Login(ctx, "nobody@example.com", "strongpassword")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com")

	_, _, err := f.auth.Login(ctx, "ALICE@Example.COM", "strongpassword")
	require.NoError(t, err)
}

func TestLogin_FreshSessionPerLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com")

	_, first, err := f.auth.Login(ctx, "alice@example.com", "strongpassword")
	require.NoError(t, err)

	_, second, err := f.auth.Login(ctx, "alice@example.com", "strongpassword")
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)

	// Both sessions are live independently.
	_, err = f.auth.Validate(ctx, first.ID)
	require.NoError(t, err)
	_, err = f.auth.Validate(ctx, second.ID)
	require.NoError(t, err)
}

func TestValidate_UnknownSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Validate(ctx, "never-issued")
	require.ErrorIs(t, err, service.ErrSessionInvalid)

	_, err = f.auth.Validate(ctx, "")
	require.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestValidate_ExpiredSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	sess := f.register(t, "alice@example.com")

	// Just before the TTL the session is valid.
	f.redis.FastForward(30*time.Minute - time.Second)
	_, err := f.auth.Validate(ctx, sess.ID)
	require.NoError(t, err)

	// Once the store entry lapses the session reads as never issued.
	f.redis.FastForward(2 * time.Second)
	_, err = f.auth.Validate(ctx, sess.ID)
	require.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestValidate_StoreUnavailableFailsClosed(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	sess := f.register(t, "alice@example.com")

	f.redis.Close()

	_, err := f.auth.Validate(ctx, sess.ID)
	require.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestValidate_TamperedStoredToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	sess := f.register(t, "alice@example.com")

	// Overwrite the stored token with one signed under a different secret.
	otherSigner, err := jwtx.NewSignerHS256([]byte("some-other-secret-nobody-configured"))
	require.NoError(t, err)
	forged, err := otherSigner.Sign(jwtx.NewAccessClaims("attacker", "anuncia", time.Hour, time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, f.sessions.Put(ctx, sess.ID, forged, time.Hour))

	_, err = f.auth.Validate(ctx, sess.ID)
	require.ErrorIs(t, err, service.ErrSessionInvalid)

	// The unverifiable session was discarded entirely.
	_, err = f.sessions.Get(ctx, sess.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestValidate_DeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, sess, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)

	require.NoError(t, f.store.Users().Delete(ctx, user.ID))

	// The session entry may still exist, but the identity behind it is gone.
	_, err = f.auth.Validate(ctx, sess.ID)
	require.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	sess := f.register(t, "alice@example.com")

	require.NoError(t, f.auth.Logout(ctx, sess.ID))

	_, err := f.auth.Validate(ctx, sess.ID)
	require.ErrorIs(t, err, service.ErrSessionInvalid)

	// Logout is idempotent: absent sessions log out successfully.
	require.NoError(t, f.auth.Logout(ctx, sess.ID))
	require.NoError(t, f.auth.Logout(ctx, "never-issued"))
	require.NoError(t, f.auth.Logout(ctx, ""))
}

func TestLogout_OnlyTerminatesOneSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com")

	_, first, err := f.auth.Login(ctx, "alice@example.com", "strongpassword")
	require.NoError(t, err)
	_, second, err := f.auth.Login(ctx, "alice@example.com", "strongpassword")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, first.ID))

	_, err = f.auth.Validate(ctx, first.ID)
	require.ErrorIs(t, err, service.ErrSessionInvalid)

	_, err = f.auth.Validate(ctx, second.ID)
	require.NoError(t, err)
}

func TestLogout_StoreUnavailable(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	sess := f.register(t, "alice@example.com")

	f.redis.Close()

	// The session may still be live server-side; pretending it ended would
	// be lying to the caller.
	require.ErrorIs(t, f.auth.Logout(ctx, sess.ID), service.ErrSessionStore)
}

func TestLogin_SessionStorePutFailure(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@example.com")
	f.redis.Close()

	_, _, err := f.auth.Login(ctx, "alice@example.com", "strongpassword")
	require.ErrorIs(t, err, service.ErrSessionStore)
	require.NotErrorIs(t, err, service.ErrInvalidCredentials)
}
