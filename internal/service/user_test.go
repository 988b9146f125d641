package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/internal/store/drivers/sqlite"
)

func newUserFixture(t *testing.T) (*service.UserService, *authFixture) {
	t.Helper()

	f := newAuthFixture(t)
	return &service.UserService{Store: f.store}, f
}

func strptr(s string) *string { return &s }

func TestUserGet_OwnerOnly(t *testing.T) {
	users, f := newUserFixture(t)
	ctx := context.Background()

	alice, _, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)
	bob, _, err := f.auth.Register(ctx, "Bob", "bob@example.com", "strongpassword")
	require.NoError(t, err)

	got, err := users.Get(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Email)

	_, err = users.Get(ctx, bob.ID, alice.ID)
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestUserUpdateProfile(t *testing.T) {
	users, f := newUserFixture(t)
	ctx := context.Background()

	alice, _, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)

	updated, err := users.UpdateProfile(ctx, alice.ID, alice.ID, service.UpdateProfileParams{
		Name: strptr("Alice Cooper"),
		Bio:  strptr("Copywriter"),
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Cooper", updated.Name)
	require.NotNil(t, updated.Bio)
	require.Equal(t, "alice@example.com", updated.Email, "untouched fields stay put")
}

func TestUserUpdateProfile_PasswordChange(t *testing.T) {
	users, f := newUserFixture(t)
	ctx := context.Background()

	alice, _, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)

	_, err = users.UpdateProfile(ctx, alice.ID, alice.ID, service.UpdateProfileParams{
		Password: strptr("evenstrongerpassword"),
	})
	require.NoError(t, err)

	// Old password no longer logs in, new one does.
	_, _, err = f.auth.Login(ctx, "alice@example.com", "strongpassword")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = f.auth.Login(ctx, "alice@example.com", "evenstrongerpassword")
	require.NoError(t, err)
}

func TestUserUpdateProfile_EmailCollision(t *testing.T) {
	users, f := newUserFixture(t)
	ctx := context.Background()

	alice, _, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)
	_, _, err = f.auth.Register(ctx, "Bob", "bob@example.com", "strongpassword")
	require.NoError(t, err)

	_, err = users.UpdateProfile(ctx, alice.ID, alice.ID, service.UpdateProfileParams{
		Email: strptr("bob@example.com"),
	})
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestUserUpdateProfile_RejectsBadInput(t *testing.T) {
	users, f := newUserFixture(t)
	ctx := context.Background()

	alice, _, err := f.auth.Register(ctx, "Alice", "alice@example.com", "strongpassword")
	require.NoError(t, err)

	_, err = users.UpdateProfile(ctx, alice.ID, alice.ID, service.UpdateProfileParams{Name: strptr("  ")})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = users.UpdateProfile(ctx, alice.ID, alice.ID, service.UpdateProfileParams{Password: strptr("short")})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestUserGet_Missing(t *testing.T) {
	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	users := &service.UserService{Store: db}

	_, err = users.Get(context.Background(), "ghost", "ghost")
	require.ErrorIs(t, err, service.ErrNotFound)
}
