package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
	"github.com/mauriciosalazarsh/anuncia/internal/store"
	"github.com/mauriciosalazarsh/anuncia/pkg/cryptox"
)

var (
	ErrNotFound  = errors.New("not_found")
	ErrForbidden = errors.New("forbidden")
)

// UserService reads and mutates user profiles. Profile access is restricted
// to the profile's owner.
type UserService struct {
	Store store.Store
}

// Get returns the user's profile. Only the owner may read it.
func (s *UserService) Get(ctx context.Context, actorID, userID string) (domain.User, error) {
	if actorID != userID {
		return domain.User{}, ErrForbidden
	}

	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// UpdateProfileParams carries the mutable profile fields. Nil means
// "leave unchanged".
type UpdateProfileParams struct {
	Name      *string
	Bio       *string
	AvatarURL *string
	Email     *string
	Password  *string
}

// UpdateProfile applies the given changes to the user's own profile. An
// email change must not collide with another account; a password change is
// re-hashed before storage.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, userID string, params UpdateProfileParams) (domain.User, error) {
	if actorID != userID {
		return domain.User{}, ErrForbidden
	}

	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return domain.User{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		user.Name = name
	}
	if params.Bio != nil {
		user.Bio = params.Bio
	}
	if params.AvatarURL != nil {
		user.AvatarURL = params.AvatarURL
	}
	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		if email == "" || !strings.Contains(email, "@") {
			return domain.User{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
		}
		user.Email = email
	}
	if params.Password != nil {
		if len(*params.Password) < MinPasswordLength {
			return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
		}
		hash, err := cryptox.HashPassword(*params.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()

	if err := s.Store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
