package store

import (
	"context"
	"errors"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Products() Products
	Documents() Documents

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail is used during login; email lookup is case-insensitive.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user (id is provided by the app via ULID).
	// A duplicate email yields ErrAlreadyExists.
	Create(ctx context.Context, u domain.User) error

	// UpdateProfile mutates name, bio and avatar_url and bumps updated_at.
	Update(ctx context.Context, u domain.User) error

	// Delete removes the user; products and documents cascade per schema.
	Delete(ctx context.Context, id string) error
}

type Products interface {
	GetByID(ctx context.Context, id string) (domain.Product, error)

	// ListByUser returns the owner's products, newest first.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Product, error)

	Create(ctx context.Context, p domain.Product) error

	Update(ctx context.Context, p domain.Product) error

	Delete(ctx context.Context, id string) error
}

type Documents interface {
	GetByID(ctx context.Context, id string) (domain.Document, error)

	// ListByUser returns the owner's documents, newest first.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Document, error)

	Create(ctx context.Context, d domain.Document) error

	Update(ctx context.Context, d domain.Document) error

	Delete(ctx context.Context, id string) error
}
