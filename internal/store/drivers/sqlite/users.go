package sqlite

import (
	"context"
	"database/sql"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, bio, avatar_url, created_at, updated_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, bio, avatar_url, created_at, updated_at
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, bio, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash,
		mapOptionalString(u.Bio), mapOptionalString(u.AvatarURL),
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, bio = ?, avatar_url = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash,
		mapOptionalString(u.Bio), mapOptionalString(u.AvatarURL),
		u.UpdatedAt, u.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u              domain.User
		bio, avatarURL sql.NullString
	)

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &bio, &avatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Bio = mapNullStringPtr(bio)
	u.AvatarURL = mapNullStringPtr(avatarURL)
	return u, nil
}
