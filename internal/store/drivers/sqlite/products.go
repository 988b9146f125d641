package sqlite

import (
	"context"
	"database/sql"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
)

type productsRepo struct {
	db *sql.DB
}

func (r *productsRepo) GetByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, features, price, created_at, updated_at
		FROM products WHERE id = ?`, id)

	var (
		p                     domain.Product
		description, features sql.NullString
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &description, &features, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}

	p.Description = mapNullStringPtr(description)
	p.Features = mapNullStringPtr(features)
	return p, nil
}

func (r *productsRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, features, price, created_at, updated_at
		FROM products WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p                     domain.Product
			description, features sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &description, &features, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Description = mapNullStringPtr(description)
		p.Features = mapNullStringPtr(features)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productsRepo) Create(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, user_id, name, description, features, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name,
		mapOptionalString(p.Description), mapOptionalString(p.Features),
		p.Price, p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *productsRepo) Update(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, features = ?, price = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, mapOptionalString(p.Description), mapOptionalString(p.Features),
		p.Price, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
