package sqlite

import (
	"context"
	"database/sql"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
)

type documentsRepo struct {
	db *sql.DB
}

func (r *documentsRepo) GetByID(ctx context.Context, id string) (domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, content, created_at
		FROM documents WHERE id = ?`, id)

	var d domain.Document
	err := row.Scan(&d.ID, &d.UserID, &d.Type, &d.Content, &d.CreatedAt)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, content, created_at
		FROM documents WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := []domain.Document{}
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.Type, &d.Content, &d.CreatedAt); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (r *documentsRepo) Create(ctx context.Context, d domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, user_id, type, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Type, d.Content, d.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *documentsRepo) Update(ctx context.Context, d domain.Document) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents SET type = ?, content = ? WHERE id = ?`,
		d.Type, d.Content, d.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *documentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
