package domain

import "time"

type Product struct {
	ID          string
	UserID      string // Owner; all access is owner-scoped
	Name        string
	Description *string
	Features    *string
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
