package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string  // argon2 encoded
	Bio          *string // nullable profile fields
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
