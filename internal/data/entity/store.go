package entity

import "github.com/google/uuid"

// Store is owned 1:1 by an artisan user and created automatically
// at artisan registration.
type Store struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
}
