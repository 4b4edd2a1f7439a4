package entity

type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleArtisan UserRole = "artisan"
	RoleAdmin   UserRole = "admin"
)

// User accounts are soft-deactivated, never hard-deleted.
type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Address      *string  `db:"address"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
