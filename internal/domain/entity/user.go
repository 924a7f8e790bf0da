package entity

import "time"

// Roles del sistema.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta del sistema. Email es único a nivel global;
// la unicidad se hace cumplir en escritura por ambos backends.
type User struct {
	ID           string
	Name         string
	LastName     string
	BirthDate    *time.Time // opcional
	Email        string
	PasswordHash string
	Role         string // ver constantes Role*
	CreatedAt    time.Time
}

// IsAdmin indica si la cuenta tiene rol administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
