package dto

import "time"

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"` // ISO 8601, opcional
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse proyección segura de un usuario (sin password).
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	LastName  string     `json:"lastName"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

// LoginResponse salida con token JWT y proyección segura del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest entrada para actualizar el nombre visible.
type UpdateUserRequest struct {
	Name string `json:"name"`
}

// ChangePasswordRequest entrada para rotar password.
// CurrentPassword es obligatorio salvo que el que rota sea admin.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
