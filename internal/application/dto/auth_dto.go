package dto

import (
	"time"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
)

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido por la API y datos del usuario.
type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// MeResponse identidad del token actual.
type MeResponse struct {
	UserID    string    `json:"id"`
	Name      string    `json:"nombre,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"rol"`
	ExpiresAt time.Time `json:"expiraEn,omitempty"`
}

// UserRequest alta o edición de usuario (solo admin).
type UserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"nombre" validate:"required,max=120"`
	Role     string `json:"rol" validate:"required,oneof=admin cajero panadero"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Active   bool   `json:"activo"`
}
