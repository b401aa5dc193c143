package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleCajero   = "cajero"
	RolePanadero = "panadero"
)

// User usuario del ERP tal como lo devuelve la API (sin credenciales).
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"nombre"`
	Role      string    `json:"rol"` // admin, cajero, panadero
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ValidRole indica si el rol es conocido.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCajero, RolePanadero:
		return true
	}
	return false
}
