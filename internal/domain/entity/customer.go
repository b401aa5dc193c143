package entity

// Customer cliente que encarga pedidos.
type Customer struct {
	Name  string `json:"nombre"`
	Phone string `json:"telefono,omitempty"`
}
