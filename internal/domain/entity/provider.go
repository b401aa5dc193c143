package entity

// Provider proveedor de insumos.
type Provider struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Phone   string `json:"telefono,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"direccion,omitempty"`
}
