package entity

// Category agrupa productos (pan salado, pan dulce, repostería...).
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}
