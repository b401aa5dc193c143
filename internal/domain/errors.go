package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound  = errors.New("recurso no encontrado")
	ErrForbidden = errors.New("acceso denegado")

	// ErrValidation: entrada mal formada o fuera de rango. Se resuelve localmente y nunca llega a la red.
	ErrValidation = errors.New("datos inválidos")
	// ErrConversionNotFound: el par de unidades no existe en la tabla de conversiones.
	ErrConversionNotFound = errors.New("conversión de unidad no encontrada")
	// ErrInsufficientPayment: lo entregado no cubre el total; bloquea el cobro.
	ErrInsufficientPayment = errors.New("pago insuficiente")
	// ErrRequestFailed: la API remota falló después de los reintentos del cliente.
	ErrRequestFailed = errors.New("la solicitud a la API falló")
	// ErrUnauthorized: la API respondió 401; se fuerza el cierre de sesión.
	ErrUnauthorized = errors.New("no autorizado")
)

// FieldError describe un campo inválido. Envuelve ErrValidation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

func (e *FieldError) Unwrap() error { return ErrValidation }

// Invalid construye un FieldError.
func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
