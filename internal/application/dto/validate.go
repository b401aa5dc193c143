package dto

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número (gt=0, min=0, ...)
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// los errores usan el nombre JSON del campo
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate aplica las reglas de las etiquetas validate. Devuelve *ValidationError
// (envuelve domain.ErrValidation) con el detalle por campo.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe.Namespace())] = fe.Tag()
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CheckoutRequest.items[0].cantidad" -> "items[0].cantidad".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ValidationError detalle de campos inválidos.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, tag := range e.Fields {
		parts = append(parts, f+" ("+tag+")")
	}
	sort.Strings(parts)
	return "campos inválidos: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }
