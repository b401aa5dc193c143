package apiclient

import (
	"github.com/tidwall/gjson"
)

// Normalize unifica las dos formas de respuesta de la API: el recurso desnudo o el
// sobre {"data": ...}. Solo se desenvuelve si el objeto trae la llave "data".
func Normalize(body []byte) []byte {
	if !gjson.ValidBytes(body) {
		return body
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return body
	}
	data := root.Get("data")
	if !data.Exists() {
		return body
	}
	return []byte(data.Raw)
}

// ErrorMessage extrae el mensaje de error del servidor ("message", "error" o
// "error.message"). Devuelve "" si no hay ninguno.
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error.message", "error", "data.message"} {
		r := gjson.GetBytes(body, path)
		if r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}
