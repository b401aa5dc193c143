// Package apiclient consume la API REST remota del ERP (fuente de verdad de todos los datos).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/pkg/logger"
)

const maxBodyBytes = 4 << 20

type tokenKey struct{}

// WithToken adjunta el token Bearer del usuario al contexto de la llamada.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom devuelve el token del contexto ("" si no hay).
func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey{}).(string)
	return s
}

// RequestError la API respondió con error o no respondió después de los reintentos.
type RequestError struct {
	Method  string
	Path    string
	Status  int // 0 si no hubo respuesta
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *RequestError) Unwrap() []error {
	errs := []error{domain.ErrRequestFailed}
	if e.Status == http.StatusNotFound {
		errs = append(errs, domain.ErrNotFound)
	}
	if e.Status == http.StatusForbidden {
		errs = append(errs, domain.ErrForbidden)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Options configuración del cliente.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	Logger     *logger.Logger
	HTTPClient *http.Client // opcional (tests)
}

// Client cliente HTTP de la API remota. Las lecturas (GET, HEAD) reintentan errores de
// red, 429 y 5xx con espera exponencial. Las mutaciones se envían una sola vez: el
// servidor pudo haberlas aplicado antes de fallar.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	maxRetries     int
	backoff        time.Duration
	log            *logger.Logger
	onUnauthorized func(ctx context.Context)
}

// New construye el cliente.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: hc,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		log:        log.Component("apiclient"),
	}
}

// OnUnauthorized registra el hook de cierre de sesión forzado. Se invoca cuando la API
// responde 401 a una llamada que llevaba token.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// do ejecuta la llamada y decodifica la respuesta normalizada en out (puede ser nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: serializar request: %w", err)
		}
		body = b
	}

	token := TokenFrom(ctx)
	retries := 0
	if safeMethod(method) {
		retries = c.maxRetries
	}

	var lastErr *RequestError
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			wait := c.backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return &RequestError{Method: method, Path: path, Message: "solicitud cancelada", Cause: ctx.Err()}
			case <-time.After(wait):
			}
		}

		status, raw, err := c.send(ctx, method, path, body, token)
		if err != nil {
			lastErr = &RequestError{Method: method, Path: path, Message: "sin respuesta del servidor", Cause: err}
			if ctx.Err() != nil {
				lastErr.Cause = ctx.Err()
				return lastErr
			}
			c.log.Warn().Err(err).Str("method", method).Str("path", path).Int("attempt", attempt+1).Msg("error de red")
			continue
		}

		switch {
		case status == http.StatusUnauthorized:
			if token != "" && c.onUnauthorized != nil {
				c.onUnauthorized(ctx)
			}
			msg := ErrorMessage(raw)
			if msg == "" {
				msg = "sesión expirada"
			}
			return fmt.Errorf("%s %s: %s: %w", method, path, msg, domain.ErrUnauthorized)
		case status >= 200 && status < 300:
			if out == nil {
				return nil
			}
			data := Normalize(raw)
			if len(bytes.TrimSpace(data)) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return &RequestError{Method: method, Path: path, Status: status, Message: "respuesta con formato inesperado", Cause: err}
			}
			return nil
		}

		lastErr = &RequestError{Method: method, Path: path, Status: status, Message: ErrorMessage(raw)}
		if lastErr.Message == "" {
			lastErr.Message = http.StatusText(status)
		}
		if !retryable(status) {
			return lastErr
		}
		c.log.Warn().Str("method", method).Str("path", path).Int("status", status).Int("attempt", attempt+1).Msg("respuesta reintentable")
	}
	return lastErr
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, token string) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, err
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api remota")
	return resp.StatusCode, raw, nil
}

func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// IsUnauthorized atajo para errors.Is(err, domain.ErrUnauthorized).
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
