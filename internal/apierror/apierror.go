// Package apierror provides the error envelope returned to API clients and the
// domain error taxonomy the handlers map to HTTP status codes.
// Storage errors never reach clients; they are logged and surfaced as 500.
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Mensaje string `json:"mensaje"`
	Error   string `json:"error,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Mensaje: msg}
}

// WithCause attaches a client-safe detail to the envelope.
func WithCause(msg, cause string) *APIError {
	return &APIError{Mensaje: msg, Error: cause}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Mensaje string            `json:"mensaje"`
	Campos  map[string]string `json:"campos"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Mensaje: "Error de validación", Campos: fields}
}

// Domain errors. Services wrap these with fmt.Errorf("...: %w", ...) so the
// message carries context while errors.Is still resolves the category.
var (
	ErrValidacion            = errors.New("datos inválidos")
	ErrNoAutenticado         = errors.New("autenticación requerida")
	ErrCredencialesInvalidas = errors.New("Credenciales inválidas")
	ErrSinPermisos           = errors.New("permisos insuficientes")
	ErrNoEncontrado          = errors.New("no encontrado")
	ErrDuplicado             = errors.New("ya existe")
	ErrStockInsuficiente     = errors.New("Stock insuficiente")
	ErrPrecioNoConfigurado   = errors.New("precio no configurado")
	ErrNoDisponible          = errors.New("servicio no disponible")
)

// Status maps an error to its HTTP status. Unknown errors are internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidacion),
		errors.Is(err, ErrStockInsuficiente),
		errors.Is(err, ErrPrecioNoConfigurado):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoAutenticado), errors.Is(err, ErrCredencialesInvalidas):
		return http.StatusUnauthorized
	case errors.Is(err, ErrSinPermisos):
		return http.StatusForbidden
	case errors.Is(err, ErrNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicado):
		return http.StatusConflict
	case errors.Is(err, ErrNoDisponible):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
