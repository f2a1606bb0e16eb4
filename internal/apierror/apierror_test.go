package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: quantity_boxes", ErrValidacion), http.StatusBadRequest},
		{fmt.Errorf("%w para la presentación X", ErrStockInsuficiente), http.StatusBadRequest},
		{fmt.Errorf("%w para la presentación X", ErrPrecioNoConfigurado), http.StatusBadRequest},
		{ErrCredencialesInvalidas, http.StatusUnauthorized},
		{ErrNoAutenticado, http.StatusUnauthorized},
		{ErrSinPermisos, http.StatusForbidden},
		{fmt.Errorf("%w: familia", ErrNoEncontrado), http.StatusNotFound},
		{fmt.Errorf("%w: email", ErrDuplicado), http.StatusConflict},
		{ErrNoDisponible, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestNewValidation(t *testing.T) {
	v := NewValidation(map[string]string{"name": "required"})
	assert.Equal(t, "Error de validación", v.Mensaje)
	assert.Equal(t, "required", v.Campos["name"])
}
