package handler

import (
	"net/http"

	"inventario/internal/dto"
	"inventario/internal/service"

	"github.com/gin-gonic/gin"
)

type PreciosHandler struct{ svc service.PrecioService }

func NewPreciosHandler(svc service.PrecioService) *PreciosHandler {
	return &PreciosHandler{svc: svc}
}

// Obtener godoc
// @Summary Precio activo de una presentación
// @Tags precios
// @Produce json
// @Security BearerAuth
// @Param presentation_id path string true "Presentación"
// @Success 200 {object} dto.PrecioActualResponse "precio es null si no hay precio activo"
// @Router /precios/{presentation_id} [get]
func (h *PreciosHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.ObtenerActivo(c.Request.Context(), c.Param("presentation_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PrecioActualResponse{Precio: resp})
}

// Establecer godoc
// @Summary Fijar el precio activo
// @Tags precios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PrecioRequest true "Precio"
// @Success 201 {object} dto.PrecioActualResponse
// @Router /precios [post]
func (h *PreciosHandler) Establecer(c *gin.Context) {
	var req dto.PrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Establecer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PrecioActualResponse{Precio: resp})
}

// Listar godoc
// @Summary Precios activos
// @Tags precios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PrecioListItem
// @Router /precios [get]
func (h *PreciosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarActivos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
