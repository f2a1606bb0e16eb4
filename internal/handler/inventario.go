package handler

import (
	"net/http"

	"inventario/internal/dto"
	"inventario/internal/middleware"
	"inventario/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Listar godoc
// @Summary Inventario del usuario
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InventarioItem
// @Router /inventario [get]
func (h *InventarioHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarInventario(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Registrar inventario inicial
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearInventarioRequest true "Inventario"
// @Success 201 {object} dto.CrearInventarioResponse
// @Failure 409 {object} apierror.APIError
// @Router /inventario [post]
func (h *InventarioHandler) Crear(c *gin.Context) {
	var req dto.CrearInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearInventario(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CrearInventarioResponse{Inventario: *resp})
}

// Stock godoc
// @Summary Stock de una presentación
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Param presentation_id path string true "Presentación"
// @Success 200 {object} dto.StockResponse
// @Router /inventario/{presentation_id} [get]
func (h *InventarioHandler) Stock(c *gin.Context) {
	resp, err := h.svc.ObtenerStock(c.Request.Context(), middleware.UserID(c), c.Param("presentation_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimiento godoc
// @Summary Registrar entrada o salida
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoRequest true "Movimiento"
// @Success 201 {object} dto.CrearMovimientoResponse
// @Failure 400 {object} apierror.APIError "Stock insuficiente"
// @Router /movimientos [post]
func (h *InventarioHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CrearMovimientoResponse{Movimiento: *resp})
}

// ListarMovimientos godoc
// @Summary Historial de movimientos
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "entrada | salida"
// @Param producto query string false "Nombre de producto (parcial)"
// @Param presentacion query string false "Nombre de presentación (parcial)"
// @Param desde query string false "YYYY-MM-DD"
// @Param hasta query string false "YYYY-MM-DD"
// @Success 200 {array} dto.MovimientoListItem
// @Router /movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EntradasAgrupadas godoc
// @Summary Registrar varias entradas en una operación
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EntradasAgrupadasRequest true "Entradas"
// @Success 201 {object} dto.EntradasAgrupadasResponse
// @Router /entradas-agrupadas [post]
func (h *InventarioHandler) EntradasAgrupadas(c *gin.Context) {
	var req dto.EntradasAgrupadasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.RegistrarEntradasAgrupadas(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.EntradasAgrupadasResponse{Mensaje: "Entradas registradas", Registrados: n})
}
