package handler

import (
	"net/http"

	"inventario/internal/dto"
	"inventario/internal/middleware"
	"inventario/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Valida precio y stock de cada ítem, descuenta el inventario y acumula el resumen mensual en una sola transacción.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.RegistrarVentaResponse
// @Failure      400  {object} apierror.APIError "Precio no configurado o stock insuficiente"
// @Router       /ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Registrar(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas del usuario
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha_inicio    query string false "YYYY-MM-DD"
// @Param        fecha_fin       query string false "YYYY-MM-DD"
// @Param        presentation_id query string false "Solo ventas que incluyan la presentación"
// @Success      200  {object} dto.VentaListResponse
// @Router       /ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary      Resumen mensual de ventas y avance de meta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        month query string false "YYYY-MM (por defecto el mes actual)"
// @Success      200  {object} dto.ResumenResponse
// @Router       /ventas/resumen [get]
func (h *VentasHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.ResumenMensual(c.Request.Context(), middleware.UserID(c), c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
