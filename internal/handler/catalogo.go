package handler

import (
	"net/http"

	"inventario/internal/dto"
	"inventario/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ListarFamilias godoc
// @Summary Listar familias
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.FamiliaResponse
// @Router /familias [get]
func (h *CatalogoHandler) ListarFamilias(c *gin.Context) {
	resp, err := h.svc.ListarFamilias(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearFamilia godoc
// @Summary Crear familia (admin)
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearFamiliaRequest true "Familia"
// @Success 201 {object} dto.CrearFamiliaResponse
// @Failure 409 {object} apierror.APIError
// @Router /familias [post]
func (h *CatalogoHandler) CrearFamilia(c *gin.Context) {
	var req dto.CrearFamiliaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearFamilia(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CrearFamiliaResponse{Familia: *resp})
}

// ListarProductos godoc
// @Summary Listar productos
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProductoResponse
// @Router /productos [get]
func (h *CatalogoHandler) ListarProductos(c *gin.Context) {
	resp, err := h.svc.ListarProductos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearProducto godoc
// @Summary Crear producto (admin)
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProductoRequest true "Producto"
// @Success 201 {object} dto.CrearProductoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /productos [post]
func (h *CatalogoHandler) CrearProducto(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CrearProductoResponse{Producto: *resp})
}

// ListarPresentaciones godoc
// @Summary Presentaciones activas de un producto
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Param product_id path string true "Producto"
// @Success 200 {object} dto.PresentacionesResponse
// @Router /presentaciones/{product_id} [get]
func (h *CatalogoHandler) ListarPresentaciones(c *gin.Context) {
	resp, err := h.svc.ListarPresentaciones(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PresentacionesResponse{Presentaciones: resp})
}

// CrearPresentacion godoc
// @Summary Crear presentación (admin)
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPresentacionRequest true "Presentación"
// @Success 201 {object} dto.CrearPresentacionResponse
// @Router /presentaciones [post]
func (h *CatalogoHandler) CrearPresentacion(c *gin.Context) {
	var req dto.CrearPresentacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPresentacion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CrearPresentacionResponse{Presentacion: *resp})
}
