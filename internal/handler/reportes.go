package handler

import (
	"fmt"
	"net/http"

	"inventario/internal/dto"
	"inventario/internal/middleware"
	"inventario/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Dashboard godoc
// @Summary      Tablero del usuario
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DashboardResponse
// @Router       /dashboard [get]
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarInventario godoc
// @Summary      Descargar el inventario
// @Description  Solo un administrador puede exportar el inventario de otro usuario (user_id).
// @Tags         reportes
// @Produce      text/csv
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        user_id query string false "Usuario (solo admin)"
// @Param        formato query string false "csv | xlsx | pdf"
// @Success      200  {file} file
// @Router       /exportar/inventario [get]
func (h *ReportesHandler) ExportarInventario(c *gin.Context) {
	var filter dto.ExportFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	exp, err := h.svc.ExportarInventario(c.Request.Context(), middleware.UserID(c), claims.IsAdmin, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exp.Nombre))
	c.Data(http.StatusOK, exp.ContentType, exp.Data)
}

// EnviarInventario godoc
// @Summary      Enviar el inventario por correo
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ExportEmailRequest true "Formato"
// @Success      202  {object} dto.ExportEmailResponse
// @Failure      503  {object} apierror.APIError "Redis no configurado"
// @Router       /exportar/inventario/email [post]
func (h *ReportesHandler) EnviarInventario(c *gin.Context) {
	var req dto.ExportEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnviarInventarioPorEmail(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
