package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VentaItemRequest.Discount is an absolute amount subtracted from the line total.
type VentaItemRequest struct {
	PresentationID string          `json:"presentation_id" validate:"required,uuid"`
	QuantityBoxes  int             `json:"quantity_boxes"  validate:"min=0"`
	QuantityUnits  int             `json:"quantity_units"  validate:"min=0"`
	Discount       decimal.Decimal `json:"discount"        validate:"min=0"`
}

type RegistrarVentaRequest struct {
	Items       []VentaItemRequest `json:"items"       validate:"required,min=1,dive"`
	Description string             `json:"description" validate:"max=500"`
}

// VentaFilter is bound from the query string of GET /api/ventas.
type VentaFilter struct {
	FechaInicio    string `form:"fecha_inicio"    validate:"omitempty,datetime=2006-01-02"`
	FechaFin       string `form:"fecha_fin"       validate:"omitempty,datetime=2006-01-02"`
	PresentationID string `form:"presentation_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	ID             string          `json:"id"`
	SaleID         string          `json:"sale_id"`
	PresentationID string          `json:"presentation_id"`
	Producto       string          `json:"producto,omitempty"`
	Presentacion   string          `json:"presentacion,omitempty"`
	QuantityBoxes  int             `json:"quantity_boxes"`
	QuantityUnits  int             `json:"quantity_units"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount       decimal.Decimal `json:"discount"`
	IVARate        decimal.Decimal `json:"iva_rate"`
	IVAAmount      decimal.Decimal `json:"iva_amount"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Description   string              `json:"description"`
	TotalBoxes    int                 `json:"total_boxes"`
	TotalUnits    int                 `json:"total_units"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	DiscountTotal decimal.Decimal     `json:"discount_total"`
	IVATotal      decimal.Decimal     `json:"iva_total"`
	NetTotal      decimal.Decimal     `json:"net_total"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []VentaItemResponse `json:"items,omitempty"`
}

type RegistrarVentaResponse struct {
	Venta     VentaResponse       `json:"venta"`
	SaleItems []VentaItemResponse `json:"sale_items"`
}

type VentaListResponse struct {
	Ventas []VentaResponse `json:"ventas"`
}

// ─── Resumen mensual ─────────────────────────────────────────────────────────

type ResumenMensual struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalNeto     decimal.Decimal `json:"total_neto"`
	TotalIVA      decimal.Decimal `json:"total_iva"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	SalesCount    int             `json:"sales_count"`
}

// ResumenResponse leaves GoalAmount and PorcentajeAvance nil when no goal is
// defined for the month; null means "no target", not zero progress.
type ResumenResponse struct {
	Resumen          ResumenMensual   `json:"resumen"`
	GoalAmount       *decimal.Decimal `json:"goal_amount"`
	PorcentajeAvance *decimal.Decimal `json:"porcentaje_avance"`
}
