package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PrecioRequest struct {
	PresentationID string          `json:"presentation_id" validate:"required,uuid"`
	Price          decimal.Decimal `json:"price"           validate:"gt=0"`
	IVARate        decimal.Decimal `json:"iva_rate"        validate:"min=0,max=100"`
}

type PrecioResponse struct {
	ID             string          `json:"id"`
	PresentationID string          `json:"presentation_id"`
	Price          decimal.Decimal `json:"price"`
	IVARate        decimal.Decimal `json:"iva_rate"`
	PriceWithTax   decimal.Decimal `json:"price_with_tax"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PrecioActualResponse carries a nil Precio when the presentation is unpriced.
type PrecioActualResponse struct {
	Precio *PrecioResponse `json:"precio"`
}

type PrecioListItem struct {
	PresentationID string          `json:"presentation_id"`
	Producto       string          `json:"producto"`
	Presentacion   string          `json:"presentacion"`
	Price          decimal.Decimal `json:"price"`
	IVARate        decimal.Decimal `json:"iva_rate"`
	PriceWithTax   decimal.Decimal `json:"price_with_tax"`
}
