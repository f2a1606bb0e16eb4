package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Precio is one version of a presentation's price. At most one row per
// presentation is active; older versions are kept with IsActive=false.
// IVARate is a whole percentage (19 means 19%).
type Precio struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresentationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IVARate        decimal.Decimal `gorm:"column:iva_rate;type:numeric(5,2);not null;default:0"`
	IsActive       bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time

	Presentacion *Presentacion `gorm:"foreignKey:PresentationID"`
}

func (Precio) TableName() string { return "product_prices" }

// PriceWithTax returns price * (1 + iva/100) rounded to cents.
func (p Precio) PriceWithTax() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(p.IVARate.Div(decimal.NewFromInt(100)))
	return p.Price.Mul(factor).Round(2)
}
