package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a checkout header. Immutable once written.
type Venta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string
	TotalBoxes    int             `gorm:"not null;default:0"`
	TotalUnits    int             `gorm:"not null;default:0"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountTotal decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IVATotal      decimal.Decimal `gorm:"column:iva_total;type:numeric(14,2);not null"`
	NetTotal      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt     time.Time

	Items []VentaItem `gorm:"foreignKey:SaleID"`
}

func (Venta) TableName() string { return "sales" }

// VentaItem is one cart line, priced at the active price when the sale happened.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	PresentationID uuid.UUID       `gorm:"type:uuid;not null"`
	QuantityBoxes  int             `gorm:"not null;default:0"`
	QuantityUnits  int             `gorm:"not null;default:0"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	IVARate        decimal.Decimal `gorm:"column:iva_rate;type:numeric(5,2);not null"`
	IVAAmount      decimal.Decimal `gorm:"column:iva_amount;type:numeric(12,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Presentacion *Presentacion `gorm:"foreignKey:PresentationID"`
}

func (VentaItem) TableName() string { return "sale_items" }
