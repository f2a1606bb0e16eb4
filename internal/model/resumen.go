package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResumenVenta accumulates a user's sales per calendar month.
type ResumenVenta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_sales_summary_period"`
	Year          int             `gorm:"not null;uniqueIndex:idx_sales_summary_period"`
	Month         int             `gorm:"not null;uniqueIndex:idx_sales_summary_period"`
	TotalNeto     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDiscount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalIVA      decimal.Decimal `gorm:"column:total_iva;type:numeric(14,2);not null;default:0"`
	SalesCount    int             `gorm:"not null;default:0"`
	UpdatedAt     time.Time
}

func (ResumenVenta) TableName() string { return "sales_summary" }

// MetaVenta is a monthly sales target. Month is the first day of the month.
// Goals are loaded outside the API; this service only reads them.
type MetaVenta struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null"`
	Month      time.Time       `gorm:"type:date;not null"`
	GoalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (MetaVenta) TableName() string { return "sales_goals" }
