package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Movimiento is an append-only ledger entry. Rows are never updated or deleted.
type Movimiento struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	PresentationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type           string    `gorm:"type:varchar(10);not null"` // entrada | salida
	QuantityBoxes  int       `gorm:"not null;default:0"`
	QuantityUnits  int       `gorm:"not null;default:0"`
	Description    string
	SaleID         *uuid.UUID `gorm:"type:uuid"` // set when the exit comes from a sale
	CreatedAt      time.Time

	Presentacion *Presentacion `gorm:"foreignKey:PresentationID"`
}

func (Movimiento) TableName() string { return "movements" }
