package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventario is the current stock snapshot of one presentation for one user.
// Quantities never go negative; the database enforces it with a CHECK.
type Inventario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventories_user_presentation"`
	PresentationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventories_user_presentation"`
	QuantityBoxes  int       `gorm:"not null;default:0"`
	QuantityUnits  int       `gorm:"not null;default:0"`
	UpdatedAt      time.Time

	Presentacion *Presentacion `gorm:"foreignKey:PresentationID"`
}

func (Inventario) TableName() string { return "inventories" }
