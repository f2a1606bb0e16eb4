package model

import (
	"time"

	"github.com/google/uuid"
)

// Producto belongs to one Familia and is sold through its presentations.
// Name is unique within the family.
type Producto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FamilyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time

	Familia *Familia `gorm:"foreignKey:FamilyID"`
}

func (Producto) TableName() string { return "products" }

// Presentacion is a sellable packaging of a product (e.g. "caja x 12").
// Inventory, prices and movements all key on the presentation.
type Presentacion struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PresentationName string    `gorm:"not null"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time

	Producto *Producto `gorm:"foreignKey:ProductID"`
}

func (Presentacion) TableName() string { return "product_presentations" }
