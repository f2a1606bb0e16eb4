package model

import (
	"time"

	"github.com/google/uuid"
)

// Familia groups products into a named category.
type Familia struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (Familia) TableName() string { return "families" }
