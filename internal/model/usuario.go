package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is an account that can log in. Stock, movements and sales are
// always scoped to the owning user.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (Usuario) TableName() string { return "users" }
