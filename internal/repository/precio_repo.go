package repository

import (
	"context"

	"inventario/internal/dto"
	"inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrecioRepository interface {
	// FindActive returns the newest active price or (nil, nil) when unpriced.
	FindActive(ctx context.Context, tx *gorm.DB, presentationID uuid.UUID) (*model.Precio, error)
	// LockPresentacion serialises price changes for one presentation inside tx.
	LockPresentacion(ctx context.Context, tx *gorm.DB, presentationID uuid.UUID) error
	DeactivateAll(ctx context.Context, tx *gorm.DB, presentationID uuid.UUID) error
	Create(ctx context.Context, tx *gorm.DB, p *model.Precio) error
	ListActive(ctx context.Context) ([]dto.PrecioListItem, error)

	DB() *gorm.DB
}

type precioRepo struct{ db *gorm.DB }

func NewPrecioRepository(db *gorm.DB) PrecioRepository { return &precioRepo{db: db} }

func (r *precioRepo) DB() *gorm.DB { return r.db }

func (r *precioRepo) FindActive(ctx context.Context, tx *gorm.DB, presentationID uuid.UUID) (*model.Precio, error) {
	return firstOrNil[model.Precio](conn(ctx, r.db, tx).
		Where("presentation_id = ? AND is_active = true", presentationID).
		Order("created_at DESC"))
}

func (r *precioRepo) LockPresentacion(ctx context.Context, tx *gorm.DB, presentationID uuid.UUID) error {
	var p model.Presentacion
	return conn(ctx, r.db, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", presentationID).
		First(&p).Error
}

func (r *precioRepo) DeactivateAll(ctx context.Context, tx *gorm.DB, presentationID uuid.UUID) error {
	return conn(ctx, r.db, tx).Model(&model.Precio{}).
		Where("presentation_id = ? AND is_active = true", presentationID).
		Update("is_active", false).Error
}

func (r *precioRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Precio) error {
	return conn(ctx, r.db, tx).Create(p).Error
}

func (r *precioRepo) ListActive(ctx context.Context) ([]dto.PrecioListItem, error) {
	var rows []dto.PrecioListItem
	err := r.db.WithContext(ctx).
		Table("product_prices pr").
		Select(`pr.presentation_id, p.name AS producto, pp.presentation_name AS presentacion,
			pr.price, pr.iva_rate`).
		Joins("JOIN product_presentations pp ON pp.id = pr.presentation_id").
		Joins("JOIN products p ON p.id = pp.product_id").
		Where("pr.is_active = true").
		Order("p.name ASC, pp.presentation_name ASC").
		Scan(&rows).Error
	return rows, err
}
