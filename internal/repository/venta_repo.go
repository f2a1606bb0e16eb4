package repository

import (
	"context"
	"time"

	"inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaFilter bounds the sales listing; nil bounds are open.
type VentaFilter struct {
	UserID         uuid.UUID
	Desde          *time.Time
	Hasta          *time.Time
	PresentationID *uuid.UUID
}

type VentaRepository interface {
	// Create inserts the header and its Items in one statement batch.
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	// List preloads Items.Presentacion.Producto, newest first.
	List(ctx context.Context, filter VentaFilter) ([]model.Venta, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return conn(ctx, r.db, tx).Create(v).Error
}

func (r *ventaRepo) List(ctx context.Context, filter VentaFilter) ([]model.Venta, error) {
	q := r.db.WithContext(ctx).
		Preload("Items.Presentacion.Producto").
		Where("user_id = ?", filter.UserID)
	if filter.Desde != nil {
		q = q.Where("created_at >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("created_at <= ?", *filter.Hasta)
	}
	if filter.PresentationID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM sale_items si WHERE si.sale_id = sales.id AND si.presentation_id = ?)",
			*filter.PresentationID)
	}
	var ventas []model.Venta
	err := q.Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}
