package repository

import (
	"context"
	"time"

	"inventario/internal/dto"
	"inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventarioRepository interface {
	// LockRow returns the (user, presentation) row locked FOR UPDATE inside tx,
	// inserting a zero row first when none exists. Rolling back tx undoes the insert.
	LockRow(ctx context.Context, tx *gorm.DB, userID, presentationID uuid.UUID) (*model.Inventario, error)
	// Find returns (nil, nil) when the user has never held the presentation.
	Find(ctx context.Context, tx *gorm.DB, userID, presentationID uuid.UUID) (*model.Inventario, error)
	Create(ctx context.Context, tx *gorm.DB, inv *model.Inventario) error
	SaveQuantities(ctx context.Context, tx *gorm.DB, inv *model.Inventario) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.InventarioItem, error)
	LowStock(ctx context.Context, userID uuid.UUID, threshold int) ([]dto.ProductoBajoStock, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) DB() *gorm.DB { return r.db }

func (r *inventarioRepo) LockRow(ctx context.Context, tx *gorm.DB, userID, presentationID uuid.UUID) (*model.Inventario, error) {
	q := conn(ctx, r.db, tx)
	seed := model.Inventario{UserID: userID, PresentationID: presentationID}
	if err := q.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "presentation_id"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var inv model.Inventario
	err := q.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND presentation_id = ?", userID, presentationID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) Find(ctx context.Context, tx *gorm.DB, userID, presentationID uuid.UUID) (*model.Inventario, error) {
	return firstOrNil[model.Inventario](conn(ctx, r.db, tx).
		Where("user_id = ? AND presentation_id = ?", userID, presentationID))
}

func (r *inventarioRepo) Create(ctx context.Context, tx *gorm.DB, inv *model.Inventario) error {
	return conn(ctx, r.db, tx).Create(inv).Error
}

func (r *inventarioRepo) SaveQuantities(ctx context.Context, tx *gorm.DB, inv *model.Inventario) error {
	inv.UpdatedAt = time.Now()
	return conn(ctx, r.db, tx).Model(&model.Inventario{}).
		Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"quantity_boxes": inv.QuantityBoxes,
			"quantity_units": inv.QuantityUnits,
			"updated_at":     inv.UpdatedAt,
		}).Error
}

func (r *inventarioRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.InventarioItem, error) {
	var rows []dto.InventarioItem
	err := r.db.WithContext(ctx).
		Table("inventories i").
		Select(`i.presentation_id, p.name AS producto, pp.presentation_name AS presentacion,
			f.name AS familia, i.quantity_boxes AS cajas, i.quantity_units AS unidades`).
		Joins("JOIN product_presentations pp ON pp.id = i.presentation_id").
		Joins("JOIN products p ON p.id = pp.product_id").
		Joins("JOIN families f ON f.id = p.family_id").
		Where("i.user_id = ?", userID).
		Order("f.name ASC, p.name ASC, pp.presentation_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *inventarioRepo) LowStock(ctx context.Context, userID uuid.UUID, threshold int) ([]dto.ProductoBajoStock, error) {
	var rows []dto.ProductoBajoStock
	err := r.db.WithContext(ctx).
		Table("inventories i").
		Select("p.id AS product_id, p.name AS producto, f.name AS familia, SUM(i.quantity_boxes) AS total_cajas").
		Joins("JOIN product_presentations pp ON pp.id = i.presentation_id").
		Joins("JOIN products p ON p.id = pp.product_id").
		Joins("JOIN families f ON f.id = p.family_id").
		Where("i.user_id = ?", userID).
		Group("p.id, p.name, f.name").
		Having("SUM(i.quantity_boxes) <= ?", threshold).
		Order("total_cajas ASC, p.name ASC").
		Scan(&rows).Error
	return rows, err
}
