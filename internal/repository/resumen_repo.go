package repository

import (
	"context"
	"time"

	"inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResumenRepository interface {
	// Accumulate adds the sale totals to the (user, year, month) row atomically.
	Accumulate(ctx context.Context, tx *gorm.DB, delta *model.ResumenVenta) error
	// Find returns (nil, nil) when the period has no sales.
	Find(ctx context.Context, userID uuid.UUID, year, month int) (*model.ResumenVenta, error)
	// FindGoal looks up the goal keyed by the first day of the month.
	FindGoal(ctx context.Context, userID uuid.UUID, monthStart time.Time) (*model.MetaVenta, error)
}

type resumenRepo struct{ db *gorm.DB }

func NewResumenRepository(db *gorm.DB) ResumenRepository { return &resumenRepo{db: db} }

func (r *resumenRepo) Accumulate(ctx context.Context, tx *gorm.DB, delta *model.ResumenVenta) error {
	delta.UpdatedAt = time.Now()
	return conn(ctx, r.db, tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_neto":     gorm.Expr("sales_summary.total_neto + EXCLUDED.total_neto"),
			"total_discount": gorm.Expr("sales_summary.total_discount + EXCLUDED.total_discount"),
			"total_iva":      gorm.Expr("sales_summary.total_iva + EXCLUDED.total_iva"),
			"sales_count":    gorm.Expr("sales_summary.sales_count + EXCLUDED.sales_count"),
			"updated_at":     gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(delta).Error
}

func (r *resumenRepo) Find(ctx context.Context, userID uuid.UUID, year, month int) (*model.ResumenVenta, error) {
	return firstOrNil[model.ResumenVenta](r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month))
}

func (r *resumenRepo) FindGoal(ctx context.Context, userID uuid.UUID, monthStart time.Time) (*model.MetaVenta, error) {
	return firstOrNil[model.MetaVenta](r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, monthStart.Format("2006-01-02")))
}
