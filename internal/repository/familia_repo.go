package repository

import (
	"context"

	"inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FamiliaRepository interface {
	Create(ctx context.Context, f *model.Familia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Familia, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]model.Familia, error)
}

type familiaRepo struct{ db *gorm.DB }

func NewFamiliaRepository(db *gorm.DB) FamiliaRepository { return &familiaRepo{db: db} }

func (r *familiaRepo) Create(ctx context.Context, f *model.Familia) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *familiaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Familia, error) {
	return firstOrNil[model.Familia](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *familiaRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Familia{}).Where("LOWER(name) = LOWER(?)", name).Count(&n).Error
	return n > 0, err
}

func (r *familiaRepo) List(ctx context.Context) ([]model.Familia, error) {
	var familias []model.Familia
	err := r.db.WithContext(ctx).Order("name ASC").Find(&familias).Error
	return familias, err
}
