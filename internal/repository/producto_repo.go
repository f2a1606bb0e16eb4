package repository

import (
	"context"

	"inventario/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository covers products and their presentations.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	ExistsInFamily(ctx context.Context, familyID uuid.UUID, name string) (bool, error)
	// List preloads Familia.
	List(ctx context.Context) ([]model.Producto, error)

	CreatePresentacion(ctx context.Context, p *model.Presentacion) error
	// FindPresentacion preloads Producto.Familia; (nil, nil) when absent.
	FindPresentacion(ctx context.Context, id uuid.UUID) (*model.Presentacion, error)
	PresentacionExists(ctx context.Context, productID uuid.UUID, name string) (bool, error)
	ListPresentacionesActivas(ctx context.Context, productID uuid.UUID) ([]model.Presentacion, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return firstOrNil[model.Producto](r.db.WithContext(ctx).Preload("Familia").Where("id = ?", id))
}

func (r *productoRepo) ExistsInFamily(ctx context.Context, familyID uuid.UUID, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("family_id = ? AND LOWER(name) = LOWER(?)", familyID, name).
		Count(&n).Error
	return n > 0, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Preload("Familia").Order("name ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) CreatePresentacion(ctx context.Context, p *model.Presentacion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindPresentacion(ctx context.Context, id uuid.UUID) (*model.Presentacion, error) {
	return firstOrNil[model.Presentacion](r.db.WithContext(ctx).
		Preload("Producto.Familia").
		Where("id = ?", id))
}

func (r *productoRepo) PresentacionExists(ctx context.Context, productID uuid.UUID, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Presentacion{}).
		Where("product_id = ? AND LOWER(presentation_name) = LOWER(?)", productID, name).
		Count(&n).Error
	return n > 0, err
}

func (r *productoRepo) ListPresentacionesActivas(ctx context.Context, productID uuid.UUID) ([]model.Presentacion, error) {
	var out []model.Presentacion
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = true", productID).
		Order("presentation_name ASC").
		Find(&out).Error
	return out, err
}
