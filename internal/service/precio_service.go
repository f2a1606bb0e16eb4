package service

import (
	"context"
	"fmt"

	"inventario/internal/apierror"
	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrecioService resolves and versions presentation prices.
type PrecioService interface {
	// ObtenerActivo returns nil (no error) when the presentation is unpriced.
	ObtenerActivo(ctx context.Context, presentationID string) (*dto.PrecioResponse, error)
	Establecer(ctx context.Context, req dto.PrecioRequest) (*dto.PrecioResponse, error)
	ListarActivos(ctx context.Context) ([]dto.PrecioListItem, error)
}

type precioService struct {
	repo      repository.PrecioRepository
	productos repository.ProductoRepository
	cache     PrecioCache
}

// NewPrecioService accepts a nil cache when Redis is not configured.
func NewPrecioService(repo repository.PrecioRepository, productos repository.ProductoRepository, cache PrecioCache) PrecioService {
	return &precioService{repo: repo, productos: productos, cache: cache}
}

func (s *precioService) ObtenerActivo(ctx context.Context, presentationID string) (*dto.PrecioResponse, error) {
	id, err := parseID("presentation_id", presentationID)
	if err != nil {
		return nil, err
	}
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, id); ok {
			return toPrecioResponse(p), nil
		}
		// The version is taken before the read so a concurrent Establecer wins.
		version, cacheable = s.cache.Version(ctx, id)
	}

	p, err := s.repo.FindActive(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if cacheable {
		s.cache.Set(ctx, p, version)
	}
	return toPrecioResponse(p), nil
}

// Establecer deactivates the current price and inserts the new one in a single
// transaction, holding the presentation row lock so concurrent changes queue.
func (s *precioService) Establecer(ctx context.Context, req dto.PrecioRequest) (*dto.PrecioResponse, error) {
	id, err := parseID("presentation_id", req.PresentationID)
	if err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: el precio debe ser mayor a cero", apierror.ErrValidacion)
	}
	if req.IVARate.IsNegative() || req.IVARate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: iva_rate debe estar entre 0 y 100", apierror.ErrValidacion)
	}
	pres, err := s.productos.FindPresentacion(ctx, id)
	if err != nil {
		return nil, err
	}
	if pres == nil {
		return nil, fmt.Errorf("%w: presentación %s", apierror.ErrNoEncontrado, id)
	}

	p := &model.Precio{
		PresentationID: id,
		Price:          req.Price.Round(2),
		IVARate:        req.IVARate.Round(2),
		IsActive:       true,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.LockPresentacion(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.DeactivateAll(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	log.Info().
		Str("presentation_id", id.String()).
		Str("price", p.Price.String()).
		Str("iva_rate", p.IVARate.String()).
		Msg("precio actualizado")
	return toPrecioResponse(p), nil
}

func (s *precioService) ListarActivos(ctx context.Context) ([]dto.PrecioListItem, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.PrecioListItem{}
	}
	for i := range rows {
		rows[i].PriceWithTax = model.Precio{Price: rows[i].Price, IVARate: rows[i].IVARate}.PriceWithTax()
	}
	return rows, nil
}

func toPrecioResponse(p *model.Precio) *dto.PrecioResponse {
	return &dto.PrecioResponse{
		ID:             p.ID.String(),
		PresentationID: p.PresentationID.String(),
		Price:          p.Price,
		IVARate:        p.IVARate,
		PriceWithTax:   p.PriceWithTax(),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

// activePrice is used by checkout inside its transaction; it bypasses the cache.
func activePrice(ctx context.Context, repo repository.PrecioRepository, tx *gorm.DB, presentationID uuid.UUID) (*model.Precio, error) {
	p, err := repo.FindActive(ctx, tx, presentationID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w para la presentación %s", apierror.ErrPrecioNoConfigurado, presentationID)
	}
	return p, nil
}
