package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventario/internal/apierror"
	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InventarioService owns the stock ledger: single movements, grouped entries,
// initial stock and the read side of inventory and movements.
type InventarioService interface {
	RegistrarMovimiento(ctx context.Context, userID uuid.UUID, req dto.MovimientoRequest) (*dto.MovimientoResponse, error)
	// RegistrarEntradasAgrupadas returns how many items were applied.
	RegistrarEntradasAgrupadas(ctx context.Context, userID uuid.UUID, req dto.EntradasAgrupadasRequest) (int, error)
	CrearInventario(ctx context.Context, userID uuid.UUID, req dto.CrearInventarioRequest) (*dto.InventarioResponse, error)
	ListarInventario(ctx context.Context, userID uuid.UUID) ([]dto.InventarioItem, error)
	ObtenerStock(ctx context.Context, userID uuid.UUID, presentationID string) (*dto.StockResponse, error)
	ListarMovimientos(ctx context.Context, userID uuid.UUID, filter dto.MovimientoFilter) ([]dto.MovimientoListItem, error)
}

type inventarioService struct {
	ledger    *stockLedger
	productos repository.ProductoRepository
	loc       *time.Location
}

func NewInventarioService(
	inventarios repository.InventarioRepository,
	movimientos repository.MovimientoRepository,
	productos repository.ProductoRepository,
	locker StockLocker,
	loc *time.Location,
) InventarioService {
	if loc == nil {
		loc = time.UTC
	}
	return &inventarioService{
		ledger:    &stockLedger{inventarios: inventarios, movimientos: movimientos, locker: locker},
		productos: productos,
		loc:       loc,
	}
}

func (s *inventarioService) requirePresentacion(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := parseID("presentation_id", raw)
	if err != nil {
		return uuid.Nil, err
	}
	p, err := s.productos.FindPresentacion(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if p == nil {
		return uuid.Nil, fmt.Errorf("%w: presentación %s", apierror.ErrNoEncontrado, id)
	}
	return id, nil
}

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, userID uuid.UUID, req dto.MovimientoRequest) (*dto.MovimientoResponse, error) {
	if req.QuantityBoxes == nil || req.QuantityUnits == nil {
		return nil, fmt.Errorf("%w: quantity_boxes y quantity_units son obligatorios", apierror.ErrValidacion)
	}
	if req.Type != model.MovimientoEntrada && req.Type != model.MovimientoSalida {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", apierror.ErrValidacion, req.Type)
	}
	presID, err := s.requirePresentacion(ctx, req.PresentationID)
	if err != nil {
		return nil, err
	}
	m := &model.Movimiento{
		UserID:         userID,
		PresentationID: presID,
		Type:           req.Type,
		QuantityBoxes:  *req.QuantityBoxes,
		QuantityUnits:  *req.QuantityUnits,
		Description:    strings.TrimSpace(req.Description),
	}

	unlock, err := s.ledger.lock(ctx, userID, presID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var inv *model.Inventario
	if err := runTx(ctx, s.ledger.inventarios.DB(), func(tx *gorm.DB) error {
		var applyErr error
		inv, applyErr = s.ledger.apply(ctx, tx, m)
		return applyErr
	}); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("presentation_id", presID.String()).
		Str("type", m.Type).
		Int("cajas", m.QuantityBoxes).
		Int("unidades", m.QuantityUnits).
		Int("stock_cajas", inv.QuantityBoxes).
		Int("stock_unidades", inv.QuantityUnits).
		Msg("movimiento registrado")

	resp := toMovimientoResponse(m)
	return &resp, nil
}

func (s *inventarioService) RegistrarEntradasAgrupadas(ctx context.Context, userID uuid.UUID, req dto.EntradasAgrupadasRequest) (int, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "Entrada agrupada"
	}

	// Resolve everything up front so the transaction only does writes.
	var movs []*model.Movimiento
	var presIDs []uuid.UUID
	for _, item := range req.Items {
		if strings.TrimSpace(item.PresentationID) == "" || (item.QuantityBoxes == 0 && item.QuantityUnits == 0) {
			continue
		}
		presID, err := s.requirePresentacion(ctx, item.PresentationID)
		if err != nil {
			return 0, err
		}
		movs = append(movs, &model.Movimiento{
			UserID:         userID,
			PresentationID: presID,
			Type:           model.MovimientoEntrada,
			QuantityBoxes:  item.QuantityBoxes,
			QuantityUnits:  item.QuantityUnits,
			Description:    description,
		})
		presIDs = append(presIDs, presID)
	}
	if len(movs) == 0 {
		return 0, nil
	}

	unlock, err := s.ledger.lock(ctx, userID, presIDs...)
	if err != nil {
		return 0, err
	}
	defer unlock()

	if err := runTx(ctx, s.ledger.inventarios.DB(), func(tx *gorm.DB) error {
		for _, m := range movs {
			if _, err := s.ledger.apply(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return 0, err
	}

	log.Info().Str("user_id", userID.String()).Int("items", len(movs)).Msg("entradas agrupadas registradas")
	return len(movs), nil
}

func (s *inventarioService) CrearInventario(ctx context.Context, userID uuid.UUID, req dto.CrearInventarioRequest) (*dto.InventarioResponse, error) {
	if req.QuantityBoxes == nil || req.QuantityUnits == nil {
		return nil, fmt.Errorf("%w: quantity_boxes y quantity_units son obligatorios", apierror.ErrValidacion)
	}
	presID, err := s.requirePresentacion(ctx, req.PresentationID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.ledger.lock(ctx, userID, presID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var inv *model.Inventario
	err = runTx(ctx, s.ledger.inventarios.DB(), func(tx *gorm.DB) error {
		existing, err := s.ledger.inventarios.Find(ctx, tx, userID, presID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ya existe inventario para la presentación; use /api/movimientos", apierror.ErrDuplicado)
		}
		inv, err = s.ledger.apply(ctx, tx, &model.Movimiento{
			UserID:         userID,
			PresentationID: presID,
			Type:           model.MovimientoEntrada,
			QuantityBoxes:  *req.QuantityBoxes,
			QuantityUnits:  *req.QuantityUnits,
			Description:    "Inventario inicial",
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.InventarioResponse{
		ID:             inv.ID.String(),
		UserID:         inv.UserID.String(),
		PresentationID: inv.PresentationID.String(),
		QuantityBoxes:  inv.QuantityBoxes,
		QuantityUnits:  inv.QuantityUnits,
		UpdatedAt:      inv.UpdatedAt,
	}, nil
}

func (s *inventarioService) ListarInventario(ctx context.Context, userID uuid.UUID) ([]dto.InventarioItem, error) {
	items, err := s.ledger.inventarios.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []dto.InventarioItem{}
	}
	return items, nil
}

func (s *inventarioService) ObtenerStock(ctx context.Context, userID uuid.UUID, presentationID string) (*dto.StockResponse, error) {
	presID, err := parseID("presentation_id", presentationID)
	if err != nil {
		return nil, err
	}
	inv, err := s.ledger.inventarios.Find(ctx, nil, userID, presID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return &dto.StockResponse{}, nil
	}
	return &dto.StockResponse{Cajas: inv.QuantityBoxes, Unidades: inv.QuantityUnits}, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, userID uuid.UUID, filter dto.MovimientoFilter) ([]dto.MovimientoListItem, error) {
	desde, hasta, err := dayRange(filter.Desde, filter.Hasta, s.loc)
	if err != nil {
		return nil, err
	}
	if filter.Tipo != "" && filter.Tipo != model.MovimientoEntrada && filter.Tipo != model.MovimientoSalida {
		return nil, fmt.Errorf("%w: tipo debe ser entrada o salida", apierror.ErrValidacion)
	}
	return s.ledger.movimientos.List(ctx, repository.MovimientoFilter{
		UserID:       userID,
		Tipo:         filter.Tipo,
		Producto:     strings.TrimSpace(filter.Producto),
		Presentacion: strings.TrimSpace(filter.Presentacion),
		Desde:        desde,
		Hasta:        hasta,
	})
}

func toMovimientoResponse(m *model.Movimiento) dto.MovimientoResponse {
	resp := dto.MovimientoResponse{
		ID:             m.ID.String(),
		UserID:         m.UserID.String(),
		PresentationID: m.PresentationID.String(),
		Type:           m.Type,
		QuantityBoxes:  m.QuantityBoxes,
		QuantityUnits:  m.QuantityUnits,
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
	}
	if m.SaleID != nil {
		id := m.SaleID.String()
		resp.SaleID = &id
	}
	return resp
}
