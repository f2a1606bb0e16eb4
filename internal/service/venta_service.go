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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Registrar(ctx context.Context, userID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.RegistrarVentaResponse, error)
	Listar(ctx context.Context, userID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	// ResumenMensual takes month as YYYY-MM; empty means the current month.
	ResumenMensual(ctx context.Context, userID uuid.UUID, month string) (*dto.ResumenResponse, error)
}

type ventaService struct {
	repo    repository.VentaRepository
	precios repository.PrecioRepository
	resumen repository.ResumenRepository
	ledger  *stockLedger
	loc     *time.Location
	now     func() time.Time
}

func NewVentaService(
	repo repository.VentaRepository,
	precios repository.PrecioRepository,
	inventarios repository.InventarioRepository,
	movimientos repository.MovimientoRepository,
	resumen repository.ResumenRepository,
	locker StockLocker,
	loc *time.Location,
) VentaService {
	if loc == nil {
		loc = time.UTC
	}
	return &ventaService{
		repo:    repo,
		precios: precios,
		resumen: resumen,
		ledger:  &stockLedger{inventarios: inventarios, movimientos: movimientos, locker: locker},
		loc:     loc,
		now:     time.Now,
	}
}

var hundred = decimal.NewFromInt(100)

// calcularLinea prices one cart line:
// subtotal = price*boxes, iva = subtotal*rate/100, total = subtotal + iva - discount.
func calcularLinea(precio *model.Precio, boxes, units int, discount decimal.Decimal) model.VentaItem {
	subtotal := precio.Price.Mul(decimal.NewFromInt(int64(boxes)))
	iva := subtotal.Mul(precio.IVARate).Div(hundred).Round(2)
	return model.VentaItem{
		PresentationID: precio.PresentationID,
		QuantityBoxes:  boxes,
		QuantityUnits:  units,
		UnitPrice:      precio.Price,
		Discount:       discount,
		IVARate:        precio.IVARate,
		IVAAmount:      iva,
		TotalPrice:     subtotal.Add(iva).Sub(discount),
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// One transaction for the whole checkout:
//   1. For every line: active price (400 if missing) and stock check (400 if short)
//   2. Insert sale header + lines
//   3. One salida movement per line through the stock ledger
//   4. Accumulate the monthly summary
// Any failure rolls back every write.

func (s *ventaService) Registrar(ctx context.Context, userID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.RegistrarVentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta debe tener al menos un ítem", apierror.ErrValidacion)
	}
	presIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		id, err := parseID(fmt.Sprintf("items[%d].presentation_id", i), item.PresentationID)
		if err != nil {
			return nil, err
		}
		if item.QuantityBoxes < 0 || item.QuantityUnits < 0 {
			return nil, fmt.Errorf("%w: items[%d] tiene cantidades negativas", apierror.ErrValidacion, i)
		}
		if item.QuantityBoxes == 0 && item.QuantityUnits == 0 {
			return nil, fmt.Errorf("%w: items[%d] no tiene cantidades", apierror.ErrValidacion, i)
		}
		if item.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: items[%d] tiene descuento negativo", apierror.ErrValidacion, i)
		}
		presIDs[i] = id
	}

	unlock, err := s.ledger.lock(ctx, userID, presIDs...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.now().In(s.loc)
	description := strings.TrimSpace(req.Description)
	venta := &model.Venta{
		UserID:        userID,
		Description:   description,
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		IVATotal:      decimal.Zero,
		NetTotal:      decimal.Zero,
		CreatedAt:     now,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		requested := make(map[uuid.UUID]int, len(req.Items))
		for i, item := range req.Items {
			presID := presIDs[i]
			precio, err := activePrice(ctx, s.precios, tx, presID)
			if err != nil {
				return err
			}

			requested[presID] += item.QuantityBoxes
			inv, err := s.ledger.inventarios.Find(ctx, tx, userID, presID)
			if err != nil {
				return err
			}
			if inv == nil || inv.QuantityBoxes < requested[presID] {
				disponible := 0
				if inv != nil {
					disponible = inv.QuantityBoxes
				}
				return fmt.Errorf("%w para la presentación %s: disponible %d cajas, solicitado %d",
					apierror.ErrStockInsuficiente, presID, disponible, requested[presID])
			}

			linea := calcularLinea(precio, item.QuantityBoxes, item.QuantityUnits, item.Discount.Round(2))
			if linea.TotalPrice.IsNegative() {
				return fmt.Errorf("%w: el descuento de items[%d] supera el total de la línea", apierror.ErrValidacion, i)
			}
			venta.Items = append(venta.Items, linea)

			venta.TotalBoxes += item.QuantityBoxes
			venta.TotalUnits += item.QuantityUnits
			venta.Subtotal = venta.Subtotal.Add(linea.UnitPrice.Mul(decimal.NewFromInt(int64(linea.QuantityBoxes))))
			venta.DiscountTotal = venta.DiscountTotal.Add(linea.Discount)
			venta.IVATotal = venta.IVATotal.Add(linea.IVAAmount)
			venta.NetTotal = venta.NetTotal.Add(linea.TotalPrice)
		}

		if err := s.repo.Create(ctx, tx, venta); err != nil {
			return err
		}

		for _, linea := range venta.Items {
			saleID := venta.ID
			if _, err := s.ledger.apply(ctx, tx, &model.Movimiento{
				UserID:         userID,
				PresentationID: linea.PresentationID,
				Type:           model.MovimientoSalida,
				QuantityBoxes:  linea.QuantityBoxes,
				QuantityUnits:  linea.QuantityUnits,
				Description:    ventaDescripcion(description),
				SaleID:         &saleID,
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}

		return s.resumen.Accumulate(ctx, tx, &model.ResumenVenta{
			UserID:        userID,
			Year:          now.Year(),
			Month:         int(now.Month()),
			TotalNeto:     venta.NetTotal,
			TotalDiscount: venta.DiscountTotal,
			TotalIVA:      venta.IVATotal,
			SalesCount:    1,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("user_id", userID.String()).
		Int("items", len(venta.Items)).
		Str("net_total", venta.NetTotal.String()).
		Msg("venta registrada")

	resp := toVentaResponse(venta)
	items := resp.Items
	resp.Items = nil
	return &dto.RegistrarVentaResponse{Venta: resp, SaleItems: items}, nil
}

func ventaDescripcion(description string) string {
	if description == "" {
		return "Venta"
	}
	return "Venta: " + description
}

func (s *ventaService) Listar(ctx context.Context, userID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	desde, hasta, err := dayRange(filter.FechaInicio, filter.FechaFin, s.loc)
	if err != nil {
		return nil, err
	}
	rf := repository.VentaFilter{UserID: userID, Desde: desde, Hasta: hasta}
	if filter.PresentationID != "" {
		id, err := parseID("presentation_id", filter.PresentationID)
		if err != nil {
			return nil, err
		}
		rf.PresentationID = &id
	}

	ventas, err := s.repo.List(ctx, rf)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentaListResponse{Ventas: make([]dto.VentaResponse, 0, len(ventas))}
	for i := range ventas {
		v := &ventas[i]
		if rf.PresentationID != nil {
			kept := v.Items[:0]
			for _, it := range v.Items {
				if it.PresentationID == *rf.PresentationID {
					kept = append(kept, it)
				}
			}
			v.Items = kept
		}
		resp.Ventas = append(resp.Ventas, toVentaResponse(v))
	}
	return resp, nil
}

func (s *ventaService) ResumenMensual(ctx context.Context, userID uuid.UUID, month string) (*dto.ResumenResponse, error) {
	var start time.Time
	if month == "" {
		now := s.now().In(s.loc)
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	} else {
		t, err := time.ParseInLocation("2006-01", month, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: month debe tener formato YYYY-MM", apierror.ErrValidacion)
		}
		start = t
	}

	resumen := dto.ResumenMensual{
		Year:          start.Year(),
		Month:         int(start.Month()),
		TotalNeto:     decimal.Zero,
		TotalIVA:      decimal.Zero,
		TotalDiscount: decimal.Zero,
	}
	row, err := s.resumen.Find(ctx, userID, start.Year(), int(start.Month()))
	if err != nil {
		return nil, err
	}
	if row != nil {
		resumen.TotalNeto = row.TotalNeto
		resumen.TotalIVA = row.TotalIVA
		resumen.TotalDiscount = row.TotalDiscount
		resumen.SalesCount = row.SalesCount
	}

	resp := &dto.ResumenResponse{Resumen: resumen}
	goal, err := s.resumen.FindGoal(ctx, userID, start)
	if err != nil {
		return nil, err
	}
	if goal != nil {
		amount := goal.GoalAmount
		resp.GoalAmount = &amount
		resp.PorcentajeAvance = porcentajeAvance(resumen.TotalNeto, amount)
	}
	return resp, nil
}

// porcentajeAvance is min(100, round(net/goal*100, 2)); nil when goal <= 0.
func porcentajeAvance(net, goal decimal.Decimal) *decimal.Decimal {
	if !goal.IsPositive() {
		return nil
	}
	pct := net.Div(goal).Mul(hundred).Round(2)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return &pct
}

func toVentaResponse(v *model.Venta) dto.VentaResponse {
	resp := dto.VentaResponse{
		ID:            v.ID.String(),
		UserID:        v.UserID.String(),
		Description:   v.Description,
		TotalBoxes:    v.TotalBoxes,
		TotalUnits:    v.TotalUnits,
		Subtotal:      v.Subtotal,
		DiscountTotal: v.DiscountTotal,
		IVATotal:      v.IVATotal,
		NetTotal:      v.NetTotal,
		CreatedAt:     v.CreatedAt,
		Items:         make([]dto.VentaItemResponse, len(v.Items)),
	}
	for i, it := range v.Items {
		item := dto.VentaItemResponse{
			ID:             it.ID.String(),
			SaleID:         v.ID.String(),
			PresentationID: it.PresentationID.String(),
			QuantityBoxes:  it.QuantityBoxes,
			QuantityUnits:  it.QuantityUnits,
			UnitPrice:      it.UnitPrice,
			Discount:       it.Discount,
			IVARate:        it.IVARate,
			IVAAmount:      it.IVAAmount,
			TotalPrice:     it.TotalPrice,
		}
		if it.Presentacion != nil {
			item.Presentacion = it.Presentacion.PresentationName
			if it.Presentacion.Producto != nil {
				item.Producto = it.Presentacion.Producto.Name
			}
		}
		resp.Items[i] = item
	}
	return resp
}
