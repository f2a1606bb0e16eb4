package service

import (
	"context"
	"fmt"
	"sort"

	"inventario/internal/apierror"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// stockLedger applies signed deltas to the inventory snapshot and appends the
// matching movement. It is shared by movement registration and checkout.
type stockLedger struct {
	inventarios repository.InventarioRepository
	movimientos repository.MovimientoRepository
	locker      StockLocker
}

func stockKey(userID, presentationID uuid.UUID) string {
	return "stock:" + userID.String() + ":" + presentationID.String()
}

// lock acquires the per-(user, presentation) keys in sorted order so two
// carts touching the same presentations can never deadlock.
func (l *stockLedger) lock(ctx context.Context, userID uuid.UUID, presentationIDs ...uuid.UUID) (func(), error) {
	if l.locker == nil {
		return func() {}, nil
	}
	seen := make(map[string]bool, len(presentationIDs))
	keys := make([]string, 0, len(presentationIDs))
	for _, id := range presentationIDs {
		k := stockKey(userID, id)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	unlocks := make([]func(), 0, len(keys))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, k := range keys {
		unlock, err := l.locker.Lock(ctx, k)
		if err != nil {
			release()
			return nil, fmt.Errorf("%w: stock ocupado, intente nuevamente (%v)", apierror.ErrNoDisponible, err)
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

// apply must run inside tx with the key locked. On insufficient stock it
// returns before writing the movement; the caller's rollback discards the
// locked seed row.
func (l *stockLedger) apply(ctx context.Context, tx *gorm.DB, m *model.Movimiento) (*model.Inventario, error) {
	var sign int
	switch m.Type {
	case model.MovimientoEntrada:
		sign = 1
	case model.MovimientoSalida:
		sign = -1
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", apierror.ErrValidacion, m.Type)
	}
	if m.QuantityBoxes < 0 || m.QuantityUnits < 0 {
		return nil, fmt.Errorf("%w: las cantidades no pueden ser negativas", apierror.ErrValidacion)
	}

	inv, err := l.inventarios.LockRow(ctx, tx, m.UserID, m.PresentationID)
	if err != nil {
		return nil, err
	}

	boxes := inv.QuantityBoxes + sign*m.QuantityBoxes
	units := inv.QuantityUnits + sign*m.QuantityUnits
	if boxes < 0 || units < 0 {
		log.Warn().
			Str("user_id", m.UserID.String()).
			Str("presentation_id", m.PresentationID.String()).
			Int("cajas_disponibles", inv.QuantityBoxes).
			Int("unidades_disponibles", inv.QuantityUnits).
			Int("cajas_solicitadas", m.QuantityBoxes).
			Int("unidades_solicitadas", m.QuantityUnits).
			Msg("movimiento rechazado por stock insuficiente")
		return nil, fmt.Errorf("%w: disponible %d cajas y %d unidades",
			apierror.ErrStockInsuficiente, inv.QuantityBoxes, inv.QuantityUnits)
	}

	if err := l.movimientos.Create(ctx, tx, m); err != nil {
		return nil, err
	}
	inv.QuantityBoxes = boxes
	inv.QuantityUnits = units
	if err := l.inventarios.SaveQuantities(ctx, tx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
