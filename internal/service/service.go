package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventario/internal/apierror"
	"inventario/internal/model"
	"inventario/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLocker serialises stock mutations per key. Implemented by
// infra.RedisLocker (multi-instance) and infra.LocalLocker.
type StockLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// PrecioCache is the optional read-through cache for active prices.
// Set only succeeds while the version read before loading p is still current.
type PrecioCache interface {
	Get(ctx context.Context, presentationID uuid.UUID) (*model.Precio, bool)
	Version(ctx context.Context, presentationID uuid.UUID) (int64, bool)
	Set(ctx context.Context, p *model.Precio, version int64) bool
	Invalidate(ctx context.Context, presentationID uuid.UUID)
}

// EmailEnqueuer hands report emails to the async worker pool.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailJobPayload) error
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly in unit tests where repositories are stubs.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s inválido", apierror.ErrValidacion, field)
	}
	return id, nil
}

// translateDBError maps unique-key violations to ErrDuplicado.
func translateDBError(err error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", apierror.ErrDuplicado, what)
	}
	return err
}

// dayRange converts inclusive YYYY-MM-DD bounds in loc into instants:
// desde becomes 00:00:00 and hasta the last nanosecond of that day.
func dayRange(desde, hasta string, loc *time.Location) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if desde != "" {
		d, err := time.ParseInLocation("2006-01-02", desde, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: fecha inicial inválida", apierror.ErrValidacion)
		}
		from = &d
	}
	if hasta != "" {
		h, err := time.ParseInLocation("2006-01-02", hasta, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: fecha final inválida", apierror.ErrValidacion)
		}
		end := h.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", apierror.ErrValidacion)
	}
	return from, to, nil
}
