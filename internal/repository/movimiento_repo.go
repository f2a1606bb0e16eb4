package repository

import (
	"context"
	"strings"
	"time"

	"inventario/internal/dto"
	"inventario/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoFilter narrows the movement listing. Zero values mean "no filter".
type MovimientoFilter struct {
	UserID       uuid.UUID
	Tipo         string
	Producto     string // ILIKE on product name
	Presentacion string // ILIKE on presentation name
	Desde        *time.Time
	Hasta        *time.Time
	Limit        int
}

type MovimientoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *model.Movimiento) error
	List(ctx context.Context, filter MovimientoFilter) ([]dto.MovimientoListItem, error)
}

type movimientoRepo struct {
	db      *gorm.DB
	builder squirrel.StatementBuilderType
}

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db, builder: squirrel.StatementBuilder}
}

func (r *movimientoRepo) Create(ctx context.Context, tx *gorm.DB, m *model.Movimiento) error {
	return conn(ctx, r.db, tx).Create(m).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches s literally; Postgres LIKE escapes with backslash by default.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// listQuery builds the listing SQL with "?" placeholders; gorm rebinds them.
func (r *movimientoRepo) listQuery(filter MovimientoFilter) (string, []interface{}, error) {
	q := r.builder.
		Select(
			"m.id", "m.type AS tipo", "p.name AS producto", "f.name AS familia",
			"pp.presentation_name AS presentacion", "m.quantity_boxes AS cajas",
			"m.quantity_units AS unidades", "m.description AS descripcion", "m.created_at AS fecha",
		).
		From("movements m").
		Join("product_presentations pp ON pp.id = m.presentation_id").
		Join("products p ON p.id = pp.product_id").
		Join("families f ON f.id = p.family_id").
		Where(squirrel.Eq{"m.user_id": filter.UserID})

	if filter.Tipo != "" {
		q = q.Where(squirrel.Eq{"m.type": filter.Tipo})
	}
	if filter.Producto != "" {
		q = q.Where(squirrel.ILike{"p.name": containsPattern(filter.Producto)})
	}
	if filter.Presentacion != "" {
		q = q.Where(squirrel.ILike{"pp.presentation_name": containsPattern(filter.Presentacion)})
	}
	if filter.Desde != nil {
		q = q.Where(squirrel.GtOrEq{"m.created_at": *filter.Desde})
	}
	if filter.Hasta != nil {
		q = q.Where(squirrel.LtOrEq{"m.created_at": *filter.Hasta})
	}
	q = q.OrderBy("m.created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	return q.ToSql()
}

func (r *movimientoRepo) List(ctx context.Context, filter MovimientoFilter) ([]dto.MovimientoListItem, error) {
	sql, args, err := r.listQuery(filter)
	if err != nil {
		return nil, err
	}
	rows := []dto.MovimientoListItem{}
	err = r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}
