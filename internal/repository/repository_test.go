package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"inventario/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestMovimientoListQuery(t *testing.T) {
	r := NewMovimientoRepository(nil).(*movimientoRepo)
	userID := uuid.New()

	sql, args, err := r.listQuery(MovimientoFilter{UserID: userID})
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM movements m JOIN product_presentations pp ON pp.id = m.presentation_id")
	assert.Contains(t, sql, "WHERE m.user_id = ? ORDER BY m.created_at DESC")
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []interface{}{userID}, args)

	desde := time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC)
	sql, args, err = r.listQuery(MovimientoFilter{
		UserID:       userID,
		Tipo:         model.MovimientoSalida,
		Producto:     "cerv",
		Presentacion: "x24",
		Desde:        &desde,
		Limit:        50,
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "m.type = ?")
	assert.Contains(t, sql, "p.name ILIKE ?")
	assert.Contains(t, sql, "pp.presentation_name ILIKE ?")
	assert.Contains(t, sql, "m.created_at >= ?")
	assert.NotContains(t, sql, "m.created_at <= ?")
	assert.True(t, regexp.MustCompile(`LIMIT 50$`).MatchString(sql), sql)
	assert.Equal(t, []interface{}{userID, "salida", "%cerv%", "%x24%", desde}, args)
}

func TestMovimientoListQuery_EscapaComodines(t *testing.T) {
	r := NewMovimientoRepository(nil).(*movimientoRepo)
	userID := uuid.New()

	_, args, err := r.listQuery(MovimientoFilter{UserID: userID, Producto: "100%_jugo", Presentacion: `a\b`})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{userID, `%100\%\_jugo%`, `%a\\b%`}, args)
}

func TestMovimientoList_Scan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovimientoRepository(db)
	userID := uuid.New()
	fecha := time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM movements m")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tipo", "producto", "familia", "presentacion", "cajas", "unidades", "descripcion", "fecha"}).
			AddRow(uuid.NewString(), "entrada", "Cerveza", "Bebidas", "Caja x24", 10, 4, "Compra", fecha))

	rows, err := repo.List(context.Background(), MovimientoFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cerveza", rows[0].Producto)
	assert.Equal(t, 10, rows[0].Cajas)
	assert.Equal(t, 4, rows[0].Unidades)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovimientoList_VacioNoNulo(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM movements m").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := NewMovimientoRepository(db).List(context.Background(), MovimientoFilter{UserID: uuid.New()})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestUsuarioFindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsuarioRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE LOWER(email) = LOWER($1)`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "is_admin"}).
			AddRow(id.String(), "ana@example.com", "hash", true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := repo.FindByEmail(context.Background(), "ANA@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.IsAdmin)

	u, err = repo.FindByEmail(context.Background(), "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumenAccumulate_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumenRepository(db)

	mock.ExpectQuery(`INSERT INTO "sales_summary" .* ON CONFLICT \("user_id","year","month"\) DO UPDATE SET .*"sales_count"=sales_summary\.sales_count \+ EXCLUDED\.sales_count`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

	err := repo.Accumulate(context.Background(), nil, &model.ResumenVenta{
		UserID:     uuid.New(),
		Year:       2024,
		Month:      5,
		TotalNeto:  decimal.NewFromInt(233),
		TotalIVA:   decimal.NewFromInt(38),
		SalesCount: 1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumenFindGoal_PrimerDiaDelMes(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sales_goals" WHERE user_id = $1 AND month = $2`)).
		WithArgs(userID, "2024-05-01", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	goal, err := NewResumenRepository(db).FindGoal(context.Background(), userID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, goal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventarioLowStock_Umbral(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery(`GROUP BY p\.id, p\.name, f\.name HAVING SUM\(i\.quantity_boxes\) <= \$2`).
		WithArgs(userID, 5).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "producto", "familia", "total_cajas"}).
			AddRow(uuid.NewString(), "Cerveza", "Bebidas", 3))

	rows, err := NewInventarioRepository(db).LowStock(context.Background(), userID, 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].TotalCajas)
	assert.NoError(t, mock.ExpectationsWereMet())
}
