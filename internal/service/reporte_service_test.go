package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inventario/internal/apierror"
	"inventario/internal/dto"
	"inventario/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reporteFixture struct {
	svc      *reporteService
	usuarios *stubUsuarioRepo
	inv      *stubInventarioRepo
	movs     *stubMovimientoRepo
	emails   *stubEnqueuer
	dir      string
	user     *model.Usuario
	otro     *model.Usuario
}

func newReporteFixture(t *testing.T, withEmails bool) *reporteFixture {
	t.Helper()
	familias := newStubFamiliaRepo()
	f := &reporteFixture{
		usuarios: newStubUsuarioRepo(),
		inv:      newStubInventarioRepo(),
		movs:     &stubMovimientoRepo{},
		dir:      t.TempDir(),
		user:     &model.Usuario{Email: "ana@example.com"},
		otro:     &model.Usuario{Email: "luis@example.com"},
	}
	require.NoError(t, f.usuarios.Create(context.Background(), f.user))
	require.NoError(t, f.usuarios.Create(context.Background(), f.otro))

	productos := newStubProductoRepo(familias)
	presID := productos.addPresentacion("Cerveza", "Caja x24")
	f.inv.seed(f.user.ID, presID, 3, 2)
	f.inv.seed(f.otro.ID, presID, 9, 0)

	deps := ReporteDeps{
		Usuarios:          f.usuarios,
		Familias:          familias,
		Productos:         productos,
		Inventarios:       f.inv,
		Movimientos:       f.movs,
		ExportPath:        f.dir,
		LowStockThreshold: 5,
		Location:          time.UTC,
	}
	if withEmails {
		f.emails = &stubEnqueuer{}
		deps.Emails = f.emails
	}
	f.svc = NewReporteService(deps).(*reporteService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestDashboard(t *testing.T) {
	f := newReporteFixture(t, false)
	f.inv.bajoStock = []dto.ProductoBajoStock{{Producto: "Cerveza", TotalCajas: 3}}
	for i := 0; i < 60; i++ {
		require.NoError(t, f.movs.Create(context.Background(), nil, &model.Movimiento{UserID: f.user.ID, Type: model.MovimientoEntrada}))
	}

	resp, err := f.svc.Dashboard(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Familias, 1)
	assert.Len(t, resp.Productos, 1)
	assert.Len(t, resp.Inventario, 1)
	assert.Len(t, resp.Movimientos, 50)
	assert.Equal(t, 50, f.movs.lastFilter.Limit)
	assert.Len(t, resp.ProductosBajoStock, 1)
}

func TestDashboard_ListasVaciasNoNulas(t *testing.T) {
	f := newReporteFixture(t, false)
	resp, err := f.svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, resp.Inventario)
	assert.NotNil(t, resp.Movimientos)
	assert.NotNil(t, resp.ProductosBajoStock)
}

func TestExportarInventario_CSV(t *testing.T) {
	f := newReporteFixture(t, false)

	exp, err := f.svc.ExportarInventario(context.Background(), f.user.ID, false, dto.ExportFilter{})
	require.NoError(t, err)

	wantName := "inventario_" + f.user.ID.String() + "_2024-05-14.csv"
	assert.Equal(t, wantName, exp.Nombre)
	assert.Contains(t, exp.ContentType, "text/csv")

	lines := strings.Split(string(exp.Data), "\n")
	assert.Equal(t, "Reporte generado para: ana@example.com | Fecha de reporte: 2024-05-14", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "Producto,Presentación,Familia,Cajas,Unidades sueltas", lines[2])
	assert.Contains(t, lines[3], ",3,2")

	saved, err := os.ReadFile(filepath.Join(f.dir, wantName))
	require.NoError(t, err)
	assert.Equal(t, exp.Data, saved)
}

func TestExportarInventario_SoloAdminEligeUsuario(t *testing.T) {
	f := newReporteFixture(t, false)
	ctx := context.Background()
	filter := dto.ExportFilter{UserID: f.otro.ID.String()}

	own, err := f.svc.ExportarInventario(ctx, f.user.ID, false, filter)
	require.NoError(t, err)
	assert.Contains(t, string(own.Data), "ana@example.com")

	other, err := f.svc.ExportarInventario(ctx, f.user.ID, true, filter)
	require.NoError(t, err)
	assert.Contains(t, string(other.Data), "luis@example.com")
	assert.Contains(t, other.Nombre, f.otro.ID.String())

	_, err = f.svc.ExportarInventario(ctx, f.user.ID, true, dto.ExportFilter{UserID: uuid.NewString()})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestExportarInventario_OtrosFormatos(t *testing.T) {
	f := newReporteFixture(t, false)
	ctx := context.Background()

	pdf, err := f.svc.ExportarInventario(ctx, f.user.ID, false, dto.ExportFilter{Formato: "pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf.Data), "%PDF"))

	xlsx, err := f.svc.ExportarInventario(ctx, f.user.ID, false, dto.ExportFilter{Formato: "xlsx"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(xlsx.Data), "PK"), "xlsx is a zip container")

	_, err = f.svc.ExportarInventario(ctx, f.user.ID, false, dto.ExportFilter{Formato: "doc"})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestEnviarInventario_SinRedis(t *testing.T) {
	f := newReporteFixture(t, false)
	_, err := f.svc.EnviarInventarioPorEmail(context.Background(), f.user.ID, dto.ExportEmailRequest{})
	assert.ErrorIs(t, err, apierror.ErrNoDisponible)
}

func TestEnviarInventario_EncolaCorreo(t *testing.T) {
	f := newReporteFixture(t, true)

	resp, err := f.svc.EnviarInventarioPorEmail(context.Background(), f.user.ID, dto.ExportEmailRequest{Formato: "xlsx"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.Archivo, ".xlsx"))

	require.Len(t, f.emails.payloads, 1)
	p := f.emails.payloads[0]
	assert.Equal(t, "ana@example.com", p.ToEmail)
	assert.FileExists(t, p.AttachmentPath)

	f.emails.err = errors.New("redis down")
	_, err = f.svc.EnviarInventarioPorEmail(context.Background(), f.user.ID, dto.ExportEmailRequest{})
	assert.ErrorIs(t, err, apierror.ErrNoDisponible)
}
