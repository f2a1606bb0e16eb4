package service

import (
	"context"
	"fmt"
	"time"

	"inventario/internal/apierror"
	"inventario/internal/dto"
	"inventario/internal/infra"
	"inventario/internal/repository"
	"inventario/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const dashboardMovimientos = 50

// Export is a rendered report ready to stream back to the client.
type Export struct {
	Nombre      string
	ContentType string
	Data        []byte
	Path        string // copy kept under EXPORT_PATH; empty when saving failed
}

// ReporteService builds the dashboard and the inventory exports.
type ReporteService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
	// ExportarInventario exports the caller's inventory. Admins may pass another user_id.
	ExportarInventario(ctx context.Context, callerID uuid.UUID, isAdmin bool, filter dto.ExportFilter) (*Export, error)
	EnviarInventarioPorEmail(ctx context.Context, callerID uuid.UUID, req dto.ExportEmailRequest) (*dto.ExportEmailResponse, error)
}

type ReporteDeps struct {
	Usuarios    repository.UsuarioRepository
	Familias    repository.FamiliaRepository
	Productos   repository.ProductoRepository
	Inventarios repository.InventarioRepository
	Movimientos repository.MovimientoRepository

	Emails            EmailEnqueuer // nil disables report emails
	ExportPath        string
	LowStockThreshold int
	Location          *time.Location
}

type reporteService struct {
	deps ReporteDeps
	now  func() time.Time
}

func NewReporteService(deps ReporteDeps) ReporteService {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &reporteService{deps: deps, now: time.Now}
}

func (s *reporteService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	familias, err := s.deps.Familias.List(ctx)
	if err != nil {
		return nil, err
	}
	productos, err := s.deps.Productos.List(ctx)
	if err != nil {
		return nil, err
	}
	inventario, err := s.deps.Inventarios.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.deps.Movimientos.List(ctx, repository.MovimientoFilter{UserID: userID, Limit: dashboardMovimientos})
	if err != nil {
		return nil, err
	}
	bajoStock, err := s.deps.Inventarios.LowStock(ctx, userID, s.deps.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Familias:           make([]dto.FamiliaResponse, len(familias)),
		Productos:          make([]dto.ProductoResponse, len(productos)),
		Inventario:         nonNil(inventario),
		Movimientos:        nonNil(movimientos),
		ProductosBajoStock: nonNil(bajoStock),
	}
	for i, f := range familias {
		resp.Familias[i] = dto.FamiliaResponse{ID: f.ID.String(), Name: f.Name}
	}
	for i := range productos {
		resp.Productos[i] = toProductoResponse(&productos[i])
	}
	return resp, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *reporteService) ExportarInventario(ctx context.Context, callerID uuid.UUID, isAdmin bool, filter dto.ExportFilter) (*Export, error) {
	target := callerID
	if isAdmin && filter.UserID != "" {
		id, err := parseID("user_id", filter.UserID)
		if err != nil {
			return nil, err
		}
		target = id
	}
	exp, err := s.render(ctx, target, filter.Formato)
	if err != nil {
		return nil, err
	}
	path, err := infra.SaveExport(s.deps.ExportPath, exp.Nombre, exp.Data)
	if err != nil {
		log.Warn().Err(err).Str("archivo", exp.Nombre).Msg("no se pudo guardar la copia del reporte")
	}
	exp.Path = path
	return exp, nil
}

func (s *reporteService) EnviarInventarioPorEmail(ctx context.Context, callerID uuid.UUID, req dto.ExportEmailRequest) (*dto.ExportEmailResponse, error) {
	if s.deps.Emails == nil {
		return nil, fmt.Errorf("%w: el envío de reportes requiere Redis", apierror.ErrNoDisponible)
	}
	usuario, err := s.deps.Usuarios.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, fmt.Errorf("%w: usuario %s", apierror.ErrNoEncontrado, callerID)
	}

	exp, err := s.render(ctx, callerID, req.Formato)
	if err != nil {
		return nil, err
	}
	path, err := infra.SaveExport(s.deps.ExportPath, exp.Nombre, exp.Data)
	if err != nil {
		return nil, err
	}

	err = s.deps.Emails.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail:        usuario.Email,
		Subject:        "Reporte de inventario",
		Body:           "Adjunto encontrará el reporte de inventario generado el " + s.now().In(s.deps.Location).Format("2006-01-02") + ".",
		AttachmentPath: path,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo encolar el correo (%v)", apierror.ErrNoDisponible, err)
	}

	log.Info().Str("user_id", callerID.String()).Str("archivo", exp.Nombre).Msg("reporte encolado para envío")
	return &dto.ExportEmailResponse{
		Mensaje: "El reporte será enviado a " + usuario.Email,
		Archivo: exp.Nombre,
	}, nil
}

func (s *reporteService) render(ctx context.Context, userID uuid.UUID, formato string) (*Export, error) {
	format, ok := infra.LookupExportFormat(formato)
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", apierror.ErrValidacion, formato)
	}
	usuario, err := s.deps.Usuarios.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, fmt.Errorf("%w: usuario %s", apierror.ErrNoEncontrado, userID)
	}
	filas, err := s.deps.Inventarios.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fecha := s.now().In(s.deps.Location)
	data, err := format.Render(infra.InventarioReporte{Email: usuario.Email, Fecha: fecha, Filas: filas})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format.Ext, err)
	}
	return &Export{
		Nombre:      fmt.Sprintf("inventario_%s_%s.%s", userID, fecha.Format("2006-01-02"), format.Ext),
		ContentType: format.ContentType,
		Data:        data,
	}, nil
}
