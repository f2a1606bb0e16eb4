package service

import (
	"context"
	"fmt"
	"strings"

	"inventario/internal/apierror"
	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/rs/zerolog/log"
)

// CatalogoService manages families, products and presentations.
type CatalogoService interface {
	ListarFamilias(ctx context.Context) ([]dto.FamiliaResponse, error)
	CrearFamilia(ctx context.Context, req dto.CrearFamiliaRequest) (*dto.FamiliaResponse, error)
	ListarProductos(ctx context.Context) ([]dto.ProductoResponse, error)
	CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ListarPresentaciones(ctx context.Context, productID string) ([]dto.PresentacionResponse, error)
	CrearPresentacion(ctx context.Context, req dto.CrearPresentacionRequest) (*dto.PresentacionResponse, error)
}

type catalogoService struct {
	familias  repository.FamiliaRepository
	productos repository.ProductoRepository
}

func NewCatalogoService(familias repository.FamiliaRepository, productos repository.ProductoRepository) CatalogoService {
	return &catalogoService{familias: familias, productos: productos}
}

func (s *catalogoService) ListarFamilias(ctx context.Context) ([]dto.FamiliaResponse, error) {
	familias, err := s.familias.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FamiliaResponse, len(familias))
	for i, f := range familias {
		resp[i] = dto.FamiliaResponse{ID: f.ID.String(), Name: f.Name}
	}
	return resp, nil
}

func (s *catalogoService) CrearFamilia(ctx context.Context, req dto.CrearFamiliaRequest) (*dto.FamiliaResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", apierror.ErrValidacion)
	}
	exists, err := s.familias.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: la familia %q", apierror.ErrDuplicado, name)
	}
	f := &model.Familia{Name: name}
	if err := s.familias.Create(ctx, f); err != nil {
		return nil, translateDBError(err, "la familia ya existe")
	}
	log.Info().Str("familia_id", f.ID.String()).Str("name", name).Msg("familia creada")
	return &dto.FamiliaResponse{ID: f.ID.String(), Name: f.Name}, nil
}

func (s *catalogoService) ListarProductos(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.productos.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = toProductoResponse(&productos[i])
	}
	return resp, nil
}

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	familyID, err := parseID("family_id", req.FamilyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", apierror.ErrValidacion)
	}
	familia, err := s.familias.FindByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if familia == nil {
		return nil, fmt.Errorf("%w: familia", apierror.ErrNoEncontrado)
	}
	exists, err := s.productos.ExistsInFamily(ctx, familyID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: el producto %q en la familia %q", apierror.ErrDuplicado, name, familia.Name)
	}

	p := &model.Producto{FamilyID: familyID, Name: name}
	if err := s.productos.Create(ctx, p); err != nil {
		return nil, translateDBError(err, "el producto ya existe en la familia")
	}
	p.Familia = familia
	log.Info().Str("producto_id", p.ID.String()).Str("name", name).Msg("producto creado")
	resp := toProductoResponse(p)
	return &resp, nil
}

func (s *catalogoService) ListarPresentaciones(ctx context.Context, productID string) ([]dto.PresentacionResponse, error) {
	id, err := parseID("product_id", productID)
	if err != nil {
		return nil, err
	}
	pres, err := s.productos.ListPresentacionesActivas(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PresentacionResponse, len(pres))
	for i := range pres {
		resp[i] = toPresentacionResponse(&pres[i])
	}
	return resp, nil
}

func (s *catalogoService) CrearPresentacion(ctx context.Context, req dto.CrearPresentacionRequest) (*dto.PresentacionResponse, error) {
	productID, err := parseID("product_id", req.ProductID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.PresentationName)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre de la presentación es obligatorio", apierror.ErrValidacion)
	}
	producto, err := s.productos.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto", apierror.ErrNoEncontrado)
	}
	exists, err := s.productos.PresentacionExists(ctx, productID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: la presentación %q", apierror.ErrDuplicado, name)
	}

	p := &model.Presentacion{ProductID: productID, PresentationName: name, IsActive: true}
	if err := s.productos.CreatePresentacion(ctx, p); err != nil {
		return nil, translateDBError(err, "la presentación ya existe")
	}
	resp := toPresentacionResponse(p)
	return &resp, nil
}

func toProductoResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{ID: p.ID.String(), Name: p.Name, FamilyID: p.FamilyID.String()}
	if p.Familia != nil {
		resp.Familia = p.Familia.Name
	}
	return resp
}

func toPresentacionResponse(p *model.Presentacion) dto.PresentacionResponse {
	return dto.PresentacionResponse{
		ID:               p.ID.String(),
		ProductID:        p.ProductID.String(),
		PresentationName: p.PresentationName,
		IsActive:         p.IsActive,
	}
}
