package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"
	"inventario/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory InventarioRepository stub ──────────────────────────────────────

type invKey struct{ user, pres uuid.UUID }

type stubInventarioRepo struct {
	mu        sync.Mutex
	rows      map[invKey]*model.Inventario
	bajoStock []dto.ProductoBajoStock
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{rows: make(map[invKey]*model.Inventario)}
}

func (r *stubInventarioRepo) seed(user, pres uuid.UUID, boxes, units int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[invKey{user, pres}] = &model.Inventario{
		ID: uuid.New(), UserID: user, PresentationID: pres, QuantityBoxes: boxes, QuantityUnits: units,
	}
}

func (r *stubInventarioRepo) get(user, pres uuid.UUID) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[invKey{user, pres}]
	if !ok {
		return 0, 0
	}
	return inv.QuantityBoxes, inv.QuantityUnits
}

func (r *stubInventarioRepo) LockRow(_ context.Context, _ *gorm.DB, user, pres uuid.UUID) (*model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[invKey{user, pres}]
	if !ok {
		inv = &model.Inventario{ID: uuid.New(), UserID: user, PresentationID: pres}
		r.rows[invKey{user, pres}] = inv
	}
	cp := *inv
	return &cp, nil
}

func (r *stubInventarioRepo) Find(_ context.Context, _ *gorm.DB, user, pres uuid.UUID) (*model.Inventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[invKey{user, pres}]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *stubInventarioRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Inventario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	cp := *inv
	r.rows[invKey{inv.UserID, inv.PresentationID}] = &cp
	return nil
}

func (r *stubInventarioRepo) SaveQuantities(_ context.Context, _ *gorm.DB, inv *model.Inventario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv.UpdatedAt = time.Now()
	cp := *inv
	r.rows[invKey{inv.UserID, inv.PresentationID}] = &cp
	return nil
}

func (r *stubInventarioRepo) ListByUser(_ context.Context, user uuid.UUID) ([]dto.InventarioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dto.InventarioItem
	for k, inv := range r.rows {
		if k.user != user {
			continue
		}
		out = append(out, dto.InventarioItem{
			PresentationID: k.pres.String(),
			Producto:       "Producto",
			Presentacion:   "Presentación",
			Familia:        "Familia",
			Cajas:          inv.QuantityBoxes,
			Unidades:       inv.QuantityUnits,
		})
	}
	return out, nil
}

func (r *stubInventarioRepo) LowStock(_ context.Context, _ uuid.UUID, _ int) ([]dto.ProductoBajoStock, error) {
	return r.bajoStock, nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

var _ repository.InventarioRepository = (*stubInventarioRepo)(nil)

// ── MovimientoRepository stub ────────────────────────────────────────────────

type stubMovimientoRepo struct {
	mu         sync.Mutex
	movs       []model.Movimiento
	lastFilter repository.MovimientoFilter
}

func (r *stubMovimientoRepo) Create(_ context.Context, _ *gorm.DB, m *model.Movimiento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, f repository.MovimientoFilter) ([]dto.MovimientoListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	var out []dto.MovimientoListItem
	for i := len(r.movs) - 1; i >= 0; i-- {
		m := r.movs[i]
		if m.UserID != f.UserID || (f.Tipo != "" && m.Type != f.Tipo) {
			continue
		}
		out = append(out, dto.MovimientoListItem{
			ID: m.ID.String(), Tipo: m.Type, Cajas: m.QuantityBoxes, Unidades: m.QuantityUnits,
			Descripcion: m.Description, Fecha: m.CreatedAt,
		})
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubMovimientoRepo) all() []model.Movimiento {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Movimiento(nil), r.movs...)
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

// ── Catalogo stubs ───────────────────────────────────────────────────────────

type stubFamiliaRepo struct {
	familias map[uuid.UUID]*model.Familia
}

func newStubFamiliaRepo() *stubFamiliaRepo {
	return &stubFamiliaRepo{familias: make(map[uuid.UUID]*model.Familia)}
}

func (r *stubFamiliaRepo) Create(_ context.Context, f *model.Familia) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.familias[f.ID] = f
	return nil
}

func (r *stubFamiliaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Familia, error) {
	return r.familias[id], nil
}

func (r *stubFamiliaRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, f := range r.familias {
		if strings.EqualFold(f.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubFamiliaRepo) List(_ context.Context) ([]model.Familia, error) {
	out := make([]model.Familia, 0, len(r.familias))
	for _, f := range r.familias {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ repository.FamiliaRepository = (*stubFamiliaRepo)(nil)

type stubProductoRepo struct {
	familias       *stubFamiliaRepo
	productos      map[uuid.UUID]*model.Producto
	presentaciones map[uuid.UUID]*model.Presentacion
}

func newStubProductoRepo(familias *stubFamiliaRepo) *stubProductoRepo {
	return &stubProductoRepo{
		familias:       familias,
		productos:      make(map[uuid.UUID]*model.Producto),
		presentaciones: make(map[uuid.UUID]*model.Presentacion),
	}
}

// addPresentacion creates family → product → presentation and returns the presentation id.
func (r *stubProductoRepo) addPresentacion(producto, presentacion string) uuid.UUID {
	fam := &model.Familia{ID: uuid.New(), Name: "Bebidas"}
	r.familias.familias[fam.ID] = fam
	prod := &model.Producto{ID: uuid.New(), FamilyID: fam.ID, Name: producto, Familia: fam}
	r.productos[prod.ID] = prod
	pres := &model.Presentacion{ID: uuid.New(), ProductID: prod.ID, PresentationName: presentacion, IsActive: true, Producto: prod}
	r.presentaciones[pres.ID] = pres
	return pres.ID
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.productos[id], nil
}

func (r *stubProductoRepo) ExistsInFamily(_ context.Context, familyID uuid.UUID, name string) (bool, error) {
	for _, p := range r.productos {
		if p.FamilyID == familyID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		cp := *p
		if cp.Familia == nil {
			cp.Familia = r.familias.familias[cp.FamilyID]
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubProductoRepo) CreatePresentacion(_ context.Context, p *model.Presentacion) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.presentaciones[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindPresentacion(_ context.Context, id uuid.UUID) (*model.Presentacion, error) {
	return r.presentaciones[id], nil
}

func (r *stubProductoRepo) PresentacionExists(_ context.Context, productID uuid.UUID, name string) (bool, error) {
	for _, p := range r.presentaciones {
		if p.ProductID == productID && strings.EqualFold(p.PresentationName, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductoRepo) ListPresentacionesActivas(_ context.Context, productID uuid.UUID) ([]model.Presentacion, error) {
	var out []model.Presentacion
	for _, p := range r.presentaciones {
		if p.ProductID == productID && p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PresentationName < out[j].PresentationName })
	return out, nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── PrecioRepository stub ────────────────────────────────────────────────────

type stubPrecioRepo struct {
	mu      sync.Mutex
	precios []*model.Precio
	finds   int
}

func (r *stubPrecioRepo) FindActive(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Precio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	for i := len(r.precios) - 1; i >= 0; i-- {
		if p := r.precios[i]; p.PresentationID == id && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubPrecioRepo) LockPresentacion(context.Context, *gorm.DB, uuid.UUID) error { return nil }

func (r *stubPrecioRepo) DeactivateAll(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.precios {
		if p.PresentationID == id {
			p.IsActive = false
		}
	}
	return nil
}

func (r *stubPrecioRepo) Create(_ context.Context, _ *gorm.DB, p *model.Precio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	cp := *p
	r.precios = append(r.precios, &cp)
	return nil
}

func (r *stubPrecioRepo) ListActive(context.Context) ([]dto.PrecioListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dto.PrecioListItem
	for _, p := range r.precios {
		if p.IsActive {
			out = append(out, dto.PrecioListItem{PresentationID: p.PresentationID.String(), Price: p.Price, IVARate: p.IVARate})
		}
	}
	return out, nil
}

func (r *stubPrecioRepo) DB() *gorm.DB { return nil }

func (r *stubPrecioRepo) activeCount(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.precios {
		if p.PresentationID == id && p.IsActive {
			n++
		}
	}
	return n
}

var _ repository.PrecioRepository = (*stubPrecioRepo)(nil)

// ── VentaRepository stub ─────────────────────────────────────────────────────

type stubVentaRepo struct {
	mu         sync.Mutex
	ventas     []model.Venta
	lastFilter repository.VentaFilter
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = uuid.New()
	for i := range v.Items {
		v.Items[i].ID = uuid.New()
		v.Items[i].SaleID = v.ID
	}
	cp := *v
	cp.Items = append([]model.VentaItem(nil), v.Items...)
	r.ventas = append(r.ventas, cp)
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, f repository.VentaFilter) ([]model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	var out []model.Venta
	for i := len(r.ventas) - 1; i >= 0; i-- {
		v := r.ventas[i]
		if v.UserID != f.UserID {
			continue
		}
		if f.PresentationID != nil {
			found := false
			for _, it := range v.Items {
				found = found || it.PresentationID == *f.PresentationID
			}
			if !found {
				continue
			}
		}
		cp := v
		cp.Items = append([]model.VentaItem(nil), v.Items...)
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── ResumenRepository stub ───────────────────────────────────────────────────

type periodo struct {
	user        uuid.UUID
	year, month int
}

type stubResumenRepo struct {
	mu    sync.Mutex
	rows  map[periodo]*model.ResumenVenta
	goals map[periodo]*model.MetaVenta
}

func newStubResumenRepo() *stubResumenRepo {
	return &stubResumenRepo{rows: make(map[periodo]*model.ResumenVenta), goals: make(map[periodo]*model.MetaVenta)}
}

func (r *stubResumenRepo) Accumulate(_ context.Context, _ *gorm.DB, d *model.ResumenVenta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := periodo{d.UserID, d.Year, d.Month}
	row, ok := r.rows[k]
	if !ok {
		cp := *d
		r.rows[k] = &cp
		return nil
	}
	row.TotalNeto = row.TotalNeto.Add(d.TotalNeto)
	row.TotalDiscount = row.TotalDiscount.Add(d.TotalDiscount)
	row.TotalIVA = row.TotalIVA.Add(d.TotalIVA)
	row.SalesCount += d.SalesCount
	return nil
}

func (r *stubResumenRepo) Find(_ context.Context, user uuid.UUID, year, month int) (*model.ResumenVenta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[periodo{user, year, month}]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *stubResumenRepo) FindGoal(_ context.Context, user uuid.UUID, monthStart time.Time) (*model.MetaVenta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.goals[periodo{user, monthStart.Year(), int(monthStart.Month())}], nil
}

var _ repository.ResumenRepository = (*stubResumenRepo)(nil)

// ── UsuarioRepository stub ───────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	return r.usuarios[id], nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Upsert(ctx context.Context, u *model.Usuario) error {
	if existing, _ := r.FindByEmail(ctx, u.Email); existing != nil {
		existing.PasswordHash = u.PasswordHash
		existing.IsAdmin = u.IsAdmin
		return nil
	}
	return r.Create(ctx, u)
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Infra stubs ──────────────────────────────────────────────────────────────

type stubPrecioCache struct {
	mu            sync.Mutex
	m             map[uuid.UUID]model.Precio
	versions      map[uuid.UUID]int64
	invalidations int
	rejected      int
}

func newStubPrecioCache() *stubPrecioCache {
	return &stubPrecioCache{m: make(map[uuid.UUID]model.Precio), versions: make(map[uuid.UUID]int64)}
}

func (c *stubPrecioCache) Get(_ context.Context, id uuid.UUID) (*model.Precio, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.m[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (c *stubPrecioCache) Version(_ context.Context, id uuid.UUID) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[id], true
}

func (c *stubPrecioCache) Set(_ context.Context, p *model.Precio, version int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[p.PresentationID] != version {
		c.rejected++
		return false
	}
	c.m[p.PresentationID] = *p
	return true
}

func (c *stubPrecioCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[id]++
	delete(c.m, id)
	c.invalidations++
}

var _ PrecioCache = (*stubPrecioCache)(nil)

type stubEnqueuer struct {
	payloads []worker.EmailJobPayload
	err      error
}

func (e *stubEnqueuer) EnqueueEmail(_ context.Context, p worker.EmailJobPayload) error {
	if e.err != nil {
		return e.err
	}
	e.payloads = append(e.payloads, p)
	return nil
}

var _ EmailEnqueuer = (*stubEnqueuer)(nil)
