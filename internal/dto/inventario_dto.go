package dto

import "time"

// ─── Inventario ──────────────────────────────────────────────────────────────

// CrearInventarioRequest seeds the stock of a presentation the user has never held.
type CrearInventarioRequest struct {
	PresentationID string `json:"presentation_id" validate:"required,uuid"`
	QuantityBoxes  *int   `json:"quantity_boxes"  validate:"required,min=0"`
	QuantityUnits  *int   `json:"quantity_units"  validate:"required,min=0"`
}

type InventarioResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	PresentationID string    `json:"presentation_id"`
	QuantityBoxes  int       `json:"quantity_boxes"`
	QuantityUnits  int       `json:"quantity_units"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CrearInventarioResponse struct {
	Inventario InventarioResponse `json:"inventario"`
}

// InventarioItem is one row of the stock listing and of the exported report.
type InventarioItem struct {
	PresentationID string `json:"presentation_id"`
	Producto       string `json:"producto"`
	Presentacion   string `json:"presentacion"`
	Familia        string `json:"familia"`
	Cajas          int    `json:"cajas"`
	Unidades       int    `json:"unidades"`
}

type StockResponse struct {
	Cajas    int `json:"cajas"`
	Unidades int `json:"unidades"`
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

// MovimientoRequest requires both quantities; zero is a valid value.
type MovimientoRequest struct {
	PresentationID string `json:"presentation_id" validate:"required,uuid"`
	Type           string `json:"type"            validate:"required,oneof=entrada salida"`
	QuantityBoxes  *int   `json:"quantity_boxes"  validate:"required,min=0"`
	QuantityUnits  *int   `json:"quantity_units"  validate:"required,min=0"`
	Description    string `json:"description"     validate:"max=500"`
}

type MovimientoResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	PresentationID string    `json:"presentation_id"`
	Type           string    `json:"type"`
	QuantityBoxes  int       `json:"quantity_boxes"`
	QuantityUnits  int       `json:"quantity_units"`
	Description    string    `json:"description"`
	SaleID         *string   `json:"sale_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type CrearMovimientoResponse struct {
	Movimiento MovimientoResponse `json:"movimiento"`
}

// MovimientoFilter is bound from the query string of GET /api/movimientos.
// Desde/Hasta are calendar days (YYYY-MM-DD) in the business timezone.
type MovimientoFilter struct {
	Tipo         string `form:"tipo"         validate:"omitempty,oneof=entrada salida"`
	Producto     string `form:"producto"`
	Presentacion string `form:"presentacion"`
	Desde        string `form:"desde"        validate:"omitempty,datetime=2006-01-02"`
	Hasta        string `form:"hasta"        validate:"omitempty,datetime=2006-01-02"`
}

// MovimientoListItem is the flattened, renamed projection used by listings.
type MovimientoListItem struct {
	ID           string    `json:"id"`
	Tipo         string    `json:"tipo"`
	Producto     string    `json:"producto"`
	Familia      string    `json:"familia"`
	Presentacion string    `json:"presentacion"`
	Cajas        int       `json:"cajas"`
	Unidades     int       `json:"unidades"`
	Descripcion  string    `json:"descripcion"`
	Fecha        time.Time `json:"fecha"`
}

// ─── Entradas agrupadas ──────────────────────────────────────────────────────

type EntradaItem struct {
	PresentationID string `json:"presentation_id" validate:"omitempty,uuid"`
	QuantityBoxes  int    `json:"quantity_boxes"  validate:"min=0"`
	QuantityUnits  int    `json:"quantity_units"  validate:"min=0"`
}

type EntradasAgrupadasRequest struct {
	Items       []EntradaItem `json:"items"       validate:"required,min=1,dive"`
	Description string        `json:"description" validate:"max=500"`
}

type EntradasAgrupadasResponse struct {
	Mensaje     string `json:"mensaje"`
	Registrados int    `json:"registrados"`
}
