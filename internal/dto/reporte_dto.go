package dto

type ProductoBajoStock struct {
	ProductID  string `json:"product_id"`
	Producto   string `json:"producto"`
	Familia    string `json:"familia"`
	TotalCajas int    `json:"total_cajas"`
}

type DashboardResponse struct {
	Familias           []FamiliaResponse    `json:"familias"`
	Productos          []ProductoResponse   `json:"productos"`
	Inventario         []InventarioItem     `json:"inventario"`
	Movimientos        []MovimientoListItem `json:"movimientos"`
	ProductosBajoStock []ProductoBajoStock  `json:"productos_bajo_stock"`
}

// ExportFilter is bound from the query string of GET /api/exportar/inventario.
type ExportFilter struct {
	UserID  string `form:"user_id" validate:"omitempty,uuid"`
	Formato string `form:"formato" validate:"omitempty,oneof=csv xlsx pdf"`
}

type ExportEmailRequest struct {
	Formato string `json:"formato" validate:"omitempty,oneof=csv xlsx pdf"`
}

type ExportEmailResponse struct {
	Mensaje string `json:"mensaje"`
	Archivo string `json:"archivo"`
}
