package dto

// ─── Familias ────────────────────────────────────────────────────────────────

type CrearFamiliaRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type FamiliaResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CrearFamiliaResponse struct {
	Familia FamiliaResponse `json:"familia"`
}

// ─── Productos ───────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	FamilyID string `json:"family_id" validate:"required,uuid"`
	Name     string `json:"name"      validate:"required,min=1,max=160"`
}

type ProductoResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FamilyID string `json:"family_id"`
	Familia  string `json:"familia"`
}

type CrearProductoResponse struct {
	Producto ProductoResponse `json:"producto"`
}

// ─── Presentaciones ──────────────────────────────────────────────────────────

type CrearPresentacionRequest struct {
	ProductID        string `json:"product_id"        validate:"required,uuid"`
	PresentationName string `json:"presentation_name" validate:"required,min=1,max=120"`
}

type PresentacionResponse struct {
	ID               string `json:"id"`
	ProductID        string `json:"product_id"`
	PresentationName string `json:"presentation_name"`
	IsActive         bool   `json:"is_active"`
}

type PresentacionesResponse struct {
	Presentaciones []PresentacionResponse `json:"presentaciones"`
}

type CrearPresentacionResponse struct {
	Presentacion PresentacionResponse `json:"presentacion"`
}
