package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// CreateProductRequest alta de producto o ajuste de stock si el nombre ya existe.
// Quantity puede ser negativa para retirar unidades.
type CreateProductRequest struct {
	Name      string          `json:"nombre" validate:"required,max=200"`
	CostPrice decimal.Decimal `json:"precioCosto"`
	SalePrice decimal.Decimal `json:"precioVenta"`
	Quantity  int             `json:"cantidad"`
}

// ProductQuery búsqueda y filtro del inventario.
type ProductQuery struct {
	Term   string `query:"q" validate:"max=200"`
	Filter string `query:"filter" validate:"omitempty,oneof=all low-stock out-of-stock"`
}

// ProductResponse producto con margen e inversión calculados.
type ProductResponse struct {
	entity.Product
	UnitMargin decimal.Decimal `json:"margenUnitario"`
	Investment decimal.Decimal `json:"inversion"`
}

// NewProductResponse construye la respuesta a partir de la entidad.
func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{Product: p, UnitMargin: p.UnitMargin(), Investment: p.Investment()}
}

// ProductListResponse lista de productos (búsqueda y filtros).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
