package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// CreateSaleRequest venta capturada como texto "id:cantidad, id:cantidad".
type CreateSaleRequest struct {
	CustomerFolio string `json:"folioCliente" validate:"omitempty,max=50"`
	PaymentType   string `json:"tipoPago" validate:"required,oneof=cash credit"`
	Items         string `json:"productos" validate:"required"`
}

// PreviewSaleRequest líneas a cotizar sin registrar la venta.
type PreviewSaleRequest struct {
	Items string `json:"productos" validate:"required"`
}

// PreviewLineResponse línea cotizada.
type PreviewLineResponse struct {
	ProductID int             `json:"id"`
	Name      string          `json:"nombre"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PreviewSaleResponse total calculado de la cotización.
type PreviewSaleResponse struct {
	Lines []PreviewLineResponse `json:"lineas"`
	Total decimal.Decimal       `json:"total"`
}

// SaleListResponse lista paginada de ventas (más recientes primero).
type SaleListResponse struct {
	Items []entity.Sale `json:"items"`
	Page  PageResponse  `json:"page"`
}
