package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// CreateCustomerRequest entrada para registrar un cliente.
type CreateCustomerRequest struct {
	Name  string `json:"nombre" validate:"required,max=200"`
	Folio string `json:"folio" validate:"required,max=50"`
	Phone string `json:"telefono" validate:"omitempty,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []entity.Customer `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DebtResponse estado de cuenta de un cliente.
type DebtResponse struct {
	Customer     entity.Customer `json:"cliente"`
	Debt         decimal.Decimal `json:"deuda"`
	PendingSales int             `json:"ventasPendientes"`
	HasDebt      bool            `json:"tieneDeuda"`
}

// OverdueCustomerResponse cliente con crédito vencido.
type OverdueCustomerResponse struct {
	Customer    entity.Customer `json:"cliente"`
	Debt        decimal.Decimal `json:"deuda"`
	DaysOverdue int             `json:"diasVencidos"`
}
