package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la tienda.
// Folio es la clave de negocio: única entre todos los clientes creados, activos o no.
type Customer struct {
	ID             int             `json:"id"`
	Name           string          `json:"nombre"`
	Folio          string          `json:"folio"`
	Phone          string          `json:"telefono"`
	Email          string          `json:"email"`
	RegisteredAt   time.Time       `json:"fechaRegistro"`
	Active         bool            `json:"activo"`
	TotalPurchases decimal.Decimal `json:"totalCompras"`
	LastPurchase   *time.Time      `json:"ultimaCompra"`
}
