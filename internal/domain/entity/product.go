package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de la tienda.
// Nunca se borra físicamente: Active modela la baja lógica.
type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"nombre"`
	CostPrice decimal.Decimal `json:"precioCosto"`
	SalePrice decimal.Decimal `json:"precioVenta"`
	Quantity  int             `json:"cantidad"` // nunca negativa
	Active    bool            `json:"activo"`
	CreatedAt time.Time       `json:"fechaCreacion"`
	UnitsSold int             `json:"ventasTotales"`
}

// UnitMargin devuelve la ganancia por unidad (precio de venta - costo).
func (p Product) UnitMargin() decimal.Decimal {
	return p.SalePrice.Sub(p.CostPrice)
}

// Investment devuelve el valor a costo del stock disponible.
func (p Product) Investment() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
