package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// CashFolio es el folio que se asigna a las ventas sin cliente.
const CashFolio = "CASH"

// LineItem es un par (producto, cantidad) tal como llega de la captura de texto.
type LineItem struct {
	ProductID int `json:"id"`
	Quantity  int `json:"cantidad"`
}

// SaleLineItem es la foto de un producto al momento de la venta.
// Se construye una sola vez y nunca referencia al Product vivo.
type SaleLineItem struct {
	ProductID int             `json:"id"`
	Quantity  int             `json:"cantidad"`
	Name      string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	UnitCost  decimal.Decimal `json:"costoUnitario"`
}

// Subtotal precio unitario por cantidad.
func (l SaleLineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cost costo unitario por cantidad.
func (l SaleLineItem) Cost() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Sale es una venta registrada. Inmutable salvo Paid.
type Sale struct {
	ID            int             `json:"id"`
	CustomerFolio string          `json:"folioCliente"`
	PaymentType   string          `json:"tipoPago"`
	Items         []SaleLineItem  `json:"productos"`
	Total         decimal.Decimal `json:"total"`
	Profit        decimal.Decimal `json:"ganancia"`
	Date          time.Time       `json:"fecha"`
	Time          string          `json:"hora"`
	Paid          bool            `json:"pagada"`
}

// IsUnpaidCredit indica si la venta es a crédito y sigue pendiente.
func (s Sale) IsUnpaidCredit() bool {
	return s.PaymentType == PaymentCredit && !s.Paid
}

// Cost suma el costo de todas las líneas.
func (s Sale) Cost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Cost())
	}
	return total
}

// Clone devuelve una copia independiente de la venta (incluida la lista de líneas).
func (s Sale) Clone() Sale {
	out := s
	out.Items = append([]SaleLineItem(nil), s.Items...)
	return out
}
