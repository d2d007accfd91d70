package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxActivityEntries tamaño del buffer de actividad (las más recientes primero).
const MaxActivityEntries = 50

// ActivityKind identifica qué payload acompaña a una entrada de actividad.
type ActivityKind string

const (
	ActivityCustomerAdded ActivityKind = "customer-added"
	ActivityProductAdded  ActivityKind = "product-added"
	ActivityStockAdjusted ActivityKind = "stock-adjusted"
	ActivitySaleRecorded  ActivityKind = "sale-recorded"
	ActivitySystem        ActivityKind = "system"
)

// Categorías visibles en el panel de notificaciones.
const (
	CategoryCustomer  = "cliente"
	CategoryInventory = "inventario"
	CategorySale      = "venta"
	CategorySystem    = "system"
)

// Dirección de un ajuste de stock.
const (
	StockAdd    = "agregar"
	StockRemove = "quitar"
)

// CustomerAddedPayload cliente dado de alta.
type CustomerAddedPayload struct {
	CustomerID int    `json:"clienteId"`
	Name       string `json:"nombre"`
	Folio      string `json:"folio"`
}

// ProductAddedPayload producto nuevo en el catálogo.
type ProductAddedPayload struct {
	ProductID int             `json:"productoId"`
	Name      string          `json:"nombre"`
	SalePrice decimal.Decimal `json:"precioVenta"`
	Quantity  int             `json:"cantidad"`
}

// StockAdjustedPayload cambio de existencias sobre un producto existente.
type StockAdjustedPayload struct {
	ProductID   int    `json:"productoId"`
	Name        string `json:"nombre"`
	Change      int    `json:"cambio"`
	Direction   string `json:"tipo"` // agregar | quitar
	NewQuantity int    `json:"cantidad"`
}

// SaleRecordedPayload venta registrada.
type SaleRecordedPayload struct {
	SaleID        int             `json:"ventaId"`
	CustomerFolio string          `json:"folioCliente"`
	PaymentType   string          `json:"tipoPago"`
	Total         decimal.Decimal `json:"total"`
	Lines         int             `json:"lineas"`
}

// ActivityEntry entrada del registro de actividad.
// Según Kind, exactamente uno de los payloads está presente (system no lleva ninguno).
type ActivityEntry struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Category  string       `json:"tipo"`
	Message   string       `json:"mensaje"`
	Timestamp time.Time    `json:"timestamp"`
	Read      bool         `json:"leida"`

	Customer *CustomerAddedPayload `json:"cliente,omitempty"`
	Product  *ProductAddedPayload  `json:"producto,omitempty"`
	Stock    *StockAdjustedPayload `json:"stock,omitempty"`
	Sale     *SaleRecordedPayload  `json:"venta,omitempty"`
}
