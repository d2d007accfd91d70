package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// ReportQuery parámetros comunes de los reportes.
type ReportQuery struct {
	Period    string `query:"period" validate:"omitempty,oneof=today week month year all"`
	Direction string `query:"direction" validate:"omitempty,oneof=most least"`
}

// StatsResponse contadores del tablero.
type StatsResponse struct {
	ActiveCustomers int             `json:"clientesActivos"`
	ActiveProducts  int             `json:"productosActivos"`
	SalesCount      int             `json:"ventasTotales"`
	OutstandingDebt decimal.Decimal `json:"deudaPendiente"`
	SalesLastWeek   int             `json:"ventasSemana"`
	LowStockCount   int             `json:"stockBajo"`
	OutOfStockCount int             `json:"sinStock"`
	TotalProfit     decimal.Decimal `json:"gananciasTotales"`
}

// TopProductResponse producto más o menos vendido. Product es nil si ya no está activo.
type TopProductResponse struct {
	Period    string          `json:"periodo"`
	Direction string          `json:"direccion"`
	ProductID int             `json:"id"`
	Name      string          `json:"nombre"`
	Quantity  int             `json:"cantidad"`
	Product   *entity.Product `json:"producto,omitempty"`
}

// FinancialResponse análisis financiero de un periodo.
type FinancialResponse struct {
	Period      string          `json:"periodo"`
	Investment  decimal.Decimal `json:"inversion"`
	TotalSales  decimal.Decimal `json:"ventasTotales"`
	TotalCost   decimal.Decimal `json:"costoTotal"`
	TotalProfit decimal.Decimal `json:"gananciaTotal"`
	Margin      decimal.Decimal `json:"margen"`
	SalesCount  int             `json:"numeroVentas"`
}
