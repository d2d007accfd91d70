package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Temas de la interfaz.
const (
	ThemeLight = "claro"
	ThemeDark  = "oscuro"
)

// Settings configuración libre de la tienda (hoy solo el tema).
type Settings struct {
	Theme string `json:"tema"`
}

// DefaultSettings valores iniciales.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight}
}

// Metrics contadores derivados; se recalculan en cada guardado.
type Metrics struct {
	SalesCount      int             `json:"ventasTotales"`
	TotalProfit     decimal.Decimal `json:"gananciasTotales"`
	ActiveCustomers int             `json:"clientesActivos"`
	ActiveProducts  int             `json:"productosActivos"`
}

// Snapshot es el registro persistido completo de la tienda.
type Snapshot struct {
	Customers   []Customer      `json:"customers"`
	Products    []Product       `json:"products"`
	Sales       []Sale          `json:"sales"`
	Settings    *Settings       `json:"configuracion,omitempty"`
	Metrics     Metrics         `json:"metricas"`
	Activity    []ActivityEntry `json:"actividad"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
