package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// Periodos de los reportes.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// Dirección del ranking de productos.
const (
	DirectionMost  = "most"
	DirectionLeast = "least"
)

var hundred = decimal.NewFromInt(100)

// TopProductResult producto más (o menos) vendido en un periodo.
// Product es nil si el producto ya no está activo; Name viene de la venta.
type TopProductResult struct {
	Product   *entity.Product
	ProductID int
	Name      string
	Quantity  int
	Period    string
}

// FinancialSummary análisis financiero de un periodo.
// Investment es una foto del inventario actual y no depende del periodo.
type FinancialSummary struct {
	Period      string
	Investment  decimal.Decimal
	TotalSales  decimal.Decimal
	TotalCost   decimal.Decimal
	TotalProfit decimal.Decimal
	Margin      decimal.Decimal // porcentaje, 2 decimales
	SalesCount  int
}

// Stats contadores del tablero principal.
type Stats struct {
	ActiveCustomers int
	ActiveProducts  int
	SalesCount      int
	OutstandingDebt decimal.Decimal
	SalesLastWeek   int
	LowStockCount   int
	OutOfStockCount int
	TotalProfit     decimal.Decimal
}

// periodStart devuelve el inicio de la ventana del periodo. Periodos desconocidos
// equivalen a "todo" (desde el epoch).
func (l *Ledger) periodStart(period string) time.Time {
	now := l.now().UTC()
	switch period {
	case PeriodToday:
		return dayOf(now)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Unix(0, 0).UTC()
	}
}

func (l *Ledger) salesSince(start time.Time) []entity.Sale {
	out := []entity.Sale{}
	for _, s := range l.sales {
		if !s.Date.Before(start) {
			out = append(out, s)
		}
	}
	return out
}

// TopProduct devuelve el producto con más (DirectionMost) o menos (DirectionLeast)
// unidades vendidas en el periodo, o nil si no hay ventas en la ventana.
// Empates: gana el producto que apareció primero en el orden de registro de ventas.
func (l *Ledger) TopProduct(period, direction string) *TopProductResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	order := []int{}
	tally := make(map[int]int)
	names := make(map[int]string)
	for _, s := range l.salesSince(l.periodStart(period)) {
		for _, it := range s.Items {
			if _, ok := tally[it.ProductID]; !ok {
				order = append(order, it.ProductID)
				names[it.ProductID] = it.Name
			}
			tally[it.ProductID] += it.Quantity
		}
	}
	if len(order) == 0 {
		return nil
	}

	best := order[0]
	for _, id := range order[1:] {
		if direction == DirectionLeast {
			if tally[id] < tally[best] {
				best = id
			}
		} else if tally[id] > tally[best] {
			best = id
		}
	}

	res := &TopProductResult{ProductID: best, Name: names[best], Quantity: tally[best], Period: period}
	if p := l.findProductByID(best); p != nil {
		out := *p
		res.Product = &out
		res.Name = p.Name
	}
	return res
}

// FinancialAnalysis resume ventas, costo, ganancia y margen del periodo.
func (l *Ledger) FinancialAnalysis(period string) FinancialSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	sum := FinancialSummary{
		Period:      period,
		Investment:  decimal.Zero,
		TotalSales:  decimal.Zero,
		TotalCost:   decimal.Zero,
		TotalProfit: decimal.Zero,
		Margin:      decimal.Zero,
	}
	for _, p := range l.products {
		sum.Investment = sum.Investment.Add(p.Investment())
	}
	sales := l.salesSince(l.periodStart(period))
	for _, s := range sales {
		sum.TotalSales = sum.TotalSales.Add(s.Total)
		sum.TotalProfit = sum.TotalProfit.Add(s.Profit)
		sum.TotalCost = sum.TotalCost.Add(s.Cost())
	}
	sum.SalesCount = len(sales)
	if sum.TotalSales.IsPositive() {
		sum.Margin = sum.TotalProfit.Div(sum.TotalSales).Mul(hundred).Round(2)
	}
	return sum
}

// Stats calcula los contadores del tablero.
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := Stats{
		SalesCount:      len(l.sales),
		OutstandingDebt: decimal.Zero,
		SalesLastWeek:   len(l.salesSince(l.periodStart(PeriodWeek))),
		LowStockCount:   len(l.lowStockProducts()),
		OutOfStockCount: len(l.outOfStockProducts()),
		TotalProfit:     l.metrics.TotalProfit,
	}
	for _, c := range l.customers {
		if c.Active {
			st.ActiveCustomers++
		}
	}
	for _, p := range l.products {
		if p.Active {
			st.ActiveProducts++
		}
	}
	for _, s := range l.sales {
		if s.IsUnpaidCredit() {
			st.OutstandingDebt = st.OutstandingDebt.Add(s.Total)
		}
	}
	return st
}
