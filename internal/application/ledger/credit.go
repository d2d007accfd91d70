package ledger

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// CustomerWithDebt cliente con ventas a crédito vencidas.
type CustomerWithDebt struct {
	Customer    entity.Customer
	Debt        decimal.Decimal // todas sus ventas a crédito sin pagar
	DaysOverdue int             // calculado desde la venta vencida que lo incluyó
}

// IsOverdue indica si una venta de esa fecha ya superó los días de gracia:
// los días 0..N son de gracia y el atraso empieza el día N+1.
func (l *Ledger) IsOverdue(saleDate time.Time) bool {
	return l.isOverdue(saleDate)
}

func (l *Ledger) isOverdue(saleDate time.Time) bool {
	limit := dayOf(saleDate).AddDate(0, 0, l.cfg.DebtGraceDays)
	return l.today().After(limit)
}

// DaysOverdue devuelve ceil((ahora - fecha) / 1 día) - días de gracia.
// No se acota: para ventas que no están en atraso puede ser cero o negativo.
func (l *Ledger) DaysOverdue(saleDate time.Time) int {
	return l.daysOverdue(saleDate)
}

func (l *Ledger) daysOverdue(saleDate time.Time) int {
	elapsed := l.now().Sub(saleDate)
	days := int(math.Ceil(elapsed.Hours() / 24))
	return days - l.cfg.DebtGraceDays
}

// CustomersOverdue lista los clientes activos con alguna venta a crédito vencida,
// sin repetir folio y en el orden en que aparece su primera venta vencida.
func (l *Ledger) CustomersOverdue() []CustomerWithDebt {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []CustomerWithDebt{}
	seen := make(map[string]bool)
	for _, s := range l.sales {
		if !s.IsUnpaidCredit() || !l.isOverdue(s.Date) {
			continue
		}
		c := l.findCustomerByFolio(s.CustomerFolio)
		if c == nil || seen[c.Folio] {
			continue
		}
		seen[c.Folio] = true
		out = append(out, CustomerWithDebt{
			Customer:    *c,
			Debt:        l.outstandingDebt(c.Folio),
			DaysOverdue: l.daysOverdue(s.Date),
		})
	}
	return out
}

// CustomersWithAvailableCredit clientes activos con al menos una venta a crédito
// sin pagar que todavía está dentro del periodo de gracia.
func (l *Ledger) CustomersWithAvailableCredit() []entity.Customer {
	l.mu.Lock()
	defer l.mu.Unlock()

	folios := make(map[string]bool)
	for _, s := range l.sales {
		if s.IsUnpaidCredit() && !l.isOverdue(s.Date) {
			folios[s.CustomerFolio] = true
		}
	}
	out := []entity.Customer{}
	for _, c := range l.customers {
		if c.Active && folios[c.Folio] {
			out = append(out, c)
		}
	}
	return out
}

func (l *Ledger) outstandingDebt(folio string) decimal.Decimal {
	debt := decimal.Zero
	for _, s := range l.sales {
		if s.CustomerFolio == folio && s.IsUnpaidCredit() {
			debt = debt.Add(s.Total)
		}
	}
	return debt
}
