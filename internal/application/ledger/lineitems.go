package ledger

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// ParseLineItems interpreta la captura libre "id:cantidad, id:cantidad, ...".
// Tolera espacios y descarta en silencio los pares mal formados: segmentos vacíos,
// sin ':' , id o cantidad no numéricos y cantidades <= 0.
func ParseLineItems(input string) []entity.LineItem {
	out := []entity.LineItem{}
	if strings.TrimSpace(input) == "" {
		return out
	}
	for _, pair := range strings.Split(input, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idStr, qtyStr, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil || qty <= 0 {
			continue
		}
		out = append(out, entity.LineItem{ProductID: id, Quantity: qty})
	}
	return out
}

// TotalForLineItems suma precio de venta por cantidad. Las líneas cuyo producto
// ya no existe (o está inactivo) aportan cero.
func (l *Ledger) TotalForLineItems(items []entity.LineItem) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalForLineItems(items)
}

func (l *Ledger) totalForLineItems(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if p := l.findProductByID(it.ProductID); p != nil {
			total = total.Add(p.SalePrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return total
}

// ProfitForLineItems suma (precio de venta - costo) por cantidad, con la misma
// tolerancia a productos inexistentes que TotalForLineItems.
func (l *Ledger) ProfitForLineItems(items []entity.LineItem) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.profitForLineItems(items)
}

func (l *Ledger) profitForLineItems(items []entity.LineItem) decimal.Decimal {
	profit := decimal.Zero
	for _, it := range items {
		if p := l.findProductByID(it.ProductID); p != nil {
			profit = profit.Add(p.UnitMargin().Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return profit
}

// PreviewLine línea de la vista previa de una venta.
type PreviewLine struct {
	ProductID int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// SalePreview total calculado antes de registrar la venta.
type SalePreview struct {
	Lines []PreviewLine
	Total decimal.Decimal
}
