package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// RecordSaleInput datos de una venta. CustomerFolio es opcional en ventas de contado.
type RecordSaleInput struct {
	CustomerFolio string
	PaymentType   string // cash | credit
	Items         string // "id:cantidad, id:cantidad"
}

// RecordSale registra una venta. Todas las líneas se validan (existencia y stock)
// antes de cualquier mutación: la venta se registra completa o no se registra.
func (l *Ledger) RecordSale(ctx context.Context, in RecordSaleInput) (*entity.Sale, error) {
	l.mu.Lock()
	defer l.unlockAndNotify()

	folio := strings.TrimSpace(in.CustomerFolio)
	items := ParseLineItems(in.Items)

	switch in.PaymentType {
	case entity.PaymentCash, entity.PaymentCredit:
	default:
		return nil, fmt.Errorf("%w: tipo de pago desconocido %q", domain.ErrValidation, in.PaymentType)
	}
	if in.PaymentType == entity.PaymentCredit && folio == "" {
		return nil, fmt.Errorf("%w: el folio es obligatorio para ventas a crédito", domain.ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: formato de productos inválido", domain.ErrValidation)
	}

	// Pre-validación: ninguna línea muta el inventario hasta que todas pasan.
	// Las líneas repetidas de un mismo producto se acumulan contra su stock.
	requested := make(map[int]int, len(items))
	lines := make([]entity.SaleLineItem, 0, len(items))
	for _, it := range items {
		p := l.findProductByID(it.ProductID)
		if p == nil {
			return nil, fmt.Errorf("%w: producto con ID %d no existe", domain.ErrNotFound, it.ProductID)
		}
		requested[p.ID] += it.Quantity
		if requested[p.ID] > p.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Available: p.Quantity,
				Requested: requested[p.ID],
			}
		}
		lines = append(lines, entity.SaleLineItem{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			Name:      p.Name,
			UnitPrice: p.SalePrice,
			UnitCost:  p.CostPrice,
		})
	}

	total, profit := decimal.Zero, decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
		profit = profit.Add(line.Subtotal().Sub(line.Cost()))
	}

	if folio == "" {
		folio = entity.CashFolio
	}
	now := l.now()
	sale := entity.Sale{
		ID:            l.nextSaleID,
		CustomerFolio: folio,
		PaymentType:   in.PaymentType,
		Items:         lines,
		Total:         total,
		Profit:        profit,
		Date:          dayOf(now),
		Time:          now.Format("15:04:05"),
		Paid:          in.PaymentType == entity.PaymentCash,
	}
	l.nextSaleID++
	l.sales = append(l.sales, sale.Clone())

	l.applySaleEffects(sale)

	l.logActivity(entity.ActivityEntry{
		Kind:    entity.ActivitySaleRecorded,
		Message: fmt.Sprintf("Nueva venta registrada: $%s", total.StringFixed(2)),
		Sale: &entity.SaleRecordedPayload{
			SaleID:        sale.ID,
			CustomerFolio: sale.CustomerFolio,
			PaymentType:   sale.PaymentType,
			Total:         sale.Total,
			Lines:         len(sale.Items),
		},
	})
	l.log.Debug().
		Int("sale_id", sale.ID).
		Str("folio", sale.CustomerFolio).
		Str("tipo_pago", sale.PaymentType).
		Str("total", sale.Total.StringFixed(2)).
		Msg("venta registrada")

	l.persist(ctx)
	return &sale, nil
}

// applySaleEffects descuenta stock, acumula unidades vendidas y actualiza al cliente.
func (l *Ledger) applySaleEffects(sale entity.Sale) {
	for _, line := range sale.Items {
		p := l.findProductByID(line.ProductID)
		if p == nil {
			continue
		}
		p.UnitsSold += line.Quantity
		p.Quantity -= line.Quantity
		if p.Quantity < 0 {
			p.Quantity = 0
		}
	}
	if sale.CustomerFolio == entity.CashFolio {
		return
	}
	if c := l.findCustomerByFolio(sale.CustomerFolio); c != nil {
		c.TotalPurchases = c.TotalPurchases.Add(sale.Total)
		date := sale.Date
		c.LastPurchase = &date
	}
}

// PreviewSale calcula el total de una captura sin validar stock ni registrar nada.
// Solo cuentan las líneas cuyo producto existe y está activo.
func (l *Ledger) PreviewSale(input string) (*SalePreview, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := ParseLineItems(input)
	preview := &SalePreview{Lines: []PreviewLine{}, Total: decimal.Zero}
	for _, it := range items {
		p := l.findProductByID(it.ProductID)
		if p == nil {
			continue
		}
		subtotal := p.SalePrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		preview.Lines = append(preview.Lines, PreviewLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.SalePrice,
			Subtotal:  subtotal,
		})
		preview.Total = preview.Total.Add(subtotal)
	}
	if len(preview.Lines) == 0 {
		return nil, fmt.Errorf("%w: no se encontraron productos válidos", domain.ErrValidation)
	}
	return preview, nil
}
