// Package pdf genera el ticket de venta de DANY-SHOP.
//
// Layout de la página A6:
//
//	┌───────────────────────────────────────┐
//	│  DANY-SHOP            Venta #N         │
//	│                       fecha  hora      │
//	│  ───────────────────────────────────── │
//	│  Cliente / Folio / Tipo de pago        │
//	│  ───────────────────────────────────── │
//	│  Cant | Producto | P.Unit | Subtotal   │
//	│  ───────────────────────────────────── │
//	│  TOTAL                                 │
//	│  QR + leyenda                          │
//	└───────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/application/ports"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

var _ ports.TicketPDFGenerator = (*TicketGenerator)(nil)

// StoreName encabezado del ticket y prefijo del contenido del QR.
const StoreName = "DANY-SHOP"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 142, Green: 36, Blue: 170}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// TicketGenerator implementa ports.TicketPDFGenerator usando Maroto v2.
type TicketGenerator struct{}

// NewTicketGenerator construye el generador.
func NewTicketGenerator() *TicketGenerator { return &TicketGenerator{} }

// GenerateSaleTicket genera el PDF del ticket y devuelve sus bytes.
func (g *TicketGenerator) GenerateSaleTicket(_ context.Context, sale *entity.Sale, customer *entity.Customer) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(fmt.Sprintf("Ticket de venta #%d", sale.ID), true).
		WithAuthor(StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	m.AddRows(line.NewRow(2))
	m.AddRows(qrRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// QRContent contenido del código QR: DANY-SHOP|<id>|<total>|<fecha>.
func QRContent(sale *entity.Sale) string {
	return strings.Join([]string{
		StoreName,
		fmt.Sprint(sale.ID),
		sale.Total.StringFixed(2),
		sale.Date.Format("2006-01-02"),
	}, "|")
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sale *entity.Sale) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New(StoreName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Venta #%d", sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(sale.Date.Format("02/01/2006")+"  "+sale.Time, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func customerRow(sale *entity.Sale, customer *entity.Customer) core.Row {
	name := "Venta de contado"
	if customer != nil {
		name = customer.Name
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(fmt.Sprintf("Folio: %s   |   Pago: %s",
				nonEmpty(sale.CustomerFolio, entity.CashFolio),
				paymentLabel(sale.PaymentType),
			), props.Text{Size: 7, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P.Unit", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableDetailRows(items []entity.SaleLineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(5).Add(
			col.New(2).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 7, Align: align.Center})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 7, Align: align.Left})),
			col.New(2).Add(text.New("$"+formatMoney(it.UnitPrice), props.Text{Size: 7, Align: align.Right})),
			col.New(3).Add(text.New("$"+formatMoney(it.Subtotal()), props.Text{Size: 7, Align: align.Right})),
		))
	}
	return result
}

func totalRow(sale *entity.Sale) core.Row {
	style := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1}
	return row.New(8).Add(
		col.New(7).Add(text.New("TOTAL:", style)),
		col.New(5).Add(text.New("$"+formatMoney(sale.Total), style)),
	)
}

func qrRow(sale *entity.Sale) core.Row {
	legend := "¡Gracias por su compra!"
	if sale.IsUnpaidCredit() {
		legend = "Venta a crédito pendiente de pago."
	}
	return row.New(30).Add(
		col.New(5).Add(code.NewQr(QRContent(sale), props.Rect{Percent: 95, Center: true})),
		col.New(7).Add(
			text.New(legend, props.Text{Style: fontstyle.Bold, Size: 8, Top: 6, Left: 2, Color: colorPrimary}),
			text.New("Conserve este ticket como comprobante.", props.Text{Size: 6.5, Top: 14, Left: 2, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paymentLabel(paymentType string) string {
	if paymentType == entity.PaymentCredit {
		return "Crédito"
	}
	return "Contado"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con dos decimales y comas de miles.
// Ej: 1234.5 → "1,234.50", -45 → "-45.00"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
