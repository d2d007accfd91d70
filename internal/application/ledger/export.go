package ledger

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/dany-shop/internal/domain"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// Formatos de exportación.
const (
	ExportJSON = "json"
	ExportCSV  = "csv"
)

// ExportDocument contenido de una exportación completa.
type ExportDocument struct {
	Customers  []entity.Customer `json:"customers"`
	Products   []entity.Product  `json:"products"`
	Sales      []entity.Sale     `json:"sales"`
	Metrics    entity.Metrics    `json:"metrics"`
	ExportedAt time.Time         `json:"exportedAt"`
}

// Export genera un volcado de los datos en JSON (indentado) o CSV.
// El CSV contiene la tabla de clientes y luego la de productos; las ventas no se exportan.
func (l *Ledger) Export(format string) ([]byte, error) {
	l.mu.Lock()
	doc := ExportDocument{
		Customers:  append([]entity.Customer{}, l.customers...),
		Products:   append([]entity.Product{}, l.products...),
		Sales:      l.cloneSales(l.sales),
		Metrics:    l.metrics,
		ExportedAt: l.now().UTC(),
	}
	l.mu.Unlock()

	switch format {
	case ExportJSON:
		return json.MarshalIndent(doc, "", "  ")
	case ExportCSV:
		return exportCSV(doc)
	default:
		return nil, fmt.Errorf("%w: formato de exportación desconocido %q", domain.ErrValidation, format)
	}
}

func exportCSV(doc ExportDocument) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Tipo", "Datos"},
		{"Clientes"},
		{"ID", "Nombre", "Folio", "Telefono", "Email", "FechaRegistro"},
	}
	for _, c := range doc.Customers {
		records = append(records, []string{
			strconv.Itoa(c.ID), c.Name, c.Folio, c.Phone, c.Email, c.RegisteredAt.Format(time.DateOnly),
		})
	}
	records = append(records,
		[]string{},
		[]string{"Productos"},
		[]string{"ID", "Nombre", "PrecioCosto", "PrecioVenta", "Cantidad"},
	)
	for _, p := range doc.Products {
		records = append(records, []string{
			strconv.Itoa(p.ID), p.Name, p.CostPrice.String(), p.SalePrice.String(), strconv.Itoa(p.Quantity),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("exportar csv: %w", err)
	}
	return buf.Bytes(), nil
}
