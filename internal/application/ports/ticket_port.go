package ports

import (
	"context"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// TicketPDFGenerator define el puerto de salida para imprimir el ticket de una venta.
// customer es nil en ventas de contado sin cliente.
type TicketPDFGenerator interface {
	GenerateSaleTicket(ctx context.Context, sale *entity.Sale, customer *entity.Customer) ([]byte, error)
}
