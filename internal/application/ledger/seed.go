package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

type sampleProduct struct {
	name      string
	cost      string
	price     string
	quantity  int
	unitsSold int
}

var sampleProducts = []sampleProduct{
	{"Arroz Integral", "12.00", "18.00", 25, 45},
	{"Frijoles Negros", "10.00", "15.00", 30, 38},
	{"Leche Deslactosada", "15.00", "22.00", 5, 52},
	{"Aceite de Oliva", "25.00", "35.00", 12, 28},
	{"Azúcar Morena", "8.00", "12.00", 40, 33},
	{"Café Molido", "30.00", "45.00", 8, 41},
	{"Galletas Integrales", "7.00", "12.00", 22, 29},
	{"Jabón Líquido", "18.00", "25.00", 15, 36},
}

var sampleCustomers = []AddCustomerInput{
	{Name: "Ana García López", Folio: "CLI-001", Phone: "555-123-4567", Email: "ana.garcia@email.com"},
	{Name: "Carlos Mendoza Ruiz", Folio: "CLI-002", Phone: "555-987-6543", Email: "carlos.mendoza@email.com"},
	{Name: "María Torres Sánchez", Folio: "CLI-003", Phone: "555-456-7890"},
	{Name: "Roberto Jiménez Flores", Folio: "CLI-004", Phone: "555-321-0987", Email: "roberto.jimenez@email.com"},
}

// SeedSampleData carga el catálogo y los clientes de ejemplo cuando las
// colecciones respectivas están vacías. Devuelve true si instaló algo.
func (l *Ledger) SeedSampleData(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.unlockAndNotify()

	seededProducts := len(l.products) == 0
	if seededProducts {
		for _, sp := range sampleProducts {
			l.products = append(l.products, entity.Product{
				ID:        l.nextProductID,
				Name:      sp.name,
				CostPrice: decimal.RequireFromString(sp.cost),
				SalePrice: decimal.RequireFromString(sp.price),
				Quantity:  sp.quantity,
				Active:    true,
				CreatedAt: l.today(),
				UnitsSold: sp.unitsSold,
			})
			l.nextProductID++
		}
	}

	seededCustomers := len(l.customers) == 0
	if seededCustomers {
		for _, in := range sampleCustomers {
			if _, err := l.addCustomer(in); err != nil {
				l.log.Error().Err(err).Str("folio", in.Folio).Msg("error agregando cliente de ejemplo")
			}
		}
	}

	if !seededProducts && !seededCustomers {
		return false, nil
	}

	l.logActivity(entity.ActivityEntry{Kind: entity.ActivitySystem, Message: "Sistema DANY-SHOP inicializado"})
	if seededProducts {
		l.logActivity(entity.ActivityEntry{Kind: entity.ActivitySystem, Category: entity.CategoryInventory, Message: "Productos de ejemplo cargados"})
	}
	if seededCustomers {
		l.logActivity(entity.ActivityEntry{Kind: entity.ActivitySystem, Category: entity.CategoryCustomer, Message: "Clientes de ejemplo registrados"})
	}
	l.log.Info().Bool("productos", seededProducts).Bool("clientes", seededCustomers).Msg("datos de ejemplo cargados")
	return true, l.save(ctx)
}
