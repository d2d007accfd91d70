package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/domain"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
	"github.com/jhoicas/dany-shop/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCustomer(t *testing.T) {
	l, _, _ := newLedger(t)

	c := mustCustomer(t, l, "  Ana García ", " CLI-001 ")
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "Ana García", c.Name)
	assert.Equal(t, "CLI-001", c.Folio)
	assert.True(t, c.Active)
	assert.True(t, c.TotalPurchases.IsZero())
	assert.Nil(t, c.LastPurchase)
	assert.Equal(t, "2025-03-14", c.RegisteredAt.Format("2006-01-02"))

	act := l.Activity()[0]
	assert.Equal(t, "Nuevo cliente registrado: Ana García (CLI-001)", act.Message)
	assert.False(t, act.Read)
}

func TestAddCustomer_Validacion(t *testing.T) {
	l, _, _ := newLedger(t)

	_, err := l.AddCustomer(context.Background(), ledger.AddCustomerInput{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = l.AddCustomer(context.Background(), ledger.AddCustomerInput{Name: "  ", Folio: "CLI-001"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, l.Customers())
}

func TestAddCustomer_FolioDuplicado(t *testing.T) {
	l, _, _ := newLedger(t)
	mustCustomer(t, l, "Ana", "CLI-001")

	_, err := l.AddCustomer(context.Background(), ledger.AddCustomerInput{Name: "Otra Ana", Folio: "CLI-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	assert.Len(t, l.Customers(), 1)
}

func TestAddCustomer_FolioDeClienteInactivo(t *testing.T) {
	repo := memory.NewLedgerRepository()
	require.NoError(t, repo.Save(context.Background(), &entity.Snapshot{
		Customers: []entity.Customer{{ID: 1, Name: "Baja", Folio: "CLI-001", Active: false}},
	}))
	l := ledger.New(repo, ledger.DefaultConfig())
	l.Load(context.Background())

	assert.Nil(t, l.FindCustomerByFolio("CLI-001"), "los inactivos no se encuentran")

	_, err := l.AddCustomer(context.Background(), ledger.AddCustomerInput{Name: "Nueva", Folio: "CLI-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	_, err = l.DebtByFolio("CLI-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDebtByFolioYPurchaseHistory(t *testing.T) {
	l, _, _ := newLedger(t)
	mustCustomer(t, l, "Ana", "CLI-001")
	mustProduct(t, l, "Arroz", "10", "15", 20)
	mustSale(t, l, "CLI-001", entity.PaymentCredit, "1:2")
	mustSale(t, l, "CLI-001", entity.PaymentCash, "1:1")
	mustSale(t, l, "CLI-001", entity.PaymentCredit, "1:1")

	st, err := l.DebtByFolio(" CLI-001 ")
	require.NoError(t, err)
	assert.True(t, st.Debt.Equal(dec("45")))
	assert.Equal(t, 2, st.PendingSales)
	assert.True(t, st.HasDebt())

	history := l.PurchaseHistory("CLI-001")
	require.Len(t, history, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{history[0].ID, history[1].ID, history[2].ID})

	assert.Empty(t, l.PurchaseHistory("CLI-404"))
	_, err = l.DebtByFolio("CLI-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDebtByFolio_SinDeuda(t *testing.T) {
	l, _, _ := newLedger(t)
	mustCustomer(t, l, "Ana", "CLI-001")

	st, err := l.DebtByFolio("CLI-001")
	require.NoError(t, err)
	assert.False(t, st.HasDebt())
	assert.Equal(t, 0, st.PendingSales)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_Nuevo(t *testing.T) {
	l, _, _ := newLedger(t)

	p := mustProduct(t, l, " Arroz ", "10", "15", 5)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Arroz", p.Name)
	assert.True(t, p.Active)
	assert.Equal(t, 0, p.UnitsSold)
	assert.True(t, p.UnitMargin().Equal(dec("5")))
	assert.True(t, p.Investment().Equal(dec("50")))

	act := l.Activity()[0]
	assert.Equal(t, entity.ActivityProductAdded, act.Kind)
	assert.Equal(t, entity.CategoryInventory, act.Category)
	require.NotNil(t, act.Product)
	assert.Equal(t, 5, act.Product.Quantity)
}

func TestAddProduct_MismoNombreActualiza(t *testing.T) {
	l, _, _ := newLedger(t)
	mustProduct(t, l, "Rice", "10", "15", 5)

	p := mustProduct(t, l, "rice", "11", "16", 3)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Rice", p.Name, "se conserva el nombre original")
	assert.Equal(t, 8, p.Quantity)
	assert.True(t, p.CostPrice.Equal(dec("11")))
	assert.True(t, p.SalePrice.Equal(dec("16")))
	assert.Len(t, l.Products(), 1)

	act := l.Activity()[0]
	assert.Equal(t, entity.ActivityStockAdjusted, act.Kind)
	assert.Equal(t, "Stock actualizado: rice (+3)", act.Message)
	require.NotNil(t, act.Stock)
	assert.Equal(t, entity.StockAdd, act.Stock.Direction)
	assert.Equal(t, 8, act.Stock.NewQuantity)
}

func TestAddProduct_DeltaNegativoSeAcotaACero(t *testing.T) {
	l, _, _ := newLedger(t)
	mustProduct(t, l, "Rice", "10", "15", 5)

	p := mustProduct(t, l, "RICE", "10", "15", -9)
	assert.Equal(t, 0, p.Quantity)

	act := l.Activity()[0]
	require.NotNil(t, act.Stock)
	assert.Equal(t, entity.StockRemove, act.Stock.Direction)
	assert.Equal(t, -9, act.Stock.Change)
	assert.Equal(t, "Stock actualizado: RICE (-9)", act.Message)
}

func TestAddProduct_DeltaCeroNoRegistraAjuste(t *testing.T) {
	l, _, _ := newLedger(t)
	mustProduct(t, l, "Rice", "10", "15", 5)
	before := len(l.Activity())

	mustProduct(t, l, "rice", "12", "18", 0)
	assert.Len(t, l.Activity(), before)
	assert.True(t, l.FindProductByID(1).SalePrice.Equal(dec("18")))
}

func TestAddProduct_Validacion(t *testing.T) {
	l, _, _ := newLedger(t)

	_, err := l.AddProduct(context.Background(), ledger.AddProductInput{Name: "", CostPrice: dec("1"), SalePrice: dec("2")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = l.AddProduct(context.Background(), ledger.AddProductInput{Name: "Arroz", CostPrice: dec("-1"), SalePrice: dec("2")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, l.Products())
}

func TestBusquedaYFiltros(t *testing.T) {
	l, _, _ := newLedger(t)
	mustProduct(t, l, "Arroz Integral", "12", "18", 25)
	mustProduct(t, l, "Café Molido", "30", "45", 8)
	mustProduct(t, l, "Leche", "15", "22", 0)
	mustProduct(t, l, "Galletas", "7", "12", 10)

	assert.Len(t, l.SearchProducts(""), 4)
	found := l.SearchProducts("CAFÉ")
	require.Len(t, found, 1)
	assert.Equal(t, "Café Molido", found[0].Name)
	assert.Len(t, l.SearchProducts("3"), 1, "coincide por id")

	low := l.LowStockProducts()
	assert.Len(t, low, 3, "el umbral es inclusivo")
	out := l.OutOfStockProducts()
	require.Len(t, out, 1)
	assert.Equal(t, "Leche", out[0].Name)

	all := l.Products()
	assert.Len(t, l.FilterProducts(all, ledger.FilterLowStock), 3)
	assert.Len(t, l.FilterProducts(all, ledger.FilterOutOfStock), 1)
	assert.Len(t, l.FilterProducts(all, ledger.FilterAll), 4)
}

func TestFilterProducts_NombresDeModo(t *testing.T) {
	l, _, _ := newLedger(t)
	mustProduct(t, l, "Arroz", "10", "15", 50)
	mustProduct(t, l, "Café", "30", "45", 3)
	all := l.Products()

	low := l.FilterProducts(all, "low-stock")
	require.Len(t, low, 1)
	assert.Equal(t, "Café", low[0].Name)
	assert.Empty(t, l.FilterProducts(all, "out-of-stock"))
	assert.Len(t, l.FilterProducts(all, "all"), 2)
}

func TestFindProductByID_Inactivo(t *testing.T) {
	repo := memory.NewLedgerRepository()
	require.NoError(t, repo.Save(context.Background(), &entity.Snapshot{
		Products: []entity.Product{{ID: 4, Name: "Descontinuado", Quantity: 3, Active: false}},
	}))
	l := ledger.New(repo, ledger.DefaultConfig())
	l.Load(context.Background())

	assert.Nil(t, l.FindProductByID(4))
	assert.Empty(t, l.SearchProducts(""))

	p := mustProduct(t, l, "Descontinuado", "1", "2", 1)
	assert.Equal(t, 5, p.ID, "un inactivo con el mismo nombre no se reutiliza")
}
