package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// AddCustomerInput datos de alta de un cliente. Phone y Email son opcionales.
type AddCustomerInput struct {
	Name  string
	Folio string
	Phone string
	Email string
}

// AddCustomer registra un cliente nuevo. El folio debe ser único entre todos
// los clientes creados, incluidos los inactivos.
func (l *Ledger) AddCustomer(ctx context.Context, in AddCustomerInput) (*entity.Customer, error) {
	l.mu.Lock()
	defer l.unlockAndNotify()

	c, err := l.addCustomer(in)
	if err != nil {
		return nil, err
	}
	l.persist(ctx)
	return &c, nil
}

func (l *Ledger) addCustomer(in AddCustomerInput) (entity.Customer, error) {
	name := strings.TrimSpace(in.Name)
	folio := strings.TrimSpace(in.Folio)
	if name == "" || folio == "" {
		return entity.Customer{}, fmt.Errorf("%w: nombre y folio son obligatorios", domain.ErrValidation)
	}
	for _, c := range l.customers {
		if c.Folio == folio {
			return entity.Customer{}, fmt.Errorf("%w: el folio %s ya existe", domain.ErrDuplicateKey, folio)
		}
	}

	c := entity.Customer{
		ID:             l.nextCustomerID,
		Name:           name,
		Folio:          folio,
		Phone:          strings.TrimSpace(in.Phone),
		Email:          strings.TrimSpace(in.Email),
		RegisteredAt:   l.today(),
		Active:         true,
		TotalPurchases: decimal.Zero,
	}
	l.nextCustomerID++
	l.customers = append(l.customers, c)

	l.logActivity(entity.ActivityEntry{
		Kind:     entity.ActivityCustomerAdded,
		Message:  fmt.Sprintf("Nuevo cliente registrado: %s (%s)", c.Name, c.Folio),
		Customer: &entity.CustomerAddedPayload{CustomerID: c.ID, Name: c.Name, Folio: c.Folio},
	})
	l.log.Debug().Int("customer_id", c.ID).Str("folio", c.Folio).Msg("cliente registrado")
	return c, nil
}

// FindCustomerByFolio busca un cliente activo con folio exacto.
func (l *Ledger) FindCustomerByFolio(folio string) *entity.Customer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c := l.findCustomerByFolio(folio); c != nil {
		out := *c
		return &out
	}
	return nil
}

func (l *Ledger) findCustomerByFolio(folio string) *entity.Customer {
	for i := range l.customers {
		if l.customers[i].Folio == folio && l.customers[i].Active {
			return &l.customers[i]
		}
	}
	return nil
}

// DebtStatement estado de cuenta de un cliente.
type DebtStatement struct {
	Customer     entity.Customer
	Debt         decimal.Decimal
	PendingSales int
}

// HasDebt indica si el cliente tiene saldo pendiente.
func (d DebtStatement) HasDebt() bool {
	return d.Debt.IsPositive()
}

// DebtByFolio consulta la deuda de un cliente activo: suma de sus ventas a crédito sin pagar.
func (l *Ledger) DebtByFolio(folio string) (*DebtStatement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	folio = strings.TrimSpace(folio)
	c := l.findCustomerByFolio(folio)
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, folio)
	}
	st := &DebtStatement{Customer: *c, Debt: decimal.Zero}
	for _, s := range l.sales {
		if s.CustomerFolio == folio && s.IsUnpaidCredit() {
			st.Debt = st.Debt.Add(s.Total)
			st.PendingSales++
		}
	}
	return st, nil
}

// PurchaseHistory devuelve todas las ventas registradas bajo el folio, en orden de registro.
func (l *Ledger) PurchaseHistory(folio string) []entity.Sale {
	l.mu.Lock()
	defer l.mu.Unlock()

	folio = strings.TrimSpace(folio)
	out := []entity.Sale{}
	for _, s := range l.sales {
		if s.CustomerFolio == folio {
			out = append(out, s.Clone())
		}
	}
	return out
}
