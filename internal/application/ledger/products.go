package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/dany-shop/internal/domain"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// Filtros del listado de inventario.
const (
	FilterAll        = "all"
	FilterLowStock   = "low-stock"
	FilterOutOfStock = "out-of-stock"
)

// AddProductInput datos de alta o reabastecimiento. Quantity es un delta (puede ser negativo).
type AddProductInput struct {
	Name      string
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
	Quantity  int
}

// AddProduct crea un producto o, si ya existe uno activo con el mismo nombre
// (sin distinguir mayúsculas), sobrescribe sus precios y suma el delta de cantidad.
func (l *Ledger) AddProduct(ctx context.Context, in AddProductInput) (*entity.Product, error) {
	l.mu.Lock()
	defer l.unlockAndNotify()

	p, err := l.addProduct(in)
	if err != nil {
		return nil, err
	}
	l.persist(ctx)
	return &p, nil
}

func (l *Ledger) addProduct(in AddProductInput) (entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entity.Product{}, fmt.Errorf("%w: el nombre del producto es obligatorio", domain.ErrValidation)
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return entity.Product{}, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrValidation)
	}

	if existing := l.findProductByName(name); existing != nil {
		existing.CostPrice = in.CostPrice
		existing.SalePrice = in.SalePrice
		existing.Quantity += in.Quantity
		if existing.Quantity < 0 {
			existing.Quantity = 0
		}
		if in.Quantity != 0 {
			dir, sign := entity.StockAdd, "+"
			if in.Quantity < 0 {
				dir, sign = entity.StockRemove, ""
			}
			l.logActivity(entity.ActivityEntry{
				Kind:    entity.ActivityStockAdjusted,
				Message: fmt.Sprintf("Stock actualizado: %s (%s%d)", name, sign, in.Quantity),
				Stock: &entity.StockAdjustedPayload{
					ProductID:   existing.ID,
					Name:        existing.Name,
					Change:      in.Quantity,
					Direction:   dir,
					NewQuantity: existing.Quantity,
				},
			})
		}
		l.log.Debug().Int("product_id", existing.ID).Int("delta", in.Quantity).Msg("producto actualizado")
		return *existing, nil
	}

	p := entity.Product{
		ID:        l.nextProductID,
		Name:      name,
		CostPrice: in.CostPrice,
		SalePrice: in.SalePrice,
		Quantity:  max(0, in.Quantity),
		Active:    true,
		CreatedAt: l.today(),
	}
	l.nextProductID++
	l.products = append(l.products, p)

	l.logActivity(entity.ActivityEntry{
		Kind:    entity.ActivityProductAdded,
		Message: fmt.Sprintf("Nuevo producto agregado: %s", name),
		Product: &entity.ProductAddedPayload{
			ProductID: p.ID,
			Name:      p.Name,
			SalePrice: p.SalePrice,
			Quantity:  p.Quantity,
		},
	})
	l.log.Debug().Int("product_id", p.ID).Str("nombre", p.Name).Msg("producto creado")
	return p, nil
}

func (l *Ledger) findProductByName(name string) *entity.Product {
	fold := cases.Fold()
	key := fold.String(name)
	for i := range l.products {
		if l.products[i].Active && fold.String(l.products[i].Name) == key {
			return &l.products[i]
		}
	}
	return nil
}

// FindProductByID busca un producto activo por id.
func (l *Ledger) FindProductByID(id int) *entity.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p := l.findProductByID(id); p != nil {
		out := *p
		return &out
	}
	return nil
}

func (l *Ledger) findProductByID(id int) *entity.Product {
	for i := range l.products {
		if l.products[i].ID == id && l.products[i].Active {
			return &l.products[i]
		}
	}
	return nil
}

// LowStockProducts productos activos con cantidad menor o igual al umbral de stock bajo.
func (l *Ledger) LowStockProducts() []entity.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lowStockProducts()
}

func (l *Ledger) lowStockProducts() []entity.Product {
	out := []entity.Product{}
	for _, p := range l.products {
		if p.Active && p.Quantity <= l.cfg.LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// OutOfStockProducts productos activos sin existencias.
func (l *Ledger) OutOfStockProducts() []entity.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outOfStockProducts()
}

func (l *Ledger) outOfStockProducts() []entity.Product {
	out := []entity.Product{}
	for _, p := range l.products {
		if p.Active && p.Quantity == 0 {
			out = append(out, p)
		}
	}
	return out
}

// SearchProducts busca entre los productos activos por nombre (sin distinguir
// mayúsculas) o por subcadena del id. Un término vacío devuelve todos los activos.
func (l *Ledger) SearchProducts(term string) []entity.Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	term = strings.TrimSpace(term)
	fold := cases.Fold()
	key := fold.String(term)
	out := []entity.Product{}
	for _, p := range l.products {
		if !p.Active {
			continue
		}
		if term == "" ||
			strings.Contains(fold.String(p.Name), key) ||
			strings.Contains(strconv.Itoa(p.ID), term) {
			out = append(out, p)
		}
	}
	return out
}

// FilterProducts aplica un filtro de inventario sobre una lista ya obtenida.
// Modos desconocidos se tratan como FilterAll; el handler HTTP los rechaza antes.
func (l *Ledger) FilterProducts(products []entity.Product, mode string) []entity.Product {
	threshold := l.cfg.LowStockThreshold
	out := []entity.Product{}
	for _, p := range products {
		switch mode {
		case FilterLowStock:
			if p.Quantity <= threshold {
				out = append(out, p)
			}
		case FilterOutOfStock:
			if p.Quantity == 0 {
				out = append(out, p)
			}
		default:
			out = append(out, p)
		}
	}
	return out
}
