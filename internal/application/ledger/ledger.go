// Package ledger contiene el libro de la tienda: clientes, productos, ventas,
// actividad y las reglas de negocio que los relacionan (stock, crédito, reportes).
//
// Todas las operaciones se serializan con un mutex: las secuencias
// verificar-y-actuar (folio único, pre-validación de stock) asumen acceso exclusivo.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
	"github.com/jhoicas/dany-shop/internal/domain/repository"
)

// Valores por defecto de las reglas de negocio.
const (
	DefaultDebtGraceDays     = 7
	DefaultLowStockThreshold = 10
)

// Config reglas configurables del libro.
type Config struct {
	DebtGraceDays     int
	LowStockThreshold int
}

// DefaultConfig devuelve la configuración por defecto.
func DefaultConfig() Config {
	return Config{DebtGraceDays: DefaultDebtGraceDays, LowStockThreshold: DefaultLowStockThreshold}
}

// Option personaliza el Ledger al construirlo.
type Option func(*Ledger)

// WithClock inyecta el reloj (tests con fechas fijas).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger inyecta el logger estructurado.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// Ledger es el dueño exclusivo de todas las colecciones de la tienda.
type Ledger struct {
	mu   sync.Mutex
	repo repository.LedgerRepository
	cfg  Config
	now  func() time.Time
	log  zerolog.Logger

	customers []entity.Customer
	products  []entity.Product
	sales     []entity.Sale
	activity  []entity.ActivityEntry
	settings  entity.Settings
	metrics   entity.Metrics

	nextCustomerID int
	nextProductID  int
	nextSaleID     int

	observers []func(entity.Metrics)
	notify    bool // hubo un guardado exitoso desde el último aviso
}

// New construye un Ledger vacío. Llamar Load para restaurar el estado persistido.
func New(repo repository.LedgerRepository, cfg Config, opts ...Option) *Ledger {
	l := &Ledger{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.reset()
	return l
}

// Subscribe registra un observador que se invoca después de cada guardado exitoso,
// una vez liberado el lock. Puede leer del Ledger.
func (l *Ledger) Subscribe(fn func(entity.Metrics)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// Load restaura el estado desde el repositorio. Si falla o no hay datos,
// inicializa colecciones vacías y configuración por defecto.
func (l *Ledger) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.repo.Load(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("no se pudo cargar el snapshot, se inicia vacío")
		l.reset()
		return
	}
	if snap == nil {
		l.log.Info().Msg("sin datos persistidos, se inicia vacío")
		l.reset()
		return
	}

	l.customers = append([]entity.Customer{}, snap.Customers...)
	l.products = append([]entity.Product{}, snap.Products...)
	l.sales = make([]entity.Sale, 0, len(snap.Sales))
	for _, s := range snap.Sales {
		l.sales = append(l.sales, s.Clone())
	}
	l.activity = append([]entity.ActivityEntry{}, snap.Activity...)
	if len(l.activity) > entity.MaxActivityEntries {
		l.activity = l.activity[:entity.MaxActivityEntries]
	}
	l.settings = entity.DefaultSettings()
	if snap.Settings != nil && snap.Settings.Theme != "" {
		l.settings = *snap.Settings
	}
	l.refreshMetrics()
	l.initIDs()

	l.log.Info().
		Int("clientes", len(l.customers)).
		Int("productos", len(l.products)).
		Int("ventas", len(l.sales)).
		Msg("snapshot cargado")
}

// Save recalcula las métricas, persiste el snapshot y notifica a los observadores.
// Las operaciones de negocio ignoran el error (queda registrado en el log);
// quien llame Save directamente lo recibe.
func (l *Ledger) Save(ctx context.Context) error {
	l.mu.Lock()
	defer l.unlockAndNotify()
	return l.save(ctx)
}

func (l *Ledger) save(ctx context.Context) error {
	l.refreshMetrics()
	settings := l.settings
	snap := &entity.Snapshot{
		Customers:   append([]entity.Customer{}, l.customers...),
		Products:    append([]entity.Product{}, l.products...),
		Sales:       l.cloneSales(l.sales),
		Settings:    &settings,
		Metrics:     l.metrics,
		Activity:    append([]entity.ActivityEntry{}, l.activity...),
		LastUpdated: l.now().UTC(),
	}
	if err := l.repo.Save(ctx, snap); err != nil {
		l.log.Error().Err(err).Msg("error guardando datos")
		return fmt.Errorf("guardar snapshot: %w", err)
	}
	l.notify = true
	return nil
}

// unlockAndNotify libera el mutex y avisa a los observadores si hubo guardado.
// Reemplaza a l.mu.Unlock() en las operaciones que persisten.
func (l *Ledger) unlockAndNotify() {
	if !l.notify {
		l.mu.Unlock()
		return
	}
	l.notify = false
	metrics := l.metrics
	observers := append([]func(entity.Metrics){}, l.observers...)
	l.mu.Unlock()

	for _, fn := range observers {
		fn(metrics)
	}
}

// persist guarda tras una mutación; el fallo se registra y se descarta.
func (l *Ledger) persist(ctx context.Context) {
	_ = l.save(ctx)
}

func (l *Ledger) reset() {
	l.customers = []entity.Customer{}
	l.products = []entity.Product{}
	l.sales = []entity.Sale{}
	l.activity = []entity.ActivityEntry{}
	l.settings = entity.DefaultSettings()
	l.metrics = entity.Metrics{TotalProfit: decimal.Zero}
	l.initIDs()
}

func (l *Ledger) refreshMetrics() {
	m := entity.Metrics{SalesCount: len(l.sales), TotalProfit: decimal.Zero}
	for _, c := range l.customers {
		if c.Active {
			m.ActiveCustomers++
		}
	}
	for _, p := range l.products {
		if p.Active {
			m.ActiveProducts++
		}
	}
	for _, s := range l.sales {
		m.TotalProfit = m.TotalProfit.Add(s.Profit)
	}
	l.metrics = m
}

func (l *Ledger) initIDs() {
	l.nextCustomerID, l.nextProductID, l.nextSaleID = 1, 1, 1
	for _, c := range l.customers {
		if c.ID >= l.nextCustomerID {
			l.nextCustomerID = c.ID + 1
		}
	}
	for _, p := range l.products {
		if p.ID >= l.nextProductID {
			l.nextProductID = p.ID + 1
		}
	}
	for _, s := range l.sales {
		if s.ID >= l.nextSaleID {
			l.nextSaleID = s.ID + 1
		}
	}
}

// today devuelve la fecha de hoy (UTC, medianoche).
func (l *Ledger) today() time.Time {
	return dayOf(l.now())
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (l *Ledger) cloneSales(in []entity.Sale) []entity.Sale {
	out := make([]entity.Sale, 0, len(in))
	for _, s := range in {
		out = append(out, s.Clone())
	}
	return out
}

// ── Lecturas (copias) ─────────────────────────────────────────────────────────

// Customers devuelve todos los clientes (activos e inactivos).
func (l *Ledger) Customers() []entity.Customer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entity.Customer{}, l.customers...)
}

// Products devuelve todos los productos.
func (l *Ledger) Products() []entity.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entity.Product{}, l.products...)
}

// Sales devuelve las ventas en orden de registro.
func (l *Ledger) Sales() []entity.Sale {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cloneSales(l.sales)
}

// FindSaleByID busca una venta por id.
func (l *Ledger) FindSaleByID(id int) *entity.Sale {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.sales {
		if s.ID == id {
			out := s.Clone()
			return &out
		}
	}
	return nil
}

// Settings devuelve la configuración actual.
func (l *Ledger) Settings() entity.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// Metrics devuelve las métricas calculadas en el último guardado o carga.
func (l *Ledger) Metrics() entity.Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metrics
}
