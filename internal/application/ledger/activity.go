package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/dany-shop/internal/domain"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

var kindCategory = map[entity.ActivityKind]string{
	entity.ActivityCustomerAdded: entity.CategoryCustomer,
	entity.ActivityProductAdded:  entity.CategoryInventory,
	entity.ActivityStockAdjusted: entity.CategoryInventory,
	entity.ActivitySaleRecorded:  entity.CategorySale,
	entity.ActivitySystem:        entity.CategorySystem,
}

// LogActivity antepone una entrada al registro (máximo 50, las más recientes primero).
// No persiste: el siguiente guardado la incluye.
func (l *Ledger) LogActivity(entry entity.ActivityEntry) entity.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logActivity(entry)
}

// LogSystem registra un mensaje del sistema sin payload.
func (l *Ledger) LogSystem(message string) entity.ActivityEntry {
	return l.LogActivity(entity.ActivityEntry{Kind: entity.ActivitySystem, Message: message})
}

func (l *Ledger) logActivity(entry entity.ActivityEntry) entity.ActivityEntry {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	entry.ID = id.String()
	entry.Timestamp = l.now().UTC()
	entry.Read = false
	if entry.Kind == "" {
		entry.Kind = entity.ActivitySystem
	}
	if entry.Category == "" {
		entry.Category = kindCategory[entry.Kind]
	}

	l.activity = append([]entity.ActivityEntry{entry}, l.activity...)
	if len(l.activity) > entity.MaxActivityEntries {
		l.activity = l.activity[:entity.MaxActivityEntries]
	}
	return entry
}

// Activity devuelve el registro de actividad, más reciente primero.
func (l *Ledger) Activity() []entity.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entity.ActivityEntry{}, l.activity...)
}

// UnreadActivity cuenta las entradas no leídas.
func (l *Ledger) UnreadActivity() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, a := range l.activity {
		if !a.Read {
			n++
		}
	}
	return n
}

// MarkActivityRead marca todas las entradas como leídas y persiste.
func (l *Ledger) MarkActivityRead(ctx context.Context) {
	l.mu.Lock()
	defer l.unlockAndNotify()
	for i := range l.activity {
		l.activity[i].Read = true
	}
	l.persist(ctx)
}

// SetTheme cambia el tema de la interfaz (claro u oscuro) y persiste.
func (l *Ledger) SetTheme(ctx context.Context, theme string) error {
	l.mu.Lock()
	defer l.unlockAndNotify()
	switch theme {
	case entity.ThemeLight, entity.ThemeDark:
	default:
		return fmt.Errorf("%w: tema desconocido %q", domain.ErrValidation, theme)
	}
	l.settings.Theme = theme
	l.persist(ctx)
	return nil
}
