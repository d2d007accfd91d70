package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
	"github.com/jhoicas/dany-shop/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo guarda el snapshot serializado en memoria del proceso.
// Serializar en cada Save mantiene la misma semántica de copia que los drivers persistentes.
type LedgerRepo struct {
	mu   sync.RWMutex
	data []byte
}

// NewLedgerRepository construye el repositorio vacío.
func NewLedgerRepository() *LedgerRepo {
	return &LedgerRepo{}
}

// Load devuelve el último snapshot guardado o (nil, nil) si no hay ninguno.
func (r *LedgerRepo) Load(_ context.Context) (*entity.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, nil
	}
	var snap entity.Snapshot
	if err := json.Unmarshal(r.data, &snap); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	return &snap, nil
}

// Save reemplaza el snapshot guardado.
func (r *LedgerRepo) Save(_ context.Context, snapshot *entity.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	return nil
}

// Raw devuelve el JSON guardado tal cual (nil si no hay datos).
func (r *LedgerRepo) Raw() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.data...)
}

// SetRaw reemplaza el contenido guardado por bytes arbitrarios (datos heredados o corruptos).
func (r *LedgerRepo) SetRaw(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte(nil), data...)
}
