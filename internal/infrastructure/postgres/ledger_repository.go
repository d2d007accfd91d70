package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
	"github.com/jhoicas/dany-shop/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS ledger_snapshots (
		key          TEXT PRIMARY KEY,
		data         JSONB NOT NULL,
		sales_count  INTEGER NOT NULL DEFAULT 0,
		total_profit NUMERIC(18, 2) NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// LedgerRepo guarda el snapshot completo como JSONB en una fila por clave.
// sales_count y total_profit se copian de las métricas para consultas SQL directas.
type LedgerRepo struct {
	q   Querier
	key string
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier, key string) *LedgerRepo {
	return &LedgerRepo{q: q, key: key}
}

// EnsureSchema crea la tabla si no existe.
func (r *LedgerRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear tabla ledger_snapshots: %w", err)
	}
	return nil
}

// Load obtiene el snapshot de la clave; (nil, nil) si no hay fila.
func (r *LedgerRepo) Load(ctx context.Context) (*entity.Snapshot, error) {
	var snap entity.Snapshot
	err := r.q.QueryRow(ctx, `SELECT data FROM ledger_snapshots WHERE key = $1`, r.key).Scan(&snap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &snap, nil
}

// Save inserta o reemplaza el snapshot de la clave.
func (r *LedgerRepo) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	query := `
		INSERT INTO ledger_snapshots (key, data, sales_count, total_profit, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, sales_count = EXCLUDED.sales_count,
		    total_profit = EXCLUDED.total_profit, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		r.key, snapshot, snapshot.Metrics.SalesCount, snapshot.Metrics.TotalProfit, snapshot.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
