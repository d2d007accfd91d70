// Package store elige el backend de persistencia según STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/dany-shop/internal/domain/repository"
	"github.com/jhoicas/dany-shop/internal/infrastructure/filestore"
	"github.com/jhoicas/dany-shop/internal/infrastructure/memory"
	"github.com/jhoicas/dany-shop/internal/infrastructure/postgres"
	"github.com/jhoicas/dany-shop/pkg/config"
)

// Open construye el repositorio del driver configurado.
// closeFn libera recursos (pool de PostgreSQL); nunca es nil.
func Open(ctx context.Context, cfg config.Config) (repo repository.LedgerRepository, closeFn func(), err error) {
	closeFn = func() {}
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewLedgerRepository(), closeFn, nil
	case config.DriverFile:
		r, err := filestore.NewLedgerRepository(cfg.Store.DataDir, cfg.Store.Key)
		if err != nil {
			return nil, closeFn, err
		}
		return r, closeFn, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, closeFn, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		r := postgres.NewLedgerRepository(pool, cfg.Store.Key)
		if err := r.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, closeFn, err
		}
		return r, pool.Close, nil
	default:
		return nil, closeFn, fmt.Errorf("STORE_DRIVER no soportado: %q", cfg.Store.Driver)
	}
}
