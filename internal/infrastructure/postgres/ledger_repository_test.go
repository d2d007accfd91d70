package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
	"github.com/jhoicas/dany-shop/internal/infrastructure/postgres"
	"github.com/jhoicas/dany-shop/pkg/config"
)

// Requiere una base real: DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func TestLedgerRepo_Postgres(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	defer pool.Close()

	key := "test-" + time.Now().Format("20060102150405.000000")
	repo := postgres.NewLedgerRepository(pool, key)
	require.NoError(t, repo.EnsureSchema(ctx))
	defer func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM ledger_snapshots WHERE key = $1`, key)
	}()

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	in := &entity.Snapshot{
		Products:    []entity.Product{{ID: 1, Name: "Arroz", CostPrice: decimal.RequireFromString("12.5"), SalePrice: decimal.NewFromInt(18), Quantity: 3, Active: true}},
		Metrics:     entity.Metrics{SalesCount: 4, TotalProfit: decimal.RequireFromString("27.50")},
		LastUpdated: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, in))
	in.Metrics.SalesCount = 5
	require.NoError(t, repo.Save(ctx, in))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Products, 1)
	assert.True(t, got.Products[0].CostPrice.Equal(decimal.RequireFromString("12.5")))

	var count int
	var profit decimal.Decimal
	err = pool.QueryRow(ctx, `SELECT sales_count, total_profit FROM ledger_snapshots WHERE key = $1`, key).Scan(&count, &profit)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.True(t, profit.Equal(decimal.RequireFromString("27.5")))
}
