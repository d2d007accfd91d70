// seed carga el catálogo y los clientes de ejemplo en el almacenamiento configurado.
// Solo llena las colecciones vacías: volver a ejecutarlo no duplica datos.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/infrastructure/store"
	"github.com/jhoicas/dany-shop/pkg/config"
	"github.com/jhoicas/dany-shop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	repo, closeRepo, err := store.Open(ctx, *cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer closeRepo()

	shop := ledger.New(repo, ledger.Config{
		DebtGraceDays:     cfg.Store.DebtGraceDays,
		LowStockThreshold: cfg.Store.LowStockThreshold,
	}, ledger.WithLogger(log.Component("seed")))
	shop.Load(ctx)

	seeded, err := shop.SeedSampleData(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Guardar datos de ejemplo: %v\n", err)
		closeRepo()
		os.Exit(1)
	}
	if !seeded {
		fmt.Println("La tienda ya tiene productos y clientes; no se cargó nada.")
		return
	}
	m := shop.Metrics()
	fmt.Printf("Datos de ejemplo cargados (%s): %d productos, %d clientes.\n",
		cfg.Store.Driver, m.ActiveProducts, m.ActiveCustomers)
}
