package repository

import (
	"context"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del libro de la tienda (DIP).
// Todo el estado viaja como un único snapshot bajo una clave conocida.
type LedgerRepository interface {
	// Load devuelve (nil, nil) si la clave aún no tiene datos.
	Load(ctx context.Context) (*entity.Snapshot, error)
	Save(ctx context.Context, snapshot *entity.Snapshot) error
}
