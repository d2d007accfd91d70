package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dany-shop/internal/infrastructure/filestore"
	"github.com/jhoicas/dany-shop/internal/infrastructure/memory"
	"github.com/jhoicas/dany-shop/pkg/config"
)

func TestOpen_Memoria(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &memory.LedgerRepo{}, repo)
}

func TestOpen_Archivo(t *testing.T) {
	dir := t.TempDir()
	repo, closeFn, err := Open(context.Background(), config.Config{Store: config.StoreConfig{
		Driver: config.DriverFile, DataDir: dir, Key: "dany_shop_v2",
	}})
	require.NoError(t, err)
	defer closeFn()

	fr, ok := repo.(*filestore.LedgerRepo)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "dany_shop_v2.json"), fr.Path())
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, closeFn, err := Open(context.Background(), config.Config{Store: config.StoreConfig{Driver: "redis"}})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
