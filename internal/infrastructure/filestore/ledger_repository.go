// Package filestore persiste el snapshot de la tienda como un archivo JSON
// por clave, el equivalente en disco del almacenamiento local del navegador.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/dany-shop/internal/domain/entity"
	"github.com/jhoicas/dany-shop/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo lee y escribe <dir>/<key>.json.
type LedgerRepo struct {
	path string
}

// NewLedgerRepository construye el adaptador y crea el directorio si no existe.
func NewLedgerRepository(dir, key string) (*LedgerRepo, error) {
	if key == "" {
		return nil, fmt.Errorf("filestore: clave vacía")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &LedgerRepo{path: filepath.Join(dir, key+".json")}, nil
}

// Path ruta del archivo del snapshot.
func (r *LedgerRepo) Path() string { return r.path }

// Load devuelve (nil, nil) si el archivo no existe.
func (r *LedgerRepo) Load(_ context.Context) (*entity.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	var snap entity.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	return &snap, nil
}

// Save escribe a un archivo temporal y lo renombra, para no dejar un JSON a medias.
func (r *LedgerRepo) Save(_ context.Context, snapshot *entity.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("reemplazar snapshot: %w", err)
	}
	return nil
}
