package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"lexi-ai/internal/domain"
)

// FileProfileRepository guarda un documento JSON legible por usuario,
// un archivo por user id bajo un directorio de datos.
type FileProfileRepository struct {
	dir string
}

func NewFileProfileRepository(dir string) *FileProfileRepository {
	return &FileProfileRepository{dir: dir}
}

// path deriva el nombre de archivo del user id. El id es una cadena opaca
// elegida por el caller, así que se hashea para obtener un nombre estable
// y seguro en el filesystem.
func (r *FileProfileRepository) path(userID string) string {
	sum := blake2b.Sum256([]byte(userID))
	return filepath.Join(r.dir, fmt.Sprintf("persona_%x.json", sum[:12]))
}

func (r *FileProfileRepository) Load(_ context.Context, userID string) (domain.PersonaProfile, error) {
	data, err := os.ReadFile(r.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		return domain.PersonaProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.PersonaProfile{}, fmt.Errorf("read profile: %w", err)
	}

	var profile domain.PersonaProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return domain.PersonaProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	profile.Normalize()
	return profile, nil
}

func (r *FileProfileRepository) Save(_ context.Context, profile domain.PersonaProfile) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(r.path(profile.UserID), data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
