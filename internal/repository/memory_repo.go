package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"lexi-ai/internal/domain"
)

// MemoryProfileRepository guarda perfiles en memoria; útil para pruebas y
// ejecuciones efímeras. Los registros se guardan serializados para que el
// round-trip sea el mismo que con almacenamiento durable.
type MemoryProfileRepository struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{items: make(map[string][]byte)}
}

func (r *MemoryProfileRepository) Load(_ context.Context, userID string) (domain.PersonaProfile, error) {
	r.mu.Lock()
	data, ok := r.items[userID]
	r.mu.Unlock()
	if !ok {
		return domain.PersonaProfile{}, ErrProfileNotFound
	}

	var profile domain.PersonaProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return domain.PersonaProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	profile.Normalize()
	return profile, nil
}

func (r *MemoryProfileRepository) Save(_ context.Context, profile domain.PersonaProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	r.mu.Lock()
	r.items[profile.UserID] = data
	r.mu.Unlock()
	return nil
}
