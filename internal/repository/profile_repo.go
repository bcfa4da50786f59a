package repository

import (
	"context"
	"errors"

	"lexi-ai/internal/domain"
)

// ErrProfileNotFound indica que no hay datos guardados para el usuario.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository abstrae la persistencia de perfiles por usuario.
// Load devuelve ErrProfileNotFound cuando el usuario no tiene datos;
// Save escribe el registro completo de forma síncrona.
type ProfileRepository interface {
	Load(ctx context.Context, userID string) (domain.PersonaProfile, error)
	Save(ctx context.Context, profile domain.PersonaProfile) error
}
