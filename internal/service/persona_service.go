package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lexi-ai/internal/domain"
	"lexi-ai/internal/repository"
)

// PersonaService acumula las preferencias de cada usuario: el "segundo
// cerebro" que recuerda qué le gusta y qué quiere evitar.
type PersonaService struct {
	repo   repository.ProfileRepository
	clock  Clock
	logger *zap.Logger
}

func NewPersonaService(repo repository.ProfileRepository, clock Clock, logger *zap.Logger) *PersonaService {
	if clock == nil {
		clock = SystemClock
	}
	return &PersonaService{repo: repo, clock: clock, logger: logger}
}

// RecordObservation aprende los atributos de un item bajo el rating dado,
// anexa la interacción al historial y persiste el perfil antes de volver.
// Un rating inválido falla sin mutar nada.
func (s *PersonaService) RecordObservation(ctx context.Context, userID string, item domain.Item, rating domain.Rating, category string) error {
	if !rating.Valid() {
		return domain.ErrInvalidRating
	}
	if category == "" {
		category = domain.CategoryGeneral
	}

	profile := s.loadOrEmpty(ctx, userID)
	bucket := profile.Preferences.Bucket(rating)
	for key, value := range item {
		bucket.Add(category, key, value)
	}

	now := s.clock()
	profile.Interactions = append(profile.Interactions, domain.Interaction{
		ID:        uuid.NewString(),
		Timestamp: now,
		Item:      item,
		Rating:    rating,
		Category:  category,
	})
	profile.LastUpdated = now

	// Perder una preferencia registrada rompería la promesa del perfil,
	// así que los errores de escritura suben al caller.
	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile for user %s: %w", userID, err)
	}
	return nil
}

// Profile devuelve el perfil completo del usuario; vacío si no hay datos.
func (s *PersonaService) Profile(ctx context.Context, userID string) domain.PersonaProfile {
	return s.loadOrEmpty(ctx, userID)
}

// Preferences devuelve los tres buckets completos.
func (s *PersonaService) Preferences(ctx context.Context, userID string) domain.Preferences {
	return s.loadOrEmpty(ctx, userID).Preferences
}

// CategoryPreferences devuelve la vista reducida de una categoría.
func (s *PersonaService) CategoryPreferences(ctx context.Context, userID, category string) domain.CategoryPreferences {
	return s.loadOrEmpty(ctx, userID).Preferences.Category(category)
}

// NegativeFilters devuelve el bucket negativo completo: los pares
// clave → valores que el usuario nunca quiere ver.
func (s *PersonaService) NegativeFilters(ctx context.Context, userID string) domain.Bucket {
	return s.loadOrEmpty(ctx, userID).Preferences.Negative
}

// CategoryNegativeFilters limita los filtros negativos a una categoría.
func (s *PersonaService) CategoryNegativeFilters(ctx context.Context, userID, category string) map[string]domain.ValueSet {
	return s.loadOrEmpty(ctx, userID).Preferences.Category(category).Negative
}

// Summary resume el perfil: total de grupos (rating, categoría, clave),
// cantidad de interacciones y categorías distintas entre los tres buckets.
func (s *PersonaService) Summary(ctx context.Context, userID string) domain.PersonaSummary {
	profile := s.loadOrEmpty(ctx, userID)

	total := 0
	categorySet := make(map[string]struct{})
	for _, bucket := range []domain.Bucket{
		profile.Preferences.Positive,
		profile.Preferences.Negative,
		profile.Preferences.Neutral,
	} {
		for category, keys := range bucket {
			categorySet[category] = struct{}{}
			total += len(keys)
		}
	}

	categories := make([]string, 0, len(categorySet))
	for category := range categorySet {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return domain.PersonaSummary{
		UserID:            profile.UserID,
		CreatedAt:         profile.CreatedAt,
		LastUpdated:       profile.LastUpdated,
		TotalPreferences:  total,
		TotalInteractions: len(profile.Interactions),
		Categories:        categories,
	}
}

// loadOrEmpty intenta cargar el perfil. Datos corruptos o ilegibles
// producen un perfil vacío en vez de bloquear al usuario; el evento solo
// se registra en el log.
func (s *PersonaService) loadOrEmpty(ctx context.Context, userID string) domain.PersonaProfile {
	profile, err := s.repo.Load(ctx, userID)
	if err == nil {
		return profile
	}
	if !errors.Is(err, repository.ErrProfileNotFound) && s.logger != nil {
		s.logger.Warn("could not load persona data",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	return domain.NewPersonaProfile(userID, s.clock())
}
