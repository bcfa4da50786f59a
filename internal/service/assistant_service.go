package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"lexi-ai/internal/domain"
)

// AssistantService orquesta persona, recomendaciones y guardrails: la
// fachada que consumen los shells HTTP y CLI.
type AssistantService struct {
	persona *PersonaService
	recs    *RecommendationService
	guards  *GuardrailsService
	logger  *zap.Logger
}

func NewAssistantService(persona *PersonaService, recs *RecommendationService, guards *GuardrailsService, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		persona: persona,
		recs:    recs,
		guards:  guards,
		logger:  logger,
	}
}

// LearnPreference registra feedback del usuario sobre un item.
func (s *AssistantService) LearnPreference(ctx context.Context, userID string, item domain.Item, rating domain.Rating, category string) error {
	return s.persona.RecordObservation(ctx, userID, item, rating, category)
}

// GetRecommendations genera recomendaciones para la categoría y las pasa
// por los guardrails antes de devolverlas.
func (s *AssistantService) GetRecommendations(ctx context.Context, userID, category string, limit int) ([]domain.ScoredItem, error) {
	prefs := s.persona.CategoryPreferences(ctx, userID, category)
	recommendations, err := s.recs.Generate(ctx, prefs, category, limit)
	if err != nil {
		return nil, err
	}
	filters := s.persona.NegativeFilters(ctx, userID)
	profile := s.persona.Profile(ctx, userID)
	return s.guards.FilterRecommendations(recommendations, filters, profile), nil
}

// CombatDecisionFatigue reduce un conjunto de opciones del usuario a las
// mejores según sus preferencias: puntúa con la política de decisión,
// descarta puntajes en cero, ordena y recorta.
func (s *AssistantService) CombatDecisionFatigue(ctx context.Context, userID, category string, options []domain.Item) []domain.RankedOption {
	prefs := s.persona.CategoryPreferences(ctx, userID, category)

	ranked := make([]domain.RankedOption, 0, len(options))
	for _, option := range options {
		score := DecisionPolicy.Score(option, prefs)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, domain.RankedOption{
			Option:    option,
			Score:     score,
			Reasoning: ExplainChoice(option, prefs),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return s.guards.LimitChoices(ranked, DefaultMaxChoices)
}

// PersonaSummary devuelve el resumen del perfil del usuario.
func (s *AssistantService) PersonaSummary(ctx context.Context, userID string) domain.PersonaSummary {
	return s.persona.Summary(ctx, userID)
}

// HealthReport devuelve el reporte de uso saludable del asistente.
func (s *AssistantService) HealthReport(ctx context.Context, userID string) domain.HealthReport {
	return s.guards.HealthReport(s.persona.Profile(ctx, userID))
}
