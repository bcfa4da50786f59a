package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"lexi-ai/internal/domain"
)

// DefaultRecommendationLimit acota las recomendaciones cuando el caller no
// pide una cantidad.
const DefaultRecommendationLimit = 5

// CandidateSource provee items candidatos para una categoría. Las fuentes
// se registran externamente; el motor no trae contenido de dominio propio.
type CandidateSource interface {
	Fetch(ctx context.Context, category string, limit int) ([]domain.Item, error)
}

// RecommendationService puntúa y rankea candidatos contra las preferencias
// del usuario. A diferencia de los motores que optimizan engagement, este
// optimiza eficiencia del usuario.
type RecommendationService struct {
	sources map[string]CandidateSource
	policy  ScoringPolicy
	logger  *zap.Logger
}

func NewRecommendationService(logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		sources: make(map[string]CandidateSource),
		policy:  RecommendationPolicy,
		logger:  logger,
	}
}

// RegisterSource asocia una fuente de candidatos a una categoría,
// reemplazando la anterior si existía.
func (s *RecommendationService) RegisterSource(category string, source CandidateSource) {
	s.sources[category] = source
}

// Generate obtiene candidatos para la categoría, los puntúa y devuelve los
// mejores `limit` en orden descendente.
func (s *RecommendationService) Generate(ctx context.Context, prefs domain.CategoryPreferences, category string, limit int) ([]domain.ScoredItem, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	candidates, err := s.fetchCandidates(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates for %s: %w", category, err)
	}
	return s.Rank(candidates, prefs, limit), nil
}

// Rank puntúa todos los candidatos y los ordena de mayor a menor puntaje;
// los empates conservan el orden de llegada. Con limit > 0 trunca la lista.
func (s *RecommendationService) Rank(candidates []domain.Item, prefs domain.CategoryPreferences, limit int) []domain.ScoredItem {
	scored := make([]domain.ScoredItem, 0, len(candidates))
	for _, item := range candidates {
		score := s.policy.Score(item, prefs)
		scored = append(scored, domain.ScoredItem{
			Item:       item,
			Score:      score,
			Confidence: ConfidenceFor(score),
			Reason:     ExplainRecommendation(item, prefs),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func (s *RecommendationService) fetchCandidates(ctx context.Context, category string, limit int) ([]domain.Item, error) {
	if source, ok := s.sources[category]; ok {
		return source.Fetch(ctx, category, limit)
	}

	// Sin fuente registrada: generador trivial de relleno.
	if s.logger != nil {
		s.logger.Debug("no candidate source registered", zap.String("category", category))
	}
	items := make([]domain.Item, 0, limit)
	for i := 0; i < limit; i++ {
		items = append(items, domain.Item{
			"name":     domain.StringValue(fmt.Sprintf("Item %d", i)),
			"category": domain.StringValue(category),
		})
	}
	return items, nil
}
