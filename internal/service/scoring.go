package service

import (
	"fmt"
	"sort"
	"strings"

	"lexi-ai/internal/domain"
)

// ScoringPolicy define los incrementos aplicados al puntuar un item contra
// las preferencias de una categoría. Existen dos políticas con boost
// positivo distinto; se mantienen separadas porque unificarlas cambiaría
// el ranking observable.
type ScoringPolicy struct {
	Base            float64
	PositiveBoost   float64
	NegativePenalty float64
}

// RecommendationPolicy puntúa candidatos generados para recomendaciones.
var RecommendationPolicy = ScoringPolicy{Base: 0.5, PositiveBoost: 0.3, NegativePenalty: 0.5}

// DecisionPolicy puntúa opciones provistas por el usuario al decidir.
var DecisionPolicy = ScoringPolicy{Base: 0.5, PositiveBoost: 0.2, NegativePenalty: 0.5}

// Score calcula un puntaje acotado a [0,1]: parte de la base neutral, suma
// por cada atributo del item presente en las preferencias positivas y resta
// por cada coincidencia con las negativas.
func (p ScoringPolicy) Score(item domain.Item, prefs domain.CategoryPreferences) float64 {
	score := p.Base
	for key, values := range prefs.Positive {
		if v, ok := item[key]; ok && values.Contains(v) {
			score += p.PositiveBoost
		}
	}
	for key, values := range prefs.Negative {
		if v, ok := item[key]; ok && values.Contains(v) {
			score -= p.NegativePenalty
		}
	}
	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ConfidenceFor etiqueta un puntaje como high/medium/low para mostrar.
func ConfidenceFor(score float64) string {
	switch {
	case score > 0.8:
		return domain.ConfidenceHigh
	case score > 0.5:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// matchedPositive lista las coincidencias positivas "clave: valor" en orden
// estable de clave, para que las explicaciones sean deterministas.
func matchedPositive(item domain.Item, prefs domain.CategoryPreferences) []string {
	keys := make([]string, 0, len(prefs.Positive))
	for key := range prefs.Positive {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var matches []string
	for _, key := range keys {
		if v, ok := item[key]; ok && prefs.Positive[key].Contains(v) {
			matches = append(matches, fmt.Sprintf("%s: %s", key, v))
		}
	}
	return matches
}

// ExplainRecommendation justifica por qué se recomendó un item; la
// transparencia importa para la confianza del usuario.
func ExplainRecommendation(item domain.Item, prefs domain.CategoryPreferences) string {
	matches := matchedPositive(item, prefs)
	if len(matches) == 0 {
		return "Recommended based on general preferences"
	}
	clauses := make([]string, len(matches))
	for i, m := range matches {
		clauses[i] = "matches your preference for " + m
	}
	return "Recommended because it " + strings.Join(clauses, ", ")
}

// ExplainChoice justifica el puntaje de una opción al combatir la fatiga
// de decisión.
func ExplainChoice(option domain.Item, prefs domain.CategoryPreferences) string {
	matches := matchedPositive(option, prefs)
	if len(matches) == 0 {
		return "Neutral - no strong preference match"
	}
	clauses := make([]string, len(matches))
	for i, m := range matches {
		clauses[i] = "Matches your preference for " + m
	}
	return strings.Join(clauses, " | ")
}
