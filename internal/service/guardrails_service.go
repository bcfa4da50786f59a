package service

import (
	"time"

	"go.uber.org/zap"

	"lexi-ai/internal/domain"
)

// Límites éticos fijos; no se adaptan al contenido de las preferencias.
const (
	MaxRecommendationsPerSession = 5
	MaxDailyInteractions         = 50
	CooldownMinutes              = 30
	DefaultMaxChoices            = 3

	// Más interacciones que esto dentro de la ventana de cooldown
	// dispara la sugerencia de descanso.
	breakThreshold = 10
)

const (
	warnLimitReached = "Daily interaction limit reached. Take a break and trust your own judgment!"
	warnHeavyUsage   = "You're using Lexi AI quite a bit today. Remember, it's a tool to help efficiency, not replace your autonomy."
	breakTip         = "Consider taking a break - you've been quite active recently"
)

var healthTips = []string{
	"Use Lexi AI to save mental energy, not replace decision-making skills",
	"The goal is efficiency, not dependency",
	"Trust your own judgment for important decisions",
}

// AuditEntry deja constancia de un chequeo de guardrails; solo diagnóstico,
// nunca participa en decisiones.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Check     string    `json:"check"`
}

// GuardrailsService aplica los límites de bienestar: recorta volumen de
// resultados, respeta los filtros negativos del usuario y vigila la
// frecuencia de uso.
type GuardrailsService struct {
	clock    Clock
	logger   *zap.Logger
	auditLog []AuditEntry
}

func NewGuardrailsService(clock Clock, logger *zap.Logger) *GuardrailsService {
	if clock == nil {
		clock = SystemClock
	}
	return &GuardrailsService{clock: clock, logger: logger}
}

// LimitRecommendations trunca la lista al máximo por sesión, sin reordenar.
func (s *GuardrailsService) LimitRecommendations(items []domain.ScoredItem) []domain.ScoredItem {
	if len(items) > MaxRecommendationsPerSession {
		return items[:MaxRecommendationsPerSession]
	}
	return items
}

// ApplyNegativeFilters descarta todo candidato bloqueado por algún filtro
// negativo del usuario. El caller obtiene la vista de filtros del perfil
// (PersonaService.NegativeFilters); los filtros de todas las categorías
// registradas aplican a todos los candidatos, sin importar la categoría
// del candidato.
func (s *GuardrailsService) ApplyNegativeFilters(items []domain.ScoredItem, filters domain.Bucket) []domain.ScoredItem {
	filtered := make([]domain.ScoredItem, 0, len(items))
	for _, item := range items {
		if blockedByFilters(item.Item, filters) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func blockedByFilters(item domain.Item, negative domain.Bucket) bool {
	for _, filters := range negative {
		for key, blocked := range filters {
			if v, ok := item[key]; ok && blocked.Contains(v) {
				return true
			}
		}
	}
	return false
}

// FilterRecommendations compone el límite por sesión, los filtros negativos
// y el chequeo de patrones de uso.
func (s *GuardrailsService) FilterRecommendations(items []domain.ScoredItem, filters domain.Bucket, profile domain.PersonaProfile) []domain.ScoredItem {
	filtered := s.LimitRecommendations(items)
	filtered = s.ApplyNegativeFilters(filtered, filters)
	s.checkEngagementPatterns(profile)
	return filtered
}

// LimitChoices trunca una lista ya ordenada de opciones: reducir opciones
// activamente es el mecanismo contra la fatiga de decisión.
func (s *GuardrailsService) LimitChoices(options []domain.RankedOption, maxChoices int) []domain.RankedOption {
	if maxChoices <= 0 {
		maxChoices = DefaultMaxChoices
	}
	if len(options) > maxChoices {
		return options[:maxChoices]
	}
	return options
}

// CheckUsageLimits cuenta las interacciones del día calendario actual y
// agrega advertencias al llegar al 80% y al 100% del límite diario.
func (s *GuardrailsService) CheckUsageLimits(profile domain.PersonaProfile) domain.UsageStatus {
	year, month, day := s.clock().Date()
	today := 0
	for _, interaction := range profile.Interactions {
		y, m, d := interaction.Timestamp.Date()
		if y == year && m == month && d == day {
			today++
		}
	}

	status := domain.UsageStatus{
		InteractionsToday: today,
		Limit:             MaxDailyInteractions,
		PercentageUsed:    float64(today) / float64(MaxDailyInteractions) * 100,
		Warnings:          []string{},
	}
	switch {
	case today >= MaxDailyInteractions:
		status.Warnings = append(status.Warnings, warnLimitReached)
	case float64(today) >= float64(MaxDailyInteractions)*0.8:
		status.Warnings = append(status.Warnings, warnHeavyUsage)
	}
	return status
}

// SuggestBreak indica si conviene sugerir un descanso según la frecuencia
// reciente. Sin historial no hay nada que sugerir.
func (s *GuardrailsService) SuggestBreak(profile domain.PersonaProfile) bool {
	if len(profile.Interactions) == 0 {
		return false
	}
	cutoff := s.clock().Add(-CooldownMinutes * time.Minute)
	recent := 0
	for _, interaction := range profile.Interactions {
		if interaction.Timestamp.After(cutoff) {
			recent++
		}
	}
	return recent > breakThreshold
}

// HealthReport combina límites de uso, sugerencia de descanso y los tips
// fijos; si conviene descansar, el tip correspondiente encabeza la lista.
func (s *GuardrailsService) HealthReport(profile domain.PersonaProfile) domain.HealthReport {
	report := domain.HealthReport{
		UsageStatus:      s.CheckUsageLimits(profile),
		BreakRecommended: s.SuggestBreak(profile),
	}
	report.HealthTips = append(report.HealthTips, healthTips...)
	if report.BreakRecommended {
		report.HealthTips = append([]string{breakTip}, report.HealthTips...)
	}
	return report
}

// AuditLog expone el registro de chequeos realizados.
func (s *GuardrailsService) AuditLog() []AuditEntry {
	return s.auditLog
}

// checkEngagementPatterns es un hook reservado para heurísticas futuras
// (uso nocturno, sobre-dependencia); hoy solo deja constancia del chequeo.
func (s *GuardrailsService) checkEngagementPatterns(_ domain.PersonaProfile) {
	s.auditLog = append(s.auditLog, AuditEntry{
		Timestamp: s.clock(),
		Check:     "engagement_check",
	})
}
