package domain

// Etiquetas de confianza derivadas del puntaje.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ScoredItem envuelve un candidato con su puntaje acotado a [0,1], la
// etiqueta de confianza y la explicación de la recomendación.
type ScoredItem struct {
	Item       Item    `json:"item"`
	Score      float64 `json:"score"`
	Confidence string  `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// RankedOption es una opción del usuario puntuada al combatir la fatiga
// de decisión.
type RankedOption struct {
	Option    Item    `json:"option"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// UsageStatus describe el uso del día corriente frente al límite diario.
type UsageStatus struct {
	InteractionsToday int      `json:"interactions_today"`
	Limit             int      `json:"limit"`
	PercentageUsed    float64  `json:"percentage_used"`
	Warnings          []string `json:"warnings"`
}

// HealthReport combina el estado de uso con la sugerencia de descanso.
type HealthReport struct {
	UsageStatus      UsageStatus `json:"usage_status"`
	BreakRecommended bool        `json:"break_recommended"`
	HealthTips       []string    `json:"health_tips"`
}
