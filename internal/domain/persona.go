package domain

import (
	"errors"
	"time"
)

// Rating clasifica una observación del usuario.
type Rating string

const (
	RatingPositive Rating = "positive"
	RatingNegative Rating = "negative"
	RatingNeutral  Rating = "neutral"
)

// CategoryGeneral es la categoría por defecto cuando el caller no indica una.
const CategoryGeneral = "general"

// ErrInvalidRating se devuelve cuando el rating no es uno de los tres permitidos.
var ErrInvalidRating = errors.New("rating must be 'positive', 'negative' or 'neutral'")

// Valid indica si el rating es uno de los tres valores permitidos.
func (r Rating) Valid() bool {
	return r == RatingPositive || r == RatingNegative || r == RatingNeutral
}

// Bucket agrupa valores observados por categoría y clave de atributo.
type Bucket map[string]map[string]ValueSet

// Add registra value bajo (category, key), creando los mapas intermedios.
// Agregar un valor ya presente no cambia nada.
func (b Bucket) Add(category, key string, value Value) {
	cat, ok := b[category]
	if !ok {
		cat = make(map[string]ValueSet)
		b[category] = cat
	}
	cat[key] = cat[key].Add(value)
}

// Preferences contiene los tres buckets de ratings de un usuario.
type Preferences struct {
	Positive Bucket `json:"positive"`
	Negative Bucket `json:"negative"`
	Neutral  Bucket `json:"neutral"`
}

func NewPreferences() Preferences {
	return Preferences{Positive: Bucket{}, Negative: Bucket{}, Neutral: Bucket{}}
}

// Bucket devuelve el bucket correspondiente al rating, o nil si es inválido.
func (p Preferences) Bucket(r Rating) Bucket {
	switch r {
	case RatingPositive:
		return p.Positive
	case RatingNegative:
		return p.Negative
	case RatingNeutral:
		return p.Neutral
	default:
		return nil
	}
}

// Category reduce las preferencias a una sola categoría. Una categoría
// ausente produce mapas vacíos, no un error.
func (p Preferences) Category(category string) CategoryPreferences {
	return CategoryPreferences{
		Positive: categoryOrEmpty(p.Positive, category),
		Negative: categoryOrEmpty(p.Negative, category),
		Neutral:  categoryOrEmpty(p.Neutral, category),
	}
}

func categoryOrEmpty(b Bucket, category string) map[string]ValueSet {
	if m, ok := b[category]; ok {
		return m
	}
	return map[string]ValueSet{}
}

// CategoryPreferences es la vista de preferencias de una sola categoría.
type CategoryPreferences struct {
	Positive map[string]ValueSet `json:"positive"`
	Negative map[string]ValueSet `json:"negative"`
	Neutral  map[string]ValueSet `json:"neutral"`
}

// Interaction es un registro inmutable de feedback; una vez anexado al
// historial nunca se modifica ni se elimina.
type Interaction struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Item      Item      `json:"item"`
	Rating    Rating    `json:"rating"`
	Category  string    `json:"category"`
}

// PersonaProfile es el registro persistido por usuario: preferencias
// acumuladas más el historial de interacciones.
type PersonaProfile struct {
	UserID       string        `json:"user_id"`
	Preferences  Preferences   `json:"preferences"`
	Interactions []Interaction `json:"interaction_history"`
	CreatedAt    time.Time     `json:"created_at"`
	LastUpdated  time.Time     `json:"last_updated"`
}

func NewPersonaProfile(userID string, now time.Time) PersonaProfile {
	return PersonaProfile{
		UserID:      userID,
		Preferences: NewPreferences(),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// Normalize garantiza buckets no nulos tras deserializar datos parciales.
func (p *PersonaProfile) Normalize() {
	if p.Preferences.Positive == nil {
		p.Preferences.Positive = Bucket{}
	}
	if p.Preferences.Negative == nil {
		p.Preferences.Negative = Bucket{}
	}
	if p.Preferences.Neutral == nil {
		p.Preferences.Neutral = Bucket{}
	}
}

// PersonaSummary resume el estado del perfil para mostrar al usuario.
type PersonaSummary struct {
	UserID            string    `json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
	LastUpdated       time.Time `json:"last_updated"`
	TotalPreferences  int       `json:"total_preferences"`
	TotalInteractions int       `json:"total_interactions"`
	Categories        []string  `json:"categories"`
}
