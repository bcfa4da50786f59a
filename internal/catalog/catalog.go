package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"lexi-ai/internal/domain"
)

// StaticCatalog es una fuente de candidatos respaldada por listas fijas
// por categoría. Sirve los items en orden de registro, sin aleatoriedad,
// para que los resultados sean reproducibles.
type StaticCatalog struct {
	items map[string][]domain.Item
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{items: make(map[string][]domain.Item)}
}

// Register agrega items a una categoría, preservando el orden de llegada.
func (c *StaticCatalog) Register(category string, items []domain.Item) {
	c.items[category] = append(c.items[category], items...)
}

// Categories lista las categorías con items registrados, en orden estable.
func (c *StaticCatalog) Categories() []string {
	categories := make([]string, 0, len(c.items))
	for category := range c.items {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Fetch devuelve hasta `limit` items de la categoría. Una categoría sin
// items produce una lista vacía.
func (c *StaticCatalog) Fetch(_ context.Context, category string, limit int) ([]domain.Item, error) {
	items := c.items[category]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]domain.Item, len(items))
	copy(out, items)
	return out, nil
}

// LoadFile carga un catálogo desde un archivo JSON con la forma
// {"categoría": [{"clave": valor, ...}, ...], ...}.
func LoadFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var raw map[string][]domain.Item
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := NewStaticCatalog()
	for category, items := range raw {
		c.Register(category, items)
	}
	return c, nil
}

// NewSampleCatalog arma el catálogo de demostración que usan los shells
// cuando no se configuró un catálogo propio. Los datos son ilustrativos.
func NewSampleCatalog() *StaticCatalog {
	c := NewStaticCatalog()
	c.Register("media", []domain.Item{
		{"title": domain.StringValue("Dune"), "genre": domain.StringValue("sci-fi"), "type": domain.StringValue("movie"), "director": domain.StringValue("Villeneuve")},
		{"title": domain.StringValue("The Expanse"), "genre": domain.StringValue("sci-fi"), "type": domain.StringValue("series"), "creator": domain.StringValue("Franck")},
		{"title": domain.StringValue("Arrival"), "genre": domain.StringValue("sci-fi"), "type": domain.StringValue("movie"), "director": domain.StringValue("Villeneuve")},
		{"title": domain.StringValue("Black Mirror"), "genre": domain.StringValue("sci-fi"), "type": domain.StringValue("series"), "creator": domain.StringValue("Brooker")},
		{"title": domain.StringValue("Ex Machina"), "genre": domain.StringValue("sci-fi"), "type": domain.StringValue("movie"), "director": domain.StringValue("Garland")},
	})
	c.Register("style", []domain.Item{
		{"item": domain.StringValue("Minimalist Watch"), "style": domain.StringValue("minimalist"), "color": domain.StringValue("black")},
		{"item": domain.StringValue("Classic Sneakers"), "style": domain.StringValue("casual"), "color": domain.StringValue("white")},
		{"item": domain.StringValue("Modern Backpack"), "style": domain.StringValue("minimalist"), "color": domain.StringValue("gray")},
	})
	c.Register("food", []domain.Item{
		{"dish": domain.StringValue("Grilled Salmon"), "cuisine": domain.StringValue("seafood"), "healthy": domain.BoolValue(true)},
		{"dish": domain.StringValue("Veggie Bowl"), "cuisine": domain.StringValue("healthy"), "healthy": domain.BoolValue(true)},
		{"dish": domain.StringValue("Pasta Carbonara"), "cuisine": domain.StringValue("italian"), "healthy": domain.BoolValue(false)},
	})
	return c
}
