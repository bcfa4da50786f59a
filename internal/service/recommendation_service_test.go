package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"lexi-ai/internal/domain"
)

type stubSource struct {
	items []domain.Item
	err   error
}

func (s stubSource) Fetch(_ context.Context, _ string, _ int) ([]domain.Item, error) {
	return s.items, s.err
}

func TestGenerateUsesRegisteredSource(t *testing.T) {
	recs := NewRecommendationService(zap.NewNop())
	recs.RegisterSource("media", stubSource{items: []domain.Item{
		{"name": domain.StringValue("Dune"), "genre": domain.StringValue("sci-fi")},
		{"name": domain.StringValue("It"), "genre": domain.StringValue("horror")},
	}})

	prefs := prefsWithPositive(map[string]string{"genre": "sci-fi"})
	got, err := recs.Generate(context.Background(), prefs, "media", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 scored items, got %d", len(got))
	}
	if got[0].Item["name"].Str != "Dune" {
		t.Fatalf("expected the preferred item first, got %s", got[0].Item["name"].Str)
	}
	if got[0].Score <= got[1].Score {
		t.Fatalf("expected descending order, got %v then %v", got[0].Score, got[1].Score)
	}
	if got[0].Confidence != domain.ConfidenceMedium {
		t.Fatalf("expected medium confidence at 0.8, got %s", got[0].Confidence)
	}
}

func TestGeneratePropagatesSourceErrors(t *testing.T) {
	recs := NewRecommendationService(zap.NewNop())
	recs.RegisterSource("media", stubSource{err: errors.New("upstream down")})

	if _, err := recs.Generate(context.Background(), prefsWithPositive(nil), "media", 5); err == nil {
		t.Fatalf("expected source error to propagate")
	}
}

func TestGenerateFallsBackToPlaceholders(t *testing.T) {
	recs := NewRecommendationService(zap.NewNop())

	got, err := recs.Generate(context.Background(), prefsWithPositive(nil), "books", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != DefaultRecommendationLimit {
		t.Fatalf("expected %d placeholder items, got %d", DefaultRecommendationLimit, len(got))
	}
	for _, item := range got {
		if item.Item["category"].Str != "books" {
			t.Fatalf("expected placeholder item tagged with the category, got %v", item.Item)
		}
	}
}

func TestRankStableOnTies(t *testing.T) {
	recs := NewRecommendationService(zap.NewNop())
	candidates := []domain.Item{
		{"name": domain.StringValue("First")},
		{"name": domain.StringValue("Second")},
		{"name": domain.StringValue("Third")},
	}

	ranked := recs.Rank(candidates, prefsWithPositive(nil), 0)
	for i, want := range []string{"First", "Second", "Third"} {
		if ranked[i].Item["name"].Str != want {
			t.Fatalf("tie order changed at %d: expected %s, got %s", i, want, ranked[i].Item["name"].Str)
		}
		if ranked[i].Score != 0.5 {
			t.Fatalf("expected neutral base score, got %v", ranked[i].Score)
		}
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	recs := NewRecommendationService(zap.NewNop())
	candidates := []domain.Item{
		{"name": domain.StringValue("A")},
		{"name": domain.StringValue("B")},
		{"name": domain.StringValue("C")},
		{"name": domain.StringValue("D")},
	}

	if got := recs.Rank(candidates, prefsWithPositive(nil), 2); len(got) != 2 {
		t.Fatalf("expected 2 items after truncation, got %d", len(got))
	}
}
