package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"lexi-ai/internal/domain"
	"lexi-ai/internal/repository"
)

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

type failingRepo struct {
	loadErr error
	saveErr error
}

func (r *failingRepo) Load(_ context.Context, userID string) (domain.PersonaProfile, error) {
	if r.loadErr != nil {
		return domain.PersonaProfile{}, r.loadErr
	}
	return domain.PersonaProfile{}, repository.ErrProfileNotFound
}

func (r *failingRepo) Save(_ context.Context, _ domain.PersonaProfile) error {
	return r.saveErr
}

func TestRecordObservationAccumulatesPreferences(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	svc := NewPersonaService(repository.NewMemoryProfileRepository(), fixedClock(now), zap.NewNop())
	ctx := context.Background()

	item := domain.Item{
		"title": domain.StringValue("Inception"),
		"genre": domain.StringValue("sci-fi"),
	}
	if err := svc.RecordObservation(ctx, "user-1", item, domain.RatingPositive, "media"); err != nil {
		t.Fatalf("record observation: %v", err)
	}

	prefs := svc.Preferences(ctx, "user-1")
	if !prefs.Positive["media"]["genre"].Contains(domain.StringValue("sci-fi")) {
		t.Fatalf("genre not learned: %+v", prefs.Positive)
	}
	if !prefs.Positive["media"]["title"].Contains(domain.StringValue("Inception")) {
		t.Fatalf("title not learned: %+v", prefs.Positive)
	}

	profile := svc.Profile(ctx, "user-1")
	if len(profile.Interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(profile.Interactions))
	}
	if profile.Interactions[0].ID == "" {
		t.Fatalf("interaction without id")
	}
	if !profile.LastUpdated.Equal(now) {
		t.Fatalf("last_updated not set: %v", profile.LastUpdated)
	}
}

func TestRecordObservationIsIdempotentPerValue(t *testing.T) {
	svc := NewPersonaService(repository.NewMemoryProfileRepository(), nil, zap.NewNop())
	ctx := context.Background()
	item := domain.Item{"genre": domain.StringValue("sci-fi")}

	for i := 0; i < 3; i++ {
		if err := svc.RecordObservation(ctx, "user-1", item, domain.RatingPositive, "media"); err != nil {
			t.Fatalf("record observation: %v", err)
		}
	}

	prefs := svc.Preferences(ctx, "user-1")
	if got := len(prefs.Positive["media"]["genre"]); got != 1 {
		t.Fatalf("expected 1 distinct value, got %d", got)
	}
	if got := len(svc.Profile(ctx, "user-1").Interactions); got != 3 {
		t.Fatalf("expected 3 interactions, got %d", got)
	}
}

func TestRecordObservationRejectsInvalidRating(t *testing.T) {
	svc := NewPersonaService(repository.NewMemoryProfileRepository(), nil, zap.NewNop())
	ctx := context.Background()

	err := svc.RecordObservation(ctx, "user-1", domain.Item{"genre": domain.StringValue("sci-fi")}, "loved_it", "media")
	if !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}

	summary := svc.Summary(ctx, "user-1")
	if summary.TotalInteractions != 0 || summary.TotalPreferences != 0 {
		t.Fatalf("state mutated on invalid rating: %+v", summary)
	}
}

func TestRecordObservationDefaultsCategory(t *testing.T) {
	svc := NewPersonaService(repository.NewMemoryProfileRepository(), nil, zap.NewNop())
	ctx := context.Background()

	if err := svc.RecordObservation(ctx, "user-1", domain.Item{"color": domain.StringValue("black")}, domain.RatingPositive, ""); err != nil {
		t.Fatalf("record observation: %v", err)
	}
	prefs := svc.Preferences(ctx, "user-1")
	if !prefs.Positive[domain.CategoryGeneral]["color"].Contains(domain.StringValue("black")) {
		t.Fatalf("expected default category, got %+v", prefs.Positive)
	}
}

func TestRecordObservationPropagatesWriteFailure(t *testing.T) {
	repo := &failingRepo{saveErr: errors.New("disk full")}
	svc := NewPersonaService(repo, nil, zap.NewNop())

	err := svc.RecordObservation(context.Background(), "user-1", domain.Item{"genre": domain.StringValue("sci-fi")}, domain.RatingPositive, "media")
	if err == nil {
		t.Fatalf("expected write failure to propagate")
	}
}

func TestCorruptStorageFallsBackToEmptyProfile(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	repo := &failingRepo{loadErr: errors.New("decode profile: unexpected end of JSON input")}
	svc := NewPersonaService(repo, fixedClock(now), zap.NewNop())

	profile := svc.Profile(context.Background(), "user-1")
	if profile.UserID != "user-1" {
		t.Fatalf("expected fresh profile for user-1, got %+v", profile)
	}
	if len(profile.Interactions) != 0 {
		t.Fatalf("expected empty history")
	}
	if !profile.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at from clock, got %v", profile.CreatedAt)
	}
}

func TestNegativeFiltersExposeLearnedDislikes(t *testing.T) {
	svc := NewPersonaService(repository.NewMemoryProfileRepository(), nil, zap.NewNop())
	ctx := context.Background()

	if err := svc.RecordObservation(ctx, "user-1", domain.Item{"genre": domain.StringValue("horror")}, domain.RatingNegative, "media"); err != nil {
		t.Fatalf("record observation: %v", err)
	}
	if err := svc.RecordObservation(ctx, "user-1", domain.Item{"ingredient": domain.StringValue("cilantro")}, domain.RatingNegative, "food"); err != nil {
		t.Fatalf("record observation: %v", err)
	}
	if err := svc.RecordObservation(ctx, "user-1", domain.Item{"genre": domain.StringValue("sci-fi")}, domain.RatingPositive, "media"); err != nil {
		t.Fatalf("record observation: %v", err)
	}

	filters := svc.NegativeFilters(ctx, "user-1")
	if len(filters) != 2 {
		t.Fatalf("expected filters for 2 categories, got %d: %+v", len(filters), filters)
	}
	if !filters["media"]["genre"].Contains(domain.StringValue("horror")) {
		t.Fatalf("media filter missing: %+v", filters)
	}
	if !filters["food"]["ingredient"].Contains(domain.StringValue("cilantro")) {
		t.Fatalf("food filter missing: %+v", filters)
	}
	if filters["media"]["genre"].Contains(domain.StringValue("sci-fi")) {
		t.Fatalf("positive observation leaked into negative filters")
	}

	scoped := svc.CategoryNegativeFilters(ctx, "user-1", "food")
	if len(scoped) != 1 || !scoped["ingredient"].Contains(domain.StringValue("cilantro")) {
		t.Fatalf("unexpected scoped filters: %+v", scoped)
	}
	if _, ok := scoped["genre"]; ok {
		t.Fatalf("media filter leaked into the food view")
	}

	if got := svc.CategoryNegativeFilters(ctx, "user-1", "unknown"); len(got) != 0 {
		t.Fatalf("expected empty view for an unknown category, got %+v", got)
	}
}

func TestSummaryCountsLeafGroupsAndCategories(t *testing.T) {
	svc := NewPersonaService(repository.NewMemoryProfileRepository(), nil, zap.NewNop())
	ctx := context.Background()

	observations := []struct {
		item     domain.Item
		rating   domain.Rating
		category string
	}{
		{domain.Item{"genre": domain.StringValue("sci-fi"), "director": domain.StringValue("Nolan")}, domain.RatingPositive, "media"},
		{domain.Item{"genre": domain.StringValue("reality")}, domain.RatingNegative, "media"},
		{domain.Item{"style": domain.StringValue("minimalist")}, domain.RatingPositive, "style"},
	}
	for _, obs := range observations {
		if err := svc.RecordObservation(ctx, "user-1", obs.item, obs.rating, obs.category); err != nil {
			t.Fatalf("record observation: %v", err)
		}
	}

	summary := svc.Summary(ctx, "user-1")
	// media/positive aporta 2 claves, media/negative 1, style/positive 1.
	if summary.TotalPreferences != 4 {
		t.Fatalf("expected 4 preference groups, got %d", summary.TotalPreferences)
	}
	if summary.TotalInteractions != 3 {
		t.Fatalf("expected 3 interactions, got %d", summary.TotalInteractions)
	}
	if len(summary.Categories) != 2 || summary.Categories[0] != "media" || summary.Categories[1] != "style" {
		t.Fatalf("unexpected categories: %+v", summary.Categories)
	}
}

func TestRoundTripReproducesProfile(t *testing.T) {
	repo := repository.NewMemoryProfileRepository()
	ctx := context.Background()

	first := NewPersonaService(repo, nil, zap.NewNop())
	if err := first.RecordObservation(ctx, "user-1", domain.Item{"genre": domain.StringValue("sci-fi")}, domain.RatingPositive, "media"); err != nil {
		t.Fatalf("record observation: %v", err)
	}

	// Un servicio nuevo sobre el mismo almacenamiento ve el mismo perfil.
	second := NewPersonaService(repo, nil, zap.NewNop())
	prefs := second.Preferences(ctx, "user-1")
	if !prefs.Positive["media"]["genre"].Contains(domain.StringValue("sci-fi")) {
		t.Fatalf("preferences lost across instances: %+v", prefs.Positive)
	}
	if got := second.Summary(ctx, "user-1").TotalInteractions; got != 1 {
		t.Fatalf("expected 1 interaction, got %d", got)
	}
}
