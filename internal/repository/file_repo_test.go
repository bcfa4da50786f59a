package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"lexi-ai/internal/domain"
)

func sampleProfile(userID string) domain.PersonaProfile {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	profile := domain.NewPersonaProfile(userID, now)
	profile.Preferences.Positive.Add("media", "genre", domain.StringValue("sci-fi"))
	profile.Preferences.Negative.Add("media", "genre", domain.StringValue("horror"))
	profile.Interactions = append(profile.Interactions, domain.Interaction{
		ID:        "i-1",
		Timestamp: now,
		Item:      domain.Item{"genre": domain.StringValue("sci-fi")},
		Rating:    domain.RatingPositive,
		Category:  "media",
	})
	return profile
}

func TestFileRepoRoundTrip(t *testing.T) {
	repo := NewFileProfileRepository(t.TempDir())
	ctx := context.Background()

	saved := sampleProfile("user-1")
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", loaded.UserID)
	}
	if !loaded.Preferences.Positive["media"]["genre"].Contains(domain.StringValue("sci-fi")) {
		t.Fatalf("positive preference lost in round trip: %+v", loaded.Preferences.Positive)
	}
	if len(loaded.Interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(loaded.Interactions))
	}
	if !loaded.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("created_at changed: %v vs %v", loaded.CreatedAt, saved.CreatedAt)
	}
}

func TestFileRepoLoadMissingUser(t *testing.T) {
	repo := NewFileProfileRepository(t.TempDir())

	_, err := repo.Load(context.Background(), "nobody")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestFileRepoLoadMalformedData(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileProfileRepository(dir)

	if err := os.WriteFile(repo.path("user-1"), []byte("not json {"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err := repo.Load(context.Background(), "user-1")
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("corrupt data should not look like a missing profile")
	}
}

func TestFileRepoPathIsDeterministic(t *testing.T) {
	repo := NewFileProfileRepository("data")
	first := repo.path("user/../with:odd chars")
	second := repo.path("user/../with:odd chars")
	if first != second {
		t.Fatalf("path not deterministic: %q vs %q", first, second)
	}
	if first == repo.path("other-user") {
		t.Fatalf("distinct users mapped to the same file")
	}
}

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	if _, err := repo.Load(ctx, "user-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	saved := sampleProfile("user-1")
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(loaded.Interactions))
	}

	// Mutar lo cargado no debe afectar lo guardado.
	loaded.Preferences.Positive.Add("media", "genre", domain.StringValue("drama"))
	again, err := repo.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Preferences.Positive["media"]["genre"].Contains(domain.StringValue("drama")) {
		t.Fatalf("stored profile mutated through a loaded copy")
	}
}
