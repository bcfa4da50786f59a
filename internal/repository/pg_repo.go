package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lexi-ai/internal/domain"
)

// PgProfileRepository guarda el registro completo de cada usuario como
// jsonb en la tabla persona_profiles.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Load(ctx context.Context, userID string) (domain.PersonaProfile, error) {
	const query = `
		SELECT profile
		FROM persona_profiles
		WHERE user_id = $1
	`
	var data []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PersonaProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.PersonaProfile{}, fmt.Errorf("read profile: %w", err)
	}

	var profile domain.PersonaProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return domain.PersonaProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	profile.Normalize()
	return profile, nil
}

func (r *PgProfileRepository) Save(ctx context.Context, profile domain.PersonaProfile) error {
	const query = `
		INSERT INTO persona_profiles (user_id, profile, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET profile = EXCLUDED.profile, updated_at = now()
	`
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, profile.UserID, data); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
