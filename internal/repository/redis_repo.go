package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lexi-ai/internal/domain"
)

// RedisProfileRepository guarda el registro completo de cada usuario como
// un valor JSON bajo una clave derivada del user id, sin TTL.
type RedisProfileRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisProfileRepository(client *redis.Client) *RedisProfileRepository {
	if client == nil {
		return nil
	}
	return &RedisProfileRepository{
		client: client,
		prefix: "persona:profile:",
	}
}

func (r *RedisProfileRepository) Load(ctx context.Context, userID string) (domain.PersonaProfile, error) {
	data, err := r.client.Get(ctx, r.prefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (r *RedisProfileRepository) Save(ctx context.Context, profile domain.PersonaProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+profile.UserID, data, 0).Err(); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
