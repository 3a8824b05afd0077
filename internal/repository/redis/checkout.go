package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/desistore/storefront/internal/domain"
	apperrors "github.com/desistore/storefront/pkg/errors"
)

const keyPrefix = "checkout:session:"

// CheckoutSessionRepository implements repository.CheckoutSessionRepository
// using Redis. Sessions expire automatically via TTL; an abandoned
// checkout never needs explicit cleanup.
type CheckoutSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCheckoutSessionRepository creates a new Redis-backed session repository.
func NewCheckoutSessionRepository(client *redis.Client, ttl time.Duration) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the active checkout session for a user.
func (r *CheckoutSessionRepository) Get(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	key := keyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("checkout session", userID)
		}
		return nil, fmt.Errorf("redis get checkout session: %w", err)
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal checkout session: %w", err)
	}

	return &session, nil
}

// Save persists a session with the configured TTL. Saving refreshes the
// TTL, so an active checkout stays alive as long as the user keeps
// making progress.
func (r *CheckoutSessionRepository) Save(ctx context.Context, session *domain.CheckoutSession) error {
	key := keyPrefix + session.UserID

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal checkout session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set checkout session: %w", err)
	}

	return nil
}

// Delete removes a user's checkout session.
func (r *CheckoutSessionRepository) Delete(ctx context.Context, userID string) error {
	key := keyPrefix + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del checkout session: %w", err)
	}

	return nil
}
