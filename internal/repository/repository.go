package repository

import (
	"context"

	"github.com/desistore/storefront/internal/domain"
)

// CheckoutSessionRepository defines persistence for in-progress
// checkout sessions. Sessions are keyed by user: a user has at most one
// active session at a time.
type CheckoutSessionRepository interface {
	// Get retrieves the active session for a user.
	Get(ctx context.Context, userID string) (*domain.CheckoutSession, error)

	// Save persists a session, overwriting any existing session for the user.
	Save(ctx context.Context, session *domain.CheckoutSession) error

	// Delete removes a user's session.
	Delete(ctx context.Context, userID string) error
}
