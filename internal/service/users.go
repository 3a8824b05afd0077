package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/desistore/storefront/internal/cache"
	"github.com/desistore/storefront/internal/gateway"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/logger"
)

// UserService resolves the calling user's role and profile. Roles are
// cached per user so the admin gate does not cost a backend round-trip
// on every request.
type UserService struct {
	gw     gateway.Gateway
	cache  *cache.QueryCache
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(gw gateway.Gateway, qc *cache.QueryCache, logger *slog.Logger) *UserService {
	return &UserService{
		gw:     gw,
		cache:  qc,
		logger: logger,
	}
}

// GetRole returns the calling user's role. Anonymous callers are
// guests without a backend call.
func (s *UserService) GetRole(ctx context.Context) (gateway.UserRole, error) {
	userID := logger.UserIDFromContext(ctx)
	if userID == "" {
		return gateway.RoleGuest, nil
	}

	key := cache.RoleKey(userID)
	var role gateway.UserRole
	if hit, err := s.cache.Get(ctx, key, &role); err != nil {
		s.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	} else if hit {
		return role, nil
	}

	role, err := s.gw.GetCallerUserRole(ctx)
	if err != nil {
		return "", fmt.Errorf("get caller role: %w", err)
	}

	if err := s.cache.Set(ctx, key, role); err != nil {
		s.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return role, nil
}

// IsAdmin reports whether the calling user has the admin role.
func (s *UserService) IsAdmin(ctx context.Context) (bool, error) {
	role, err := s.GetRole(ctx)
	if err != nil {
		return false, err
	}
	return role == gateway.RoleAdmin, nil
}

// RequireAdmin returns a forbidden error unless the caller is an admin.
func (s *UserService) RequireAdmin(ctx context.Context) error {
	admin, err := s.IsAdmin(ctx)
	if err != nil {
		return err
	}
	if !admin {
		return apperrors.Forbidden("admin role required")
	}
	return nil
}

// GetProfile returns the calling user's profile.
func (s *UserService) GetProfile(ctx context.Context) (gateway.UserProfile, error) {
	if logger.UserIDFromContext(ctx) == "" {
		return gateway.UserProfile{}, apperrors.Unauthorized("user id is required")
	}

	profile, err := s.gw.GetCallerUserProfile(ctx)
	if err != nil {
		return gateway.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// SaveProfile updates the calling user's profile.
func (s *UserService) SaveProfile(ctx context.Context, p gateway.UserProfile) error {
	if logger.UserIDFromContext(ctx) == "" {
		return apperrors.Unauthorized("user id is required")
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return apperrors.InvalidInput("name is required")
	}

	if err := s.gw.SaveCallerUserProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
