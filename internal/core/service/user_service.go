package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

// UserService is the reference backend's staff directory.
type UserService struct {
	repo   ports.AccountRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.AccountRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, a.User)
	}
	return users, nil
}

// ChangeRole sets the role of the user with platformID. The owner cannot be
// changed and nobody can be promoted to owner.
func (s *UserService) ChangeRole(ctx context.Context, platformID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if role == domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	target, err := s.repo.FindByPlatformID(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if !target.CanChangeRole() {
		return nil, domain.ErrOwnerImmutable
	}

	updated, err := s.repo.UpdateRole(ctx, platformID, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("platform_id", platformID).
		Str("from", string(target.Role)).
		Str("to", string(role)).
		Msg("user role changed")
	return &updated.User, nil
}
