package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/proelectric/proadmin/internal/core/domain"
)

func (g *Gateway) GetUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := g.req.Do(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}

	items := decodeList(raw)
	users := make([]domain.User, 0, len(items))
	for _, it := range items {
		users = append(users, userFromBody(it))
	}
	return users, nil
}

// UpdateUserRole is keyed by platform id, not by the numeric list id.
func (g *Gateway) UpdateUserRole(ctx context.Context, platformID string, role domain.Role) (*domain.User, error) {
	platformID = strings.TrimSpace(platformID)
	if platformID == "" {
		return nil, domain.NewValidationError("user has no platform id.")
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	raw, err := g.req.Do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(platformID)+"/role", roleRequest{Role: string(role)})
	if err != nil {
		return nil, err
	}
	u := userFromBody(raw)
	return &u, nil
}

// ChangeUserRole refuses to touch an owner, then delegates to UpdateUserRole.
func (g *Gateway) ChangeUserRole(ctx context.Context, target domain.User, role domain.Role) (*domain.User, error) {
	if !target.CanChangeRole() {
		return nil, domain.ErrOwnerImmutable
	}
	return g.UpdateUserRole(ctx, target.PlatformID, role)
}
