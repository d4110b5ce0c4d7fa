package gateway

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

const dashboardOrders = 50

// LoadDashboard issues the home screen's fixed batch concurrently and joins
// it. If any request fails the whole batch fails. The staff list is part of
// the batch only for a viewer allowed to read it; everyone else gets an
// empty one.
func (g *Gateway) LoadDashboard(ctx context.Context, viewer domain.Role) (*ports.Dashboard, error) {
	var (
		orders []domain.Order
		users  = []domain.User{}
	)

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		orders, err = g.GetOrders(gctx, ports.ListOrdersFilter{Status: domain.StatusAll, Limit: dashboardOrders})
		return err
	})
	if viewer.CanManageStaff() {
		grp.Go(func() error {
			var err error
			users, err = g.GetUsers(gctx)
			return err
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return &ports.Dashboard{Orders: orders, Users: users}, nil
}
