package projections

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"preorder/internal/domain/notice"
	"preorder/internal/domain/preorder"
)

// AdminDashboardStore defines the preorder store interface needed by the admin dashboard.
type AdminDashboardStore interface {
	ListAll(ctx context.Context) ([]preorder.Preorder, error)
	Stats(ctx context.Context, now time.Time) (preorder.Stats, error)
}

// GetAdminDashboardDeps holds dependencies for the admin dashboard projection.
type GetAdminDashboardDeps struct {
	PreorderStore AdminDashboardStore
}

// AdminDashboardResult is everything the admin page shows.
// When either read fails Notice is set and the other half is still filled in.
type AdminDashboardResult struct {
	Preorders []preorder.Preorder `json:"preorders"`
	Stats     preorder.Stats      `json:"stats"`
	StatsOK   bool                `json:"stats_ok"`
	Notice    notice.Notice       `json:"notice"`
}

// QueryGetAdminDashboard loads all preorders and the stats snapshot.
// PRE: caller is already authorized
// POST: Preorders is non-nil and ordered newest first; Notice is LoadFailed if
// either read failed
func QueryGetAdminDashboard(ctx context.Context, deps GetAdminDashboardDeps, now time.Time) AdminDashboardResult {
	var (
		records []preorder.Preorder
		stats   preorder.Stats
		statsOK bool
		// Plain group on the caller's ctx: a failed half must not cancel the other.
		g errgroup.Group
	)

	g.Go(func() error {
		list, err := deps.PreorderStore.ListAll(ctx)
		if err != nil {
			slog.Error("admin_dashboard_load_failed", "part", "preorders", "error", err)
			return err
		}
		records = list
		return nil
	})
	g.Go(func() error {
		snap, err := deps.PreorderStore.Stats(ctx, now)
		if err != nil {
			slog.Error("admin_dashboard_load_failed", "part", "stats", "error", err)
			return err
		}
		stats, statsOK = snap, true
		return nil
	})

	result := AdminDashboardResult{Preorders: []preorder.Preorder{}}
	if err := g.Wait(); err != nil {
		result.Notice = notice.LoadFailed
	}
	if records != nil {
		result.Preorders = records
	}
	if statsOK {
		result.Stats = stats
		result.StatsOK = true
	}
	return result
}
