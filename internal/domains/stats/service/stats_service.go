package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/stats/model"
	"inkwell-backend/internal/domains/stats/repository"
	tenantservice "inkwell-backend/internal/domains/tenant/service"
	"inkwell-backend/pkg/logger"
)

const (
	// recordTimeout bounds the detached write so a slow database
	// cannot pile up goroutines forever
	recordTimeout = 5 * time.Second

	// seriesDays is the dashboard's daily window
	seriesDays = 30
)

type statsService struct {
	repo          repository.StatsRepository
	tenantService tenantservice.ServiceInterface
}

func NewStatsService(
	repo repository.StatsRepository,
	tenantService tenantservice.ServiceInterface,
) ServiceInterface {
	return &statsService{
		repo:          repo,
		tenantService: tenantService,
	}
}

// Record registers an engagement event. The caller has already been
// answered, so the writes run on a fresh background context rather
// than the request's, and any failure is logged and dropped.
func (s *statsService) Record(postID uuid.UUID, event model.EventType) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		// Step 1: Bump the lifetime counter; a miss means the post is
		// a draft or gone, and the day rollup is skipped too
		matched, err := s.repo.IncrementCounter(ctx, postID, event)
		if err != nil {
			logger.Error("failed to record engagement counter", err)
			return
		}
		if !matched {
			return
		}

		// Step 2: Fold the event into today's rollup row
		day := time.Now().UTC().Truncate(24 * time.Hour)
		if err := s.repo.UpsertDaily(ctx, postID, day, event); err != nil {
			logger.Error("failed to record daily rollup", err)
		}
	}()
}

// GetTenantStats builds the author dashboard aggregate
func (s *statsService) GetTenantStats(ctx context.Context, ownerID uuid.UUID) (*model.TenantStats, error) {
	// Step 1: Resolve the caller's tenant
	tenant, err := s.tenantService.EnsureForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Step 2: Lifetime totals from the fast counters
	views, shares, published, err := s.repo.TenantTotals(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	// Step 3: Daily series from the rollups
	daily, err := s.repo.DailySeries(ctx, tenant.ID, seriesDays)
	if err != nil {
		return nil, err
	}
	if daily == nil {
		daily = []model.DailyPoint{}
	}

	return &model.TenantStats{
		TotalViews:     views,
		TotalShares:    shares,
		PublishedPosts: published,
		Daily:          daily,
	}, nil
}

// Reconcile repairs daily rollups against the lifetime counters
func (s *statsService) Reconcile(ctx context.Context) (int64, error) {
	corrected, err := s.repo.ReconcileRollups(ctx)
	if err != nil {
		return 0, err
	}
	if corrected > 0 {
		logger.Info("reconciled engagement rollups", map[string]interface{}{
			"posts_corrected": corrected,
		})
	}
	return corrected, nil
}
