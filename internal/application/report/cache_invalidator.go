package report

import (
	"context"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// DashboardCacheInvalidator drops the cached dashboard counters whenever
// any ledger aggregate changes. It subscribes to all event types; every
// domain event in this system implies at least one counter moved.
type DashboardCacheInvalidator struct {
	cache  cache.Cache
	logger *zap.Logger
}

// NewDashboardCacheInvalidator creates a new DashboardCacheInvalidator
func NewDashboardCacheInvalidator(dashboardCache cache.Cache, logger *zap.Logger) *DashboardCacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardCacheInvalidator{
		cache:  dashboardCache,
		logger: logger,
	}
}

// Handle drops the cached counters
func (h *DashboardCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Delete(ctx, DashboardCacheKey); err != nil {
		h.logger.Warn("failed to invalidate dashboard cache",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
	return nil
}

// EventTypes returns an empty slice so the handler receives every event
func (h *DashboardCacheInvalidator) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*DashboardCacheInvalidator)(nil)
