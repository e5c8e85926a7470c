package cache

import (
	"context"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
)

// PositionCache holds the most recent known position per client. A miss is
// reported as (nil, nil); callers fall back to the database.
type PositionCache interface {
	SetLatest(ctx context.Context, cp *domain.ClientPosition) error
	GetLatest(ctx context.Context, clientID string) (*domain.ClientPosition, error)
}
