package publisher

import (
	"context"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
)

type ViolationNotifier interface {
	NotifyViolation(ctx context.Context, alert *domain.ViolationAlert) error
}
