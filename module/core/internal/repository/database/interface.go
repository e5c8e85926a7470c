package database

import (
	"context"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
)

type ClientRepository interface {
	Insert(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.Client, error)
	GetAll(ctx context.Context) ([]domain.Client, error)
}

type GeoZoneRepository interface {
	Insert(ctx context.Context, zone *domain.GeoZone) error
	Update(ctx context.Context, zone *domain.GeoZone) error
	GetByID(ctx context.Context, id string) (*domain.GeoZone, error)
	Delete(ctx context.Context, id string) error
	ListByClient(ctx context.Context, clientID string) ([]domain.GeoZone, error)
	ListActiveByClient(ctx context.Context, clientID string) ([]domain.GeoZone, error)
}

type ViolationRepository interface {
	Insert(ctx context.Context, v *domain.GeoZoneViolation) error
	ListByClient(ctx context.Context, clientID string) ([]domain.GeoZoneViolation, error)
	MarkNotificationSent(ctx context.Context, id string) error
}

type PositionRepository interface {
	Insert(ctx context.Context, cp *domain.ClientPosition) error
	GetLatest(ctx context.Context, clientID string) (*domain.ClientPosition, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClientPosition, error)
}
