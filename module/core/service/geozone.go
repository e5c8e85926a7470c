package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database"
)

// GeoZoneService owns the persisted geozone collection. Zones belong to a
// client and only active zones participate in violation evaluation.
type GeoZoneService struct {
	zones   database.GeoZoneRepository
	clients database.ClientRepository
}

func NewGeoZoneService(zones database.GeoZoneRepository, clients database.ClientRepository) *GeoZoneService {
	return &GeoZoneService{zones: zones, clients: clients}
}

func (s *GeoZoneService) Create(ctx context.Context, clientID, name string, polygon domain.Polygon) (*domain.GeoZone, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	zone := &domain.GeoZone{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Name:      name,
		Polygon:   polygon,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.zones.Insert(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Update applies partial-update semantics: every nil field of upd keeps the
// zone's current value.
func (s *GeoZoneService) Update(ctx context.Context, zoneID string, upd *domain.GeoZoneUpdate) (*domain.GeoZone, error) {
	zone, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	if upd.Name != nil {
		zone.Name = *upd.Name
	}
	if upd.Polygon != nil {
		zone.Polygon = upd.Polygon
	}
	if upd.IsActive != nil {
		zone.IsActive = *upd.IsActive
	}
	zone.UpdatedAt = time.Now().UTC()

	if err := s.zones.Update(ctx, zone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return zone, nil
}

// Delete removes the zone. Violations already recorded against it persist.
func (s *GeoZoneService) Delete(ctx context.Context, zoneID string) error {
	err := s.zones.Delete(ctx, zoneID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrZoneNotFound
	}
	return err
}

func (s *GeoZoneService) ListAllForClient(ctx context.Context, clientID string) ([]domain.GeoZone, error) {
	return s.zones.ListByClient(ctx, clientID)
}

func (s *GeoZoneService) ListActiveForClient(ctx context.Context, clientID string) ([]domain.GeoZone, error) {
	return s.zones.ListActiveByClient(ctx, clientID)
}
