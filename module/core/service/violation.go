package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/publisher"
)

// ViolationService evaluates incoming positions against a client's active
// geozones and records a violation for every zone the point falls outside of.
type ViolationService struct {
	violations database.ViolationRepository
	zones      database.GeoZoneRepository
	clients    database.ClientRepository
	notifier   publisher.ViolationNotifier
}

func NewViolationService(
	violations database.ViolationRepository,
	zones database.GeoZoneRepository,
	clients database.ClientRepository,
	notifier publisher.ViolationNotifier,
) *ViolationService {
	return &ViolationService{
		violations: violations,
		zones:      zones,
		clients:    clients,
		notifier:   notifier,
	}
}

// Evaluate runs one position report through every active zone of the client.
// It never surfaces an error: the ingestion path must continue regardless of
// geofence outcome. An unknown client is a silent no-op, since external
// position feeds may reference stale device IDs. Each out-of-bounds zone gets
// a fresh violation record on every call; there is no "already outside"
// suppression state.
func (s *ViolationService) Evaluate(ctx context.Context, clientID string, lat, lon float64) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("geofence: lookup client %s: %v", clientID, err)
		}
		return
	}

	zones, err := s.zones.ListActiveByClient(ctx, clientID)
	if err != nil {
		log.Printf("geofence: list active zones for %s: %v", clientID, err)
		return
	}

	for _, zone := range zones {
		if pointInPolygon(lat, lon, zone.Polygon) {
			continue
		}

		v := &domain.GeoZoneViolation{
			ID:               uuid.NewString(),
			GeoZoneID:        zone.ID,
			ClientID:         clientID,
			ViolationType:    domain.ViolationExit,
			Latitude:         lat,
			Longitude:        lon,
			NotificationSent: false,
			CreatedAt:        time.Now().UTC(),
		}
		if err := s.violations.Insert(ctx, v); err != nil {
			log.Printf("geofence: record violation for zone %s: %v", zone.ID, err)
			continue
		}

		// Record-then-notify: a notify failure never rolls back the record.
		alert := &domain.ViolationAlert{
			ClientName:    client.FullName,
			ZoneName:      zone.Name,
			ViolationType: v.ViolationType,
			Latitude:      lat,
			Longitude:     lon,
			Timestamp:     v.CreatedAt.Unix(),
		}
		if err := s.notifier.NotifyViolation(ctx, alert); err != nil {
			log.Printf("geofence: notify violation %s: %v", v.ID, err)
		}
	}
}

func (s *ViolationService) ListForClient(ctx context.Context, clientID string) ([]domain.GeoZoneViolation, error) {
	return s.violations.ListByClient(ctx, clientID)
}

// MarkNotificationSent flips the notification_sent flag once an external
// actor has delivered the notification. The evaluation loop itself never
// touches the flag.
func (s *ViolationService) MarkNotificationSent(ctx context.Context, violationID string) error {
	err := s.violations.MarkNotificationSent(ctx, violationID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrViolationNotFound
	}
	return err
}

// pointInPolygon reports whether the point lies inside the closed ring using
// the ray-casting even-odd rule: a horizontal ray cast eastward from the
// point toggles the inside flag on every edge crossing. Rings with fewer
// than 3 vertices contain no points. Points exactly on an edge get the
// standard ray-casting ambiguity, deterministic for fixed float arithmetic.
func pointInPolygon(lat, lon float64, polygon domain.Polygon) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		if (pi.Lat > lat) != (pj.Lat > lat) &&
			lon < (pj.Lon-pi.Lon)*(lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon {
			inside = !inside
		}
		j = i
	}
	return inside
}
