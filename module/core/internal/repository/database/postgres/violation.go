package postgres

import (
	"context"
	"database/sql"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database"
)

var _ database.ViolationRepository = (*ViolationRepo)(nil)

type ViolationRepo struct {
	db *sql.DB
}

func NewViolationRepo(db *sql.DB) *ViolationRepo {
	return &ViolationRepo{db: db}
}

func (r *ViolationRepo) Insert(ctx context.Context, v *domain.GeoZoneViolation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO geozone_violations (id, geozone_id, client_id, violation_type, latitude, longitude, notification_sent, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.GeoZoneID, v.ClientID, string(v.ViolationType), v.Latitude, v.Longitude, v.NotificationSent, v.CreatedAt,
	)
	return err
}

func (r *ViolationRepo) ListByClient(ctx context.Context, clientID string) ([]domain.GeoZoneViolation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, geozone_id, client_id, violation_type, latitude, longitude, notification_sent, created_at FROM geozone_violations WHERE client_id = $1 ORDER BY created_at DESC`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.GeoZoneViolation
	for rows.Next() {
		var v domain.GeoZoneViolation
		var vt string
		if err := rows.Scan(&v.ID, &v.GeoZoneID, &v.ClientID, &vt, &v.Latitude, &v.Longitude, &v.NotificationSent, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.ViolationType = domain.ViolationType(vt)
		results = append(results, v)
	}
	return results, rows.Err()
}

func (r *ViolationRepo) MarkNotificationSent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE geozone_violations SET notification_sent = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
