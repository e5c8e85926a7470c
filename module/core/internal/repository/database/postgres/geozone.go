package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database"
)

var _ database.GeoZoneRepository = (*GeoZoneRepo)(nil)

type GeoZoneRepo struct {
	db *sql.DB
}

func NewGeoZoneRepo(db *sql.DB) *GeoZoneRepo {
	return &GeoZoneRepo{db: db}
}

func (r *GeoZoneRepo) Insert(ctx context.Context, zone *domain.GeoZone) error {
	polygon, err := json.Marshal(zone.Polygon)
	if err != nil {
		return fmt.Errorf("marshal polygon: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO geozones (id, client_id, name, polygon, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		zone.ID, zone.ClientID, zone.Name, polygon, zone.IsActive, zone.CreatedAt, zone.UpdatedAt,
	)
	return err
}

func (r *GeoZoneRepo) Update(ctx context.Context, zone *domain.GeoZone) error {
	polygon, err := json.Marshal(zone.Polygon)
	if err != nil {
		return fmt.Errorf("marshal polygon: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE geozones SET name = $2, polygon = $3, is_active = $4, updated_at = $5 WHERE id = $1`,
		zone.ID, zone.Name, polygon, zone.IsActive, zone.UpdatedAt,
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

func (r *GeoZoneRepo) GetByID(ctx context.Context, id string) (*domain.GeoZone, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, client_id, name, polygon, is_active, created_at, updated_at FROM geozones WHERE id = $1`,
		id,
	)

	var zone domain.GeoZone
	var polygon []byte
	if err := row.Scan(&zone.ID, &zone.ClientID, &zone.Name, &polygon, &zone.IsActive, &zone.CreatedAt, &zone.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(polygon, &zone.Polygon); err != nil {
		return nil, fmt.Errorf("unmarshal polygon: %w", err)
	}
	return &zone, nil
}

func (r *GeoZoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geozones WHERE id = $1`, id)
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

func (r *GeoZoneRepo) ListByClient(ctx context.Context, clientID string) ([]domain.GeoZone, error) {
	return r.list(ctx,
		`SELECT id, client_id, name, polygon, is_active, created_at, updated_at FROM geozones WHERE client_id = $1 ORDER BY created_at ASC`,
		clientID,
	)
}

func (r *GeoZoneRepo) ListActiveByClient(ctx context.Context, clientID string) ([]domain.GeoZone, error) {
	return r.list(ctx,
		`SELECT id, client_id, name, polygon, is_active, created_at, updated_at FROM geozones WHERE client_id = $1 AND is_active = TRUE ORDER BY created_at ASC`,
		clientID,
	)
}

func (r *GeoZoneRepo) list(ctx context.Context, query string, clientID string) ([]domain.GeoZone, error) {
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.GeoZone
	for rows.Next() {
		var zone domain.GeoZone
		var polygon []byte
		if err := rows.Scan(&zone.ID, &zone.ClientID, &zone.Name, &polygon, &zone.IsActive, &zone.CreatedAt, &zone.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(polygon, &zone.Polygon); err != nil {
			return nil, fmt.Errorf("unmarshal polygon: %w", err)
		}
		results = append(results, zone)
	}
	return results, rows.Err()
}
