package postgres

import (
	"context"
	"database/sql"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

type PositionRepo struct {
	db *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo {
	return &PositionRepo{db: db}
}

func (r *PositionRepo) Insert(ctx context.Context, cp *domain.ClientPosition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO client_positions (client_id, latitude, longitude, timestamp) VALUES ($1, $2, $3, $4)`,
		cp.ClientID, cp.Position.Lat, cp.Position.Lon, cp.Position.Timestamp,
	)
	return err
}

func (r *PositionRepo) GetLatest(ctx context.Context, clientID string) (*domain.ClientPosition, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT client_id, latitude, longitude, timestamp FROM client_positions WHERE client_id = $1 ORDER BY timestamp DESC LIMIT 1`,
		clientID,
	)

	var cp domain.ClientPosition
	if err := row.Scan(&cp.ClientID, &cp.Position.Lat, &cp.Position.Lon, &cp.Position.Timestamp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *PositionRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClientPosition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT client_id, latitude, longitude, timestamp FROM client_positions WHERE client_id = $1 AND timestamp >= $2 AND timestamp <= $3 ORDER BY timestamp ASC`,
		query.ClientID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.ClientPosition
	for rows.Next() {
		var cp domain.ClientPosition
		if err := rows.Scan(&cp.ClientID, &cp.Position.Lat, &cp.Position.Lon, &cp.Position.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, cp)
	}
	return results, rows.Err()
}
