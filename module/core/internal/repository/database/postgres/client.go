package postgres

import (
	"context"
	"database/sql"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database"
)

var _ database.ClientRepository = (*ClientRepo)(nil)

type ClientRepo struct {
	db *sql.DB
}

func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) Insert(ctx context.Context, c *domain.Client) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, full_name, device_id, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.FullName, c.DeviceID, c.CreatedAt,
	)
	return err
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, device_id, created_at FROM clients WHERE id = $1`,
		id,
	)
	return scanClient(row)
}

func (r *ClientRepo) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, device_id, created_at FROM clients WHERE device_id = $1`,
		deviceID,
	)
	return scanClient(row)
}

func (r *ClientRepo) GetAll(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name, device_id, created_at FROM clients ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FullName, &c.DeviceID, &c.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func scanClient(row *sql.Row) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.FullName, &c.DeviceID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
