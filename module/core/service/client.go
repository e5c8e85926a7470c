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

type ClientService struct {
	repo database.ClientRepository
}

func NewClientService(repo database.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) Register(ctx context.Context, fullName, deviceID string) (*domain.Client, error) {
	c := &domain.Client{
		ID:        uuid.NewString(),
		FullName:  fullName,
		DeviceID:  deviceID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	return c, err
}

func (s *ClientService) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Client, error) {
	c, err := s.repo.GetByDeviceID(ctx, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	return c, err
}

func (s *ClientService) GetAll(ctx context.Context) ([]domain.Client, error) {
	return s.repo.GetAll(ctx)
}
