package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
)

func TestRegisterClient(t *testing.T) {
	var inserted *domain.Client
	repo := &mockClientRepo{
		insertFn: func(_ context.Context, c *domain.Client) error {
			inserted = c
			return nil
		},
	}

	svc := NewClientService(repo)
	c, err := svc.Register(context.Background(), "Askar Dzhumabekov", "DEV-000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted == nil {
		t.Fatal("expected Insert to be called")
	}
	if c.ID == "" {
		t.Error("expected generated client ID")
	}
	if c.FullName != "Askar Dzhumabekov" || c.DeviceID != "DEV-000001" {
		t.Errorf("unexpected client: %+v", c)
	}
}

func TestGetClientByDeviceID_NotFound(t *testing.T) {
	repo := &mockClientRepo{
		getByDeviceIDFn: func(_ context.Context, _ string) (*domain.Client, error) {
			return nil, sql.ErrNoRows
		},
	}

	svc := NewClientService(repo)
	_, err := svc.GetByDeviceID(context.Background(), "DEV-UNKNOWN")
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestGetClientByID_NotFound(t *testing.T) {
	repo := &mockClientRepo{
		getByIDFn: func(_ context.Context, _ string) (*domain.Client, error) {
			return nil, sql.ErrNoRows
		},
	}

	svc := NewClientService(repo)
	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
