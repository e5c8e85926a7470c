package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/service"
)

type mockClientSvc struct {
	registerFn func(ctx context.Context, fullName, deviceID string) (*domain.Client, error)
	getByIDFn  func(ctx context.Context, id string) (*domain.Client, error)
	getAllFn   func(ctx context.Context) ([]domain.Client, error)
}

func (m *mockClientSvc) Register(ctx context.Context, fullName, deviceID string) (*domain.Client, error) {
	return m.registerFn(ctx, fullName, deviceID)
}

func (m *mockClientSvc) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockClientSvc) GetAll(ctx context.Context) ([]domain.Client, error) {
	return m.getAllFn(ctx)
}

type mockPositionSvc struct {
	getLatestFn  func(ctx context.Context, clientID string) (*domain.ClientPosition, error)
	getHistoryFn func(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClientPosition, error)
}

func (m *mockPositionSvc) GetLatest(ctx context.Context, clientID string) (*domain.ClientPosition, error) {
	return m.getLatestFn(ctx, clientID)
}

func (m *mockPositionSvc) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClientPosition, error) {
	return m.getHistoryFn(ctx, query)
}

func setupClientRouter(clientSvc clientService, positionSvc positionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewClientHandler(clientSvc, positionSvc)
	h.Register(r.Group(""))
	return r
}

func TestRegisterClient_Created(t *testing.T) {
	svc := &mockClientSvc{
		registerFn: func(_ context.Context, fullName, deviceID string) (*domain.Client, error) {
			return &domain.Client{ID: "client-1", FullName: fullName, DeviceID: deviceID}, nil
		},
	}

	r := setupClientRouter(svc, &mockPositionSvc{})
	body := []byte(`{"full_name":"Askar Dzhumabekov","device_id":"DEV-000001"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/clients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterClient_MissingDeviceID(t *testing.T) {
	r := setupClientRouter(&mockClientSvc{}, &mockPositionSvc{})
	body := []byte(`{"full_name":"Askar Dzhumabekov"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/clients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetClient_NotFound(t *testing.T) {
	svc := &mockClientSvc{
		getByIDFn: func(_ context.Context, _ string) (*domain.Client, error) {
			return nil, service.ErrClientNotFound
		},
	}

	r := setupClientRouter(svc, &mockPositionSvc{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/clients/missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetLatestPosition_Success(t *testing.T) {
	ts := time.Unix(1715003456, 0)
	posSvc := &mockPositionSvc{
		getLatestFn: func(_ context.Context, clientID string) (*domain.ClientPosition, error) {
			return &domain.ClientPosition{
				ClientID: clientID,
				Position: domain.Position{Lat: 42.8746, Lon: 74.5698, Timestamp: ts},
			}, nil
		},
	}

	r := setupClientRouter(&mockClientSvc{}, posSvc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/clients/client-1/position", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp positionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Latitude != 42.8746 || resp.Timestamp != 1715003456 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGetLatestPosition_NotFound(t *testing.T) {
	posSvc := &mockPositionSvc{
		getLatestFn: func(_ context.Context, _ string) (*domain.ClientPosition, error) {
			return nil, errors.New("not found")
		},
	}

	r := setupClientRouter(&mockClientSvc{}, posSvc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/clients/missing/position", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetHistory_InvalidRange(t *testing.T) {
	r := setupClientRouter(&mockClientSvc{}, &mockPositionSvc{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/clients/client-1/history?start=abc&end=123", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetHistory_Success(t *testing.T) {
	posSvc := &mockPositionSvc{
		getHistoryFn: func(_ context.Context, query *domain.HistoryQuery) ([]domain.ClientPosition, error) {
			if query.ClientID != "client-1" {
				t.Fatalf("unexpected clientID: %s", query.ClientID)
			}
			return []domain.ClientPosition{
				{ClientID: query.ClientID, Position: domain.Position{Lat: 42.87, Lon: 74.56, Timestamp: time.Unix(1715000000, 0)}},
			}, nil
		},
	}

	r := setupClientRouter(&mockClientSvc{}, posSvc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/clients/client-1/history?start=1715000000&end=1715009999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var results []positionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
