package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
)

const topicPattern = "/supervision/device/+/position"

type clientService interface {
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.Client, error)
}

type positionService interface {
	SavePosition(ctx context.Context, cp *domain.ClientPosition) error
}

type violationService interface {
	Evaluate(ctx context.Context, clientID string, lat, lon float64)
}

type positionMessage struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// PositionSubscriber consumes device position reports from the tracking feed
// and runs each one through storage and geofence evaluation.
type PositionSubscriber struct {
	client       mqtt.Client
	clientSvc    clientService
	positionSvc  positionService
	violationSvc violationService
}

func NewPositionSubscriber(client mqtt.Client, clientSvc clientService, positionSvc positionService, violationSvc violationService) *PositionSubscriber {
	return &PositionSubscriber{
		client:       client,
		clientSvc:    clientSvc,
		positionSvc:  positionSvc,
		violationSvc: violationSvc,
	}
}

func (s *PositionSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PositionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw positionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid position message: %v", err)
		return
	}

	if err := validatePositionMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	ctx := context.Background()

	// Stale or unregistered devices are expected on the external feed.
	client, err := s.clientSvc.GetByDeviceID(ctx, raw.DeviceID)
	if err != nil {
		log.Printf("unknown device %s, dropping report: %v", raw.DeviceID, err)
		return
	}

	cp := &domain.ClientPosition{
		ClientID: client.ID,
		Position: domain.Position{
			Lat:       raw.Latitude,
			Lon:       raw.Longitude,
			Timestamp: time.Unix(raw.Timestamp, 0),
		},
	}

	if err := s.positionSvc.SavePosition(ctx, cp); err != nil {
		log.Printf("save position error: %v", err)
		return
	}

	s.violationSvc.Evaluate(ctx, client.ID, raw.Latitude, raw.Longitude)
}

func validatePositionMessage(msg *positionMessage) error {
	if msg.DeviceID == "" {
		return fmt.Errorf("device_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
