package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/publisher"
)

var _ publisher.ViolationNotifier = (*ViolationNotifier)(nil)

const (
	exchangeName = "supervision.events"
	queueName    = "geozone_violation_alerts"
)

type ViolationNotifier struct {
	ch *amqp.Channel
}

func NewViolationNotifier(conn *amqp.Connection) (*ViolationNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &ViolationNotifier{ch: ch}, nil
}

type alertMessage struct {
	ClientName    string               `json:"client_name"`
	ZoneName      string               `json:"zone_name"`
	ViolationType domain.ViolationType `json:"violation_type"`
	Location      alertLocation        `json:"location"`
	Timestamp     int64                `json:"timestamp"`
}

type alertLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (n *ViolationNotifier) NotifyViolation(ctx context.Context, alert *domain.ViolationAlert) error {
	msg := alertMessage{
		ClientName:    alert.ClientName,
		ZoneName:      alert.ZoneName,
		ViolationType: alert.ViolationType,
		Location: alertLocation{
			Latitude:  alert.Latitude,
			Longitude: alert.Longitude,
		},
		Timestamp: alert.Timestamp,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	return n.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
