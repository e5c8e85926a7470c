package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// LatLng is one polygon vertex. It marshals as a 2-element [lat, lon] array
// so a stored polygon is a plain JSON array of coordinate pairs.
type LatLng struct {
	Lat float64
	Lon float64
}

func (p LatLng) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lon})
}

func (p *LatLng) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate pair: expected 2 elements, got %d", len(pair))
	}
	p.Lat = pair[0]
	p.Lon = pair[1]
	return nil
}

// Polygon is an ordered closed ring; the last vertex connects back to the
// first implicitly. Rings with fewer than 3 vertices contain no points.
type Polygon []LatLng

type GeoZone struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Polygon   Polygon   `json:"polygon"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GeoZoneUpdate carries partial-update fields: nil means "keep current value".
type GeoZoneUpdate struct {
	Name     *string
	Polygon  Polygon
	IsActive *bool
}

type ViolationType string

const (
	ViolationExit ViolationType = "EXIT"
	// ViolationEntry is declared for forward compatibility; the evaluation
	// loop currently only emits EXIT.
	ViolationEntry ViolationType = "ENTRY"
)

type GeoZoneViolation struct {
	ID               string        `json:"id"`
	GeoZoneID        string        `json:"geo_zone_id"`
	ClientID         string        `json:"client_id"`
	ViolationType    ViolationType `json:"violation_type"`
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	NotificationSent bool          `json:"notification_sent"`
	CreatedAt        time.Time     `json:"created_at"`
}

// ViolationAlert is the payload handed to the notification dispatcher.
type ViolationAlert struct {
	ClientName    string        `json:"client_name"`
	ZoneName      string        `json:"zone_name"`
	ViolationType ViolationType `json:"violation_type"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	Timestamp     int64         `json:"timestamp"`
}
