package domain

import "time"

// Client is a supervised person registered with the service. DeviceID is the
// unique identifier the external tracking feed reports positions under.
type Client struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	DeviceID  string    `json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
}
