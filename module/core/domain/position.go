package domain

import "time"

type Position struct {
	Lat       float64   `json:"latitude"`
	Lon       float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type ClientPosition struct {
	ClientID string   `json:"client_id"`
	Position Position `json:"position"`
}

type HistoryQuery struct {
	ClientID string
	Start    time.Time
	End      time.Time
}
