package service

import "errors"

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrZoneNotFound      = errors.New("geozone not found")
	ErrViolationNotFound = errors.New("violation not found")
)
