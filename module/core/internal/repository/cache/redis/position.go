package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/cache"
)

var _ cache.PositionCache = (*PositionCache)(nil)

const latestPositionTTL = 10 * time.Minute

type PositionCache struct {
	client *redis.Client
}

func NewPositionCache(client *redis.Client) *PositionCache {
	return &PositionCache{client: client}
}

func latestKey(clientID string) string {
	return "client:" + clientID + ":latest_position"
}

type cachedPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

func (c *PositionCache) SetLatest(ctx context.Context, cp *domain.ClientPosition) error {
	payload, err := json.Marshal(cachedPosition{
		Latitude:  cp.Position.Lat,
		Longitude: cp.Position.Lon,
		Timestamp: cp.Position.Timestamp.Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal position: %w", err)
	}
	return c.client.Set(ctx, latestKey(cp.ClientID), payload, latestPositionTTL).Err()
}

func (c *PositionCache) GetLatest(ctx context.Context, clientID string) (*domain.ClientPosition, error) {
	raw, err := c.client.Get(ctx, latestKey(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached cachedPosition
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("unmarshal position: %w", err)
	}
	return &domain.ClientPosition{
		ClientID: clientID,
		Position: domain.Position{
			Lat:       cached.Latitude,
			Lon:       cached.Longitude,
			Timestamp: time.Unix(cached.Timestamp, 0),
		},
	}, nil
}
