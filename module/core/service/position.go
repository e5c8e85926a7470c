package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/cache"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database"
)

// PositionService persists position reports and keeps a best-effort latest
// position cache. A nil cache disables caching entirely.
type PositionService struct {
	repo  database.PositionRepository
	cache cache.PositionCache
}

func NewPositionService(repo database.PositionRepository, posCache cache.PositionCache) *PositionService {
	return &PositionService{repo: repo, cache: posCache}
}

func (s *PositionService) SavePosition(ctx context.Context, cp *domain.ClientPosition) error {
	if err := s.repo.Insert(ctx, cp); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, cp); err != nil {
			log.Printf("position cache: set latest for %s: %v", cp.ClientID, err)
		}
	}
	return nil
}

func (s *PositionService) GetLatest(ctx context.Context, clientID string) (*domain.ClientPosition, error) {
	if s.cache != nil {
		cp, err := s.cache.GetLatest(ctx, clientID)
		if err != nil {
			log.Printf("position cache: get latest for %s: %v", clientID, err)
		} else if cp != nil {
			return cp, nil
		}
	}

	cp, err := s.repo.GetLatest(ctx, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	return cp, err
}

func (s *PositionService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClientPosition, error) {
	return s.repo.GetHistory(ctx, query)
}
