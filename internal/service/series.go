package service

import (
	"context"
	"time"

	"github.com/guttosm/taifexpulse/internal/domain/models"
	"github.com/guttosm/taifexpulse/internal/resample"
	"github.com/guttosm/taifexpulse/internal/storage"
)

// SeriesService defines business logic for serving nearby-contract series.
type SeriesService interface {
	GetNearbySeries(ctx context.Context, itemCode string, startDate *time.Time, endDate *time.Time) ([]models.NearbyBar, error)
}

type seriesService struct {
	repo storage.BarsRepository
}

func NewSeriesService(repo storage.BarsRepository) SeriesService {
	return &seriesService{repo: repo}
}

// GetNearbySeries loads the accumulated bars for the item code and applies
// front-month selection over them, so the API always serves the same series
// the batch run produces.
func (s *seriesService) GetNearbySeries(ctx context.Context, itemCode string, startDate *time.Time, endDate *time.Time) ([]models.NearbyBar, error) {
	bars, err := s.repo.GetBarsByItem(itemCode, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}
	return resample.FilterNearby(bars, itemCode), nil
}
