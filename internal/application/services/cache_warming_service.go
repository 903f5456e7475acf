package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/broki/marketplace-api/internal/domain/repositories"
)

// CacheWarmingService preloads reference lists that most pages request
type CacheWarmingService struct {
	cities     repositories.CityRepository
	categories repositories.CategoryRepository
}

// NewCacheWarmingService creates a new cache warming service. The
// repositories are expected to be the cached adapters.
func NewCacheWarmingService(cities repositories.CityRepository, categories repositories.CategoryRepository) *CacheWarmingService {
	return &CacheWarmingService{cities: cities, categories: categories}
}

// WarmCache loads cities and categories so they are cached
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	cities, err := s.cities.List(ctx)
	if err != nil {
		return err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}

	log.Debug().Int("cities", len(cities)).Int("categories", len(categories)).Msg("Warmed reference cache")
	return nil
}

// StartPeriodicWarming warms once, then again every interval until ctx is done
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if err := s.WarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial cache warming failed")
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(ctx); err != nil {
					log.Warn().Err(err).Msg("Periodic cache warming failed")
				}
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("Started periodic cache warming")
}
