// Package monitoring refreshes store-level gauges on a fixed schedule so the
// metrics endpoint reflects user and favorite counts without a query per
// scrape.
package monitoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/skycastapp/skycast-api/internal/metrics"
	"github.com/skycastapp/skycast-api/internal/repository"
)

type StatsCollector struct {
	users     repository.UserRepository
	favorites repository.FavoriteRepository
	logger    *slog.Logger
	cron      *cron.Cron
}

func NewStatsCollector(users repository.UserRepository, favorites repository.FavoriteRepository, logger *slog.Logger) *StatsCollector {
	return &StatsCollector{
		users:     users,
		favorites: favorites,
		logger:    logger.With("component", "stats_collector"),
		cron:      cron.New(),
	}
}

// Start refreshes once immediately, then every minute until Stop.
func (s *StatsCollector) Start() error {
	s.refresh()
	if _, err := s.cron.AddFunc("@every 1m", s.refresh); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *StatsCollector) Stop() {
	<-s.cron.Stop().Done()
}

func (s *StatsCollector) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if n, err := s.users.Count(ctx); err != nil {
		s.logger.Warn("refresh user count", "error", err)
	} else {
		metrics.UsersTotal.Set(float64(n))
	}

	if n, err := s.favorites.Count(ctx); err != nil {
		s.logger.Warn("refresh favorite count", "error", err)
	} else {
		metrics.FavoritesTotal.Set(float64(n))
	}
}
