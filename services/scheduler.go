package services

import (
	"context"
	"sync"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"
)

// leagueResolver is the operation the scheduler drives on each tick,
// satisfied by ResolutionService.
type leagueResolver interface {
	ResolvePendingGames(ctx context.Context, league models.League) (*models.ResolutionSummary, error)
}

// ResolutionScheduler invokes the resolver for each configured league on a
// fixed cadence. Each run completes synchronously; conditional writes make it
// safe to trigger runs manually while the scheduler is active.
type ResolutionScheduler struct {
	resolver leagueResolver
	leagues  []models.League
	interval time.Duration
	logger   *logging.Logger

	mu       sync.Mutex
	ticker   *time.Ticker
	stopChan chan struct{}
	running  bool
}

// NewResolutionScheduler creates a new resolution scheduler
func NewResolutionScheduler(resolver leagueResolver, leagues []models.League, interval time.Duration) *ResolutionScheduler {
	return &ResolutionScheduler{
		resolver: resolver,
		leagues:  leagues,
		interval: interval,
		logger:   logging.WithPrefix("scheduler"),
	}
}

// Start begins the scheduled resolution loop. Safe to call again after Stop.
func (s *ResolutionScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Already running")
		return
	}
	s.running = true
	s.ticker = time.NewTicker(s.interval)
	s.stopChan = make(chan struct{})
	ticker := s.ticker
	stopChan := s.stopChan
	s.mu.Unlock()

	s.logger.Infof("Starting resolution scheduler for %v every %v", s.leagues, s.interval)

	// Initial run on startup
	go s.runAll()

	go func() {
		for {
			select {
			case <-ticker.C:
				go s.runAll()
			case <-stopChan:
				s.logger.Info("Stopping scheduled resolution runs")
				return
			}
		}
	}()
}

// Stop halts the scheduled resolution loop
func (s *ResolutionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	s.ticker.Stop()
	close(s.stopChan)
}

// IsRunning returns whether the scheduler is currently active
func (s *ResolutionScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ResolutionScheduler) runAll() {
	ctx := context.Background()

	for _, league := range s.leagues {
		summary, err := s.resolver.ResolvePendingGames(ctx, league)
		if err != nil {
			s.logger.Errorf("Scheduled run failed for %s: %v", league, err)
			continue
		}

		if summary.GamesResolved == 0 && summary.GameErrors == 0 {
			continue
		}
		s.logger.Infof("Scheduled run for %s: %d resolved, %d picks graded",
			league, summary.GamesResolved, summary.PicksGraded)
	}
}
