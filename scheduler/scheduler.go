package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/jellyfish/api/datastore"
)

// Scheduler prunes match history older than Retention every Interval
type Scheduler struct {
	HistoryRepo datastore.MatchHistoryRepository
	Retention   time.Duration
	Interval    time.Duration
	ticker      *time.Ticker
	done        chan bool
	stopOnce    sync.Once
	now         func() time.Time
}

func NewScheduler(repo datastore.MatchHistoryRepository, retention time.Duration) *Scheduler {
	return &Scheduler{
		HistoryRepo: repo,
		Retention:   retention,
		Interval:    time.Hour,
		done:        make(chan bool),
		now:         time.Now,
	}
}

// Start prunes once immediately and then on every tick
func (s *Scheduler) Start() {
	log.Printf("Scheduler started. Pruning match history older than %v every %v", s.Retention, s.Interval)

	s.Prune()

	s.ticker = time.NewTicker(s.Interval)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.Prune()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop stops the scheduler. Calls after the first are no-ops.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		log.Println("Scheduler stopped")
	})
}

// Prune deletes history older than the retention window
func (s *Scheduler) Prune() (int64, error) {
	cutoff := s.now().Add(-s.Retention)

	deleted, err := s.HistoryRepo.DeleteBefore(cutoff)
	if err != nil {
		log.Printf("Error pruning match history: %v", err)
		return 0, err
	}

	if deleted > 0 {
		log.Printf("Pruned %d match history records older than %s", deleted, cutoff.Format(time.RFC3339))
	}

	return deleted, nil
}
