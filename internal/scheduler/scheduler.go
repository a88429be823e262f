// Package scheduler re-runs the configured keyword searches on a cron
// schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"jobscout/internal/logger"
)

// ErrNoKeywords is returned by New when there is nothing to search for.
var ErrNoKeywords = errors.New("scheduler: at least one keyword is required")

// Searcher runs one keyword search and reports how many vacancies it stored.
type Searcher interface {
	Search(ctx context.Context, keyword string) (int, error)
}

// Scheduler wraps robfig/cron and manages the search loop.
type Scheduler struct {
	cron     *cron.Cron
	searcher Searcher
	log      *logger.Logger
	spec     string
	keywords []string

	// mu keeps cycles from overlapping when a run outlasts the interval.
	mu sync.Mutex
	// startup tracks the cycle Start runs outside of cron.
	startup sync.WaitGroup
}

// New creates a Scheduler that searches every keyword on spec, e.g. "@every 6h".
func New(searcher Searcher, spec string, keywords []string, log *logger.Logger) (*Scheduler, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		searcher: searcher,
		log:      log,
		spec:     spec,
		keywords: keywords,
	}, nil
}

// Start registers the job and starts the scheduler. One cycle also runs
// immediately so the store is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", "spec", s.spec, "keywords", s.keywords)

	s.startup.Add(1)

	go func() {
		defer s.startup.Done()

		s.RunOnce(ctx)
	}()

	return nil
}

// Stop shuts the scheduler down and waits for running cycles to finish,
// including the one Start launched.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.startup.Wait()
	s.log.Info("scheduler stopped")
}

// RunOnce searches every keyword once and returns the total stored. A failed
// keyword is logged and does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	if !s.mu.TryLock() {
		s.log.Warn("previous search cycle still running, skipping")

		return 0
	}
	defer s.mu.Unlock()

	total := 0

	for _, kw := range s.keywords {
		if ctx.Err() != nil {
			break
		}

		n, err := s.searcher.Search(ctx, kw)
		if err != nil {
			s.log.Error("scheduled search failed", "keyword", kw, "err", err)

			continue
		}

		total += n
	}

	s.log.Info("search cycle complete", "stored", total)

	return total
}
