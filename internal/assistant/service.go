// Package assistant ties the listing source, the normalizer and the store
// together behind the operations the CLI offers.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobscout/internal/logger"
	"jobscout/internal/models"
	"jobscout/internal/normalizer"
	"jobscout/internal/search"
)

var (
	// ErrNoFetcher is returned by NewService without a listing source.
	ErrNoFetcher = errors.New("assistant: fetcher is required")

	// ErrNoRepository is returned by NewService without a store.
	ErrNoRepository = errors.New("assistant: repository is required")

	// ErrEmptyID is returned by Delete for a blank identifier.
	ErrEmptyID = errors.New("vacancy id is required")
)

// Fetcher returns raw listing payloads for a keyword.
type Fetcher interface {
	Fetch(ctx context.Context, keyword string) ([]map[string]any, error)
}

// Repository is the persistent vacancy collection.
type Repository interface {
	Load() []models.Vacancy
	Save(vacancies []models.Vacancy) error
	Add(v models.Vacancy) error
	AddMany(vacancies []models.Vacancy) error
	DeleteByID(id string) error
}

// Service runs searches and queries over stored vacancies.
type Service struct {
	fetcher   Fetcher
	repo      Repository
	processor *normalizer.Processor
	log       *logger.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(fetcher Fetcher, repo Repository, log *logger.Logger) (*Service, error) {
	if fetcher == nil {
		return nil, ErrNoFetcher
	}

	if repo == nil {
		return nil, ErrNoRepository
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Service{
		fetcher:   fetcher,
		repo:      repo,
		processor: normalizer.NewProcessor(),
		log:       log,
	}, nil
}

// Search fetches listings for keyword, normalizes them and appends them to
// the store. It returns how many vacancies were stored. Listings that fail
// to normalize are skipped with a warning.
func (s *Service) Search(ctx context.Context, keyword string) (int, error) {
	keyword = strings.TrimSpace(keyword)

	raws, err := s.fetcher.Fetch(ctx, keyword)
	if err != nil {
		return 0, fmt.Errorf("fetch %q: %w", keyword, err)
	}

	vacancies, err := s.processor.ProcessAll(raws)
	if err != nil {
		s.log.Warn("some listings were skipped", "keyword", keyword,
			"skipped", len(raws)-len(vacancies), "err", err)
	}

	if len(vacancies) == 0 {
		return 0, nil
	}

	if err := s.repo.AddMany(vacancies); err != nil {
		return 0, fmt.Errorf("store search results: %w", err)
	}

	s.log.Info("search results stored", "keyword", keyword, "count", len(vacancies))

	return len(vacancies), nil
}

// List returns every stored vacancy in file order.
func (s *Service) List() []models.Vacancy {
	return s.repo.Load()
}

// Top returns the n best paid stored vacancies.
func (s *Service) Top(n int) []models.Vacancy {
	return search.Top(s.repo.Load(), n)
}

// FilterByKeyword returns stored vacancies mentioning keyword.
func (s *Service) FilterByKeyword(keyword string) []models.Vacancy {
	return search.FilterByKeyword(s.repo.Load(), keyword)
}

// FilterBySalary returns stored vacancies whose salary overlaps [lo, hi],
// best paid first. A hi of zero means no upper bound.
func (s *Service) FilterBySalary(lo, hi int) []models.Vacancy {
	return search.SortBySalary(search.FilterBySalaryRange(s.repo.Load(), lo, hi), true)
}

// Add validates v and appends it to the store.
func (s *Service) Add(v models.Vacancy) error {
	v, err := models.NewVacancy(v)
	if err != nil {
		return err
	}

	return s.repo.Add(v)
}

// Delete removes every stored vacancy with the given id.
func (s *Service) Delete(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}

	return s.repo.DeleteByID(id)
}

// Dedup rewrites the store keeping only the last copy of each id and reports
// how many entries were dropped.
func (s *Service) Dedup() (int, error) {
	stored := s.repo.Load()
	kept := search.DedupByID(stored)

	removed := len(stored) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.repo.Save(kept); err != nil {
		return 0, fmt.Errorf("save deduplicated vacancies: %w", err)
	}

	s.log.Info("duplicate vacancies removed", "count", removed)

	return removed, nil
}
