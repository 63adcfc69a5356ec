package service

import (
	"context"
	"fmt"

	"github.com/contrib-fyi/server/internal/models"
)

// ---- Repository contract ---------------------------------------------------

// FilterRepository persists the user's saved filter defaults as a single
// document.
type FilterRepository interface {
	Get(ctx context.Context) (models.SearchFilters, bool, error)
	Put(ctx context.Context, filters models.SearchFilters) error
	Delete(ctx context.Context) error
}

// ---- Service interface + implementation ------------------------------------

// FilterService reads and writes the saved filter defaults. When nothing has
// been saved the stock defaults apply.
type FilterService interface {
	GetFilters(ctx context.Context) (models.SearchFilters, error)
	SaveFilters(ctx context.Context, filters models.SearchFilters) error
	ResetFilters(ctx context.Context) error
}

type filterService struct {
	repo FilterRepository
}

// NewFilterService wires the repository.
func NewFilterService(repo FilterRepository) FilterService {
	return &filterService{repo: repo}
}

func (s *filterService) GetFilters(ctx context.Context) (models.SearchFilters, error) {
	filters, found, err := s.repo.Get(ctx)
	if err != nil {
		return models.SearchFilters{}, fmt.Errorf("failed to load filters: %w", err)
	}
	if !found {
		return models.DefaultFilters(), nil
	}
	return filters, nil
}

func (s *filterService) SaveFilters(ctx context.Context, filters models.SearchFilters) error {
	if err := s.repo.Put(ctx, filters); err != nil {
		return fmt.Errorf("failed to save filters: %w", err)
	}
	return nil
}

func (s *filterService) ResetFilters(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("failed to reset filters: %w", err)
	}
	return nil
}
