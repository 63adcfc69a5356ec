package service

import (
	"context"
	"fmt"

	"github.com/contrib-fyi/server/internal/models"
)

// ---- Repository contract ---------------------------------------------------

// HistoryRepository persists the viewed-issue log. Re-adding an issue moves
// it to the top; the log is bounded to a maximum length.
type HistoryRepository interface {
	Upsert(ctx context.Context, snapshot models.IssueSnapshot) error
	List(ctx context.Context) ([]models.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// ---- Service interface + implementation ------------------------------------

// HistoryService records which issues the user has opened.
type HistoryService interface {
	AddToHistory(ctx context.Context, snapshot models.IssueSnapshot) error
	ListHistory(ctx context.Context) ([]models.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

type historyService struct {
	repo HistoryRepository
}

// NewHistoryService wires the repository.
func NewHistoryService(repo HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) AddToHistory(ctx context.Context, snapshot models.IssueSnapshot) error {
	if err := s.repo.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

func (s *historyService) ListHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

func (s *historyService) ClearHistory(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
