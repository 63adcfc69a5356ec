package service

import (
	"context"
	"fmt"

	"github.com/contrib-fyi/server/internal/models"
)

// ---- Repository contract ---------------------------------------------------

// PickRepository persists bookmarked issues, newest first, deduplicated by
// issue id and bounded to a maximum count.
type PickRepository interface {
	Insert(ctx context.Context, snapshot models.IssueSnapshot) error
	Remove(ctx context.Context, issueID int64) error
	List(ctx context.Context) ([]models.IssueSnapshot, error)
	Exists(ctx context.Context, issueID int64) (bool, error)
}

// ---- Service interface + implementation ------------------------------------

// PickService manages the user's bookmarked issues.
type PickService interface {
	AddPick(ctx context.Context, snapshot models.IssueSnapshot) error
	RemovePick(ctx context.Context, issueID int64) error
	ListPicks(ctx context.Context) ([]models.IssueSnapshot, error)
	IsPicked(ctx context.Context, issueID int64) (bool, error)
}

type pickService struct {
	repo PickRepository
}

// NewPickService wires the repository.
func NewPickService(repo PickRepository) PickService {
	return &pickService{repo: repo}
}

func (s *pickService) AddPick(ctx context.Context, snapshot models.IssueSnapshot) error {
	if err := s.repo.Insert(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to add pick: %w", err)
	}
	return nil
}

func (s *pickService) RemovePick(ctx context.Context, issueID int64) error {
	if err := s.repo.Remove(ctx, issueID); err != nil {
		return fmt.Errorf("failed to remove pick: %w", err)
	}
	return nil
}

func (s *pickService) ListPicks(ctx context.Context) ([]models.IssueSnapshot, error) {
	picks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return picks, nil
}

func (s *pickService) IsPicked(ctx context.Context, issueID int64) (bool, error) {
	return s.repo.Exists(ctx, issueID)
}
