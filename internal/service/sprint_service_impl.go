package service

import (
	"context"
	"errors"
	"time"

	"backlog/internal/domain"
	"backlog/internal/repository"

	"github.com/google/uuid"
)

type sprintService struct {
	sprints repository.SprintRepo
	guard   tenantGuard
}

func NewSprintService(sprints repository.SprintRepo, projects repository.ProjectRepo, issues repository.IssueRepo) SprintService {
	return &sprintService{
		sprints: sprints,
		guard:   tenantGuard{projects: projects, issues: issues},
	}
}

func (s *sprintService) Create(ctx context.Context, identity domain.Identity, projectID, name string, start, end time.Time) (*domain.Sprint, error) {
	if _, err := s.guard.authorizeProject(ctx, identity, projectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sprint := &domain.Sprint{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.SprintPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sprint.Validate(); err != nil {
		return nil, err
	}

	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *sprintService) UpdateStatus(ctx context.Context, identity domain.Identity, sprintID string, status domain.SprintStatus) (*domain.Sprint, error) {
	sprint, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("sprint")
		}
		return nil, err
	}
	if _, err := s.guard.authorizeProject(ctx, identity, sprint.ProjectID); err != nil {
		// A sprint in another tenant is indistinguishable from a missing one.
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NewNotFoundError("sprint")
		}
		return nil, err
	}

	now := time.Now().UTC()
	if err := sprint.CanTransition(status, now); err != nil {
		return nil, err
	}

	sprint.Status = status
	sprint.UpdatedAt = now
	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *sprintService) ListByProject(ctx context.Context, identity domain.Identity, projectID string) ([]*domain.Sprint, error) {
	if _, err := s.guard.authorizeProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.sprints.ListByProject(ctx, projectID)
}
