package service

import (
	"context"
	"errors"
	"time"

	"backlog/internal/db"
	"backlog/internal/domain"
	"backlog/internal/repository"

	"github.com/google/uuid"
)

type issueService struct {
	issues  repository.IssueRepo
	sprints repository.SprintRepo
	uow     db.UnitOfWork
	guard   tenantGuard
}

func NewIssueService(
	issues repository.IssueRepo,
	projects repository.ProjectRepo,
	sprints repository.SprintRepo,
	uow db.UnitOfWork,
) IssueService {
	return &issueService{
		issues:  issues,
		sprints: sprints,
		uow:     uow,
		guard:   tenantGuard{projects: projects, issues: issues},
	}
}

func (s *issueService) Create(ctx context.Context, identity domain.Identity, projectID string, draft domain.IssueDraft) (*domain.Issue, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.guard.authorizeProject(ctx, identity, projectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	is := &domain.Issue{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		SprintID:    draft.SprintID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		ReporterID:  identity.UserID,
		AssigneeID:  draft.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Order allocation and the insert commit together, so concurrent
	// creates in the same column can neither collide nor leave gaps from
	// aborted inserts.
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		seq := repository.NewSQLiteIssueSequenceRepo(tx)
		txIssues := repository.NewSQLiteIssueRepo(tx)

		order, err := seq.NextOrder(ctx, projectID, is.Status)
		if err != nil {
			return err
		}
		is.Order = order
		return txIssues.Create(ctx, is)
	})
	if err != nil {
		return nil, err
	}
	return is, nil
}

func (s *issueService) Update(ctx context.Context, identity domain.Identity, issueID string, patch domain.IssuePatch) (*domain.Issue, error) {
	if _, err := s.guard.authorizeIssue(ctx, identity, issueID); err != nil {
		return nil, err
	}

	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	is, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("issue")
		}
		return nil, err
	}

	patch.Apply(is)
	is.UpdatedAt = time.Now().UTC()
	if err := s.issues.Update(ctx, is); err != nil {
		return nil, err
	}
	return is, nil
}

func (s *issueService) BulkUpdate(ctx context.Context, identity domain.Identity, issueIDs []string, patch domain.IssuePatch) (int64, []UpdatedScope, error) {
	if len(issueIDs) == 0 {
		return 0, nil, domain.NewValidationError("issue ids", "at least one is required")
	}

	refs, err := s.guard.authorizeIssues(ctx, identity, issueIDs)
	if err != nil {
		return 0, nil, err
	}

	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return 0, nil, err
	}

	count, err := s.issues.UpdateMany(ctx, issueIDs, &patch)
	if err != nil {
		return 0, nil, err
	}

	return count, scopesFromRefs(refs), nil
}

func (s *issueService) GetByID(ctx context.Context, identity domain.Identity, issueID string) (*domain.Issue, error) {
	if _, err := s.guard.authorizeIssue(ctx, identity, issueID); err != nil {
		return nil, err
	}
	return s.issues.GetByID(ctx, issueID)
}

func (s *issueService) ListColumn(ctx context.Context, identity domain.Identity, projectID string, status domain.IssueStatus) ([]*domain.Issue, error) {
	if !domain.ValidIssueStatuses[string(status)] {
		return nil, domain.NewValidationError("status", "must be one of TODO, IN_PROGRESS, IN_REVIEW, DONE")
	}
	if _, err := s.guard.authorizeProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.issues.ListColumn(ctx, projectID, status)
}

func (s *issueService) ListByProject(ctx context.Context, identity domain.Identity, projectID string) ([]*domain.Issue, error) {
	if _, err := s.guard.authorizeProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.issues.ListByProject(ctx, projectID)
}

func (s *issueService) ListBySprint(ctx context.Context, identity domain.Identity, sprintID string) ([]*domain.Issue, error) {
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
	return s.issues.ListBySprint(ctx, sprintID)
}

// scopesFromRefs deduplicates the (project, sprint) pairs touched by a
// batch so each dependent view is invalidated once.
func scopesFromRefs(refs []repository.IssueProjectRef) []UpdatedScope {
	seen := make(map[string]bool, len(refs))
	var scopes []UpdatedScope
	for _, ref := range refs {
		key := ref.ProjectID
		if ref.SprintID != nil {
			key += "/" + *ref.SprintID
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		scopes = append(scopes, UpdatedScope{ProjectID: ref.ProjectID, SprintID: ref.SprintID})
	}
	return scopes
}
