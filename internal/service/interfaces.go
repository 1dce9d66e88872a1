package service

import (
	"context"
	"time"

	"backlog/internal/domain"
)

type UserService interface {
	Register(ctx context.Context, name, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// Resolve accepts a user ID or an email address.
	Resolve(ctx context.Context, ref string) (*domain.User, error)
}

type ProjectService interface {
	Create(ctx context.Context, identity domain.Identity, key, name string) (*domain.Project, error)
	GetByKey(ctx context.Context, identity domain.Identity, key string) (*domain.Project, error)
	List(ctx context.Context, identity domain.Identity) ([]*domain.Project, error)
}

type SprintService interface {
	Create(ctx context.Context, identity domain.Identity, projectID, name string, start, end time.Time) (*domain.Sprint, error)
	UpdateStatus(ctx context.Context, identity domain.Identity, sprintID string, status domain.SprintStatus) (*domain.Sprint, error)
	ListByProject(ctx context.Context, identity domain.Identity, projectID string) ([]*domain.Sprint, error)
}

type IssueService interface {
	Create(ctx context.Context, identity domain.Identity, projectID string, draft domain.IssueDraft) (*domain.Issue, error)
	Update(ctx context.Context, identity domain.Identity, issueID string, patch domain.IssuePatch) (*domain.Issue, error)
	BulkUpdate(ctx context.Context, identity domain.Identity, issueIDs []string, patch domain.IssuePatch) (int64, []UpdatedScope, error)
	GetByID(ctx context.Context, identity domain.Identity, issueID string) (*domain.Issue, error)
	ListColumn(ctx context.Context, identity domain.Identity, projectID string, status domain.IssueStatus) ([]*domain.Issue, error)
	ListByProject(ctx context.Context, identity domain.Identity, projectID string) ([]*domain.Issue, error)
	ListBySprint(ctx context.Context, identity domain.Identity, sprintID string) ([]*domain.Issue, error)
}

// UpdatedScope names a (project, sprint) pair touched by a bulk mutation,
// so callers can invalidate dependent views.
type UpdatedScope struct {
	ProjectID string
	SprintID  *string
}
