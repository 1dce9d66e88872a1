package repository

import (
	"context"
	"errors"

	"backlog/internal/domain"
)

// ErrNotFound is returned when a lookup resolves to no row. Repositories
// wrap it with the entity name.
var ErrNotFound = errors.New("not found")

// IssueProjectRef is a joined view of an issue with its owning project's
// tenant, used by authorization checks and invalidation without loading
// full rows.
type IssueProjectRef struct {
	IssueID   string
	ProjectID string
	SprintID  *string
	OrgID     string
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// GetForOrg resolves a project only when it belongs to the given org,
	// so an org-scoped lookup cannot observe another tenant's projects.
	GetForOrg(ctx context.Context, id, orgID string) (*domain.Project, error)
	GetByKey(ctx context.Context, orgID, key string) (*domain.Project, error)
	ListByOrg(ctx context.Context, orgID string) ([]*domain.Project, error)
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error)
	Update(ctx context.Context, s *domain.Sprint) error
}

type IssueRepo interface {
	Create(ctx context.Context, is *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	// GetRef returns the tenant reference for a single issue.
	GetRef(ctx context.Context, id string) (*IssueProjectRef, error)
	// ListRefs returns tenant references for the given ids. Ids that do
	// not resolve are simply absent from the result.
	ListRefs(ctx context.Context, ids []string) ([]IssueProjectRef, error)
	// ListColumn returns the issues of one (project, status) column in
	// board order.
	ListColumn(ctx context.Context, projectID string, status domain.IssueStatus) ([]*domain.Issue, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Issue, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.Issue, error)
	Update(ctx context.Context, is *domain.Issue) error
	// UpdateMany applies the same patch to every id in one statement and
	// returns the number of rows affected.
	UpdateMany(ctx context.Context, ids []string, patch *domain.IssuePatch) (int64, error)
	Delete(ctx context.Context, id string) error
}

// IssueSequenceRepo allocates board-column order values atomically.
type IssueSequenceRepo interface {
	NextOrder(ctx context.Context, projectID string, status domain.IssueStatus) (int, error)
}
