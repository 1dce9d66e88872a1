package service

import (
	"context"
	"errors"

	"backlog/internal/domain"
	"backlog/internal/repository"
)

// tenantGuard resolves targets to their owning project's tenant and
// compares it against the acting identity. All checks are read-only.
type tenantGuard struct {
	projects repository.ProjectRepo
	issues   repository.IssueRepo
}

// requireIdentity rejects operations with no authenticated actor.
func (g *tenantGuard) requireIdentity(identity domain.Identity) error {
	if !identity.Authenticated() {
		return domain.ErrUnauthorized
	}
	return nil
}

// authorizeProject resolves a project within the identity's org. A project
// that does not exist and a project in another tenant look identical to
// the caller: both report not found, so nothing leaks across tenants.
func (g *tenantGuard) authorizeProject(ctx context.Context, identity domain.Identity, projectID string) (*domain.Project, error) {
	if err := g.requireIdentity(identity); err != nil {
		return nil, err
	}
	p, err := g.projects.GetForOrg(ctx, projectID, identity.OrgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("project")
		}
		return nil, err
	}
	return p, nil
}

// authorizeIssue resolves a single issue's tenant reference. An id that
// resolves to nothing reports not found; an issue owned by another tenant
// reports the generic unauthorized error.
func (g *tenantGuard) authorizeIssue(ctx context.Context, identity domain.Identity, issueID string) (*repository.IssueProjectRef, error) {
	if err := g.requireIdentity(identity); err != nil {
		return nil, err
	}
	ref, err := g.issues.GetRef(ctx, issueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("issue")
		}
		return nil, err
	}
	if ref.OrgID != identity.OrgID {
		return nil, domain.ErrUnauthorized
	}
	return ref, nil
}

// authorizeIssues checks every resolved issue in the set. A single
// cross-tenant member fails the whole set; ids that resolve to nothing are
// skipped, matching single-statement batch semantics where unknown ids
// simply affect no rows.
func (g *tenantGuard) authorizeIssues(ctx context.Context, identity domain.Identity, issueIDs []string) ([]repository.IssueProjectRef, error) {
	if err := g.requireIdentity(identity); err != nil {
		return nil, err
	}
	refs, err := g.issues.ListRefs(ctx, issueIDs)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		if ref.OrgID != identity.OrgID {
			return nil, domain.ErrUnauthorized
		}
	}
	return refs, nil
}
