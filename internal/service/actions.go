package service

import (
	"context"
	"fmt"
	"time"

	"backlog/internal/domain"
)

// Actions is the public facade over the issue mutation service. Every
// operation runs through one wrapper that reports the operation to the
// observer, normalizes errors into the envelope, and never lets internal
// diagnostic detail reach the caller.
type Actions struct {
	issues      IssueService
	observer    UseCaseObserver
	invalidator Invalidator
}

// NewActions wraps the issue service. Observer and invalidator default to
// no-ops when absent.
func NewActions(issues IssueService, invalidator Invalidator, observers ...UseCaseObserver) *Actions {
	return &Actions{
		issues:      issues,
		observer:    useCaseObserverOrNoop(observers),
		invalidator: invalidatorOrNoop([]Invalidator{invalidator}),
	}
}

// CreateIssue validates the full field set, authorizes the project against
// the identity's org, allocates the column position, and persists the new
// issue with the acting identity as reporter.
func (a *Actions) CreateIssue(ctx context.Context, identity domain.Identity, projectID string, draft domain.IssueDraft) Result {
	return a.run(ctx, "create-issue", map[string]any{"project": projectID}, func(ctx context.Context) (Result, error) {
		is, err := a.issues.Create(ctx, identity, projectID, draft)
		if err != nil {
			return Result{}, err
		}
		a.invalidateIssue(is)
		return Result{Success: true, Issue: is, Message: "Issue created successfully"}, nil
	})
}

// UpdateIssue applies only the supplied fields; a supplied-but-nil
// description or assignee clears the field.
func (a *Actions) UpdateIssue(ctx context.Context, identity domain.Identity, issueID string, patch domain.IssuePatch) Result {
	return a.run(ctx, "update-issue", map[string]any{"issue": issueID}, func(ctx context.Context) (Result, error) {
		is, err := a.issues.Update(ctx, identity, issueID, patch)
		if err != nil {
			return Result{}, err
		}
		a.invalidateIssue(is)
		return Result{Success: true, Issue: is, Message: "Issue updated successfully"}, nil
	})
}

// BulkUpdateIssues applies one patch to every targeted issue as a single
// batch write. Authorization is all-or-nothing across the id set.
func (a *Actions) BulkUpdateIssues(ctx context.Context, identity domain.Identity, issueIDs []string, patch domain.IssuePatch) Result {
	return a.run(ctx, "bulk-update-issues", map[string]any{"count": len(issueIDs)}, func(ctx context.Context) (Result, error) {
		count, scopes, err := a.issues.BulkUpdate(ctx, identity, issueIDs, patch)
		if err != nil {
			return Result{}, err
		}
		for _, scope := range scopes {
			a.invalidator.Invalidate(ProjectKey(scope.ProjectID))
			if scope.SprintID != nil {
				a.invalidator.Invalidate(SprintKey(*scope.SprintID))
			}
		}
		return Result{
			Success: true,
			Updated: count,
			Message: fmt.Sprintf("%d issues updated successfully", count),
		}, nil
	})
}

// GetIssue returns a single issue visible to the identity's org.
func (a *Actions) GetIssue(ctx context.Context, identity domain.Identity, issueID string) Result {
	return a.run(ctx, "get-issue", map[string]any{"issue": issueID}, func(ctx context.Context) (Result, error) {
		is, err := a.issues.GetByID(ctx, identity, issueID)
		if err != nil {
			return Result{}, err
		}
		return Result{Success: true, Issue: is, Message: "ok"}, nil
	})
}

// ListColumn returns one board column in position order.
func (a *Actions) ListColumn(ctx context.Context, identity domain.Identity, projectID string, status domain.IssueStatus) Result {
	return a.run(ctx, "list-column", map[string]any{"project": projectID, "status": string(status)}, func(ctx context.Context) (Result, error) {
		issues, err := a.issues.ListColumn(ctx, identity, projectID, status)
		if err != nil {
			return Result{}, err
		}
		return Result{Success: true, Issues: issues, Message: "ok"}, nil
	})
}

// ListProjectIssues returns all issues of a project grouped by column.
func (a *Actions) ListProjectIssues(ctx context.Context, identity domain.Identity, projectID string) Result {
	return a.run(ctx, "list-project-issues", map[string]any{"project": projectID}, func(ctx context.Context) (Result, error) {
		issues, err := a.issues.ListByProject(ctx, identity, projectID)
		if err != nil {
			return Result{}, err
		}
		return Result{Success: true, Issues: issues, Message: "ok"}, nil
	})
}

// ListSprintIssues returns all issues assigned to a sprint.
func (a *Actions) ListSprintIssues(ctx context.Context, identity domain.Identity, sprintID string) Result {
	return a.run(ctx, "list-sprint-issues", map[string]any{"sprint": sprintID}, func(ctx context.Context) (Result, error) {
		issues, err := a.issues.ListBySprint(ctx, identity, sprintID)
		if err != nil {
			return Result{}, err
		}
		return Result{Success: true, Issues: issues, Message: "ok"}, nil
	})
}

// TrackAction records a user action through the observer. Nothing is
// persisted; analytics storage lives outside this core.
func (a *Actions) TrackAction(ctx context.Context, identity domain.Identity, action string, metadata map[string]any) Result {
	fields := map[string]any{"action": action, "user": identity.UserID, "org": identity.OrgID}
	for k, v := range metadata {
		fields[k] = v
	}
	return a.run(ctx, "track-action", fields, func(ctx context.Context) (Result, error) {
		if !identity.Authenticated() {
			return Result{}, domain.ErrUnauthorized
		}
		return Result{Success: true, Message: "ok"}, nil
	})
}

// run executes one operation, reports it to the observer with the
// operation name, and converts any failure into the envelope. Unexpected
// errors keep their detail in the observer log only.
func (a *Actions) run(ctx context.Context, name string, fields map[string]any, fn func(ctx context.Context) (Result, error)) Result {
	startedAt := time.Now().UTC()
	res, err := fn(ctx)
	a.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: startedAt,
	})
	if err == nil {
		return res
	}

	kind := domain.KindOf(err)
	msg := err.Error()
	if kind == domain.KindUnexpected {
		msg = domain.NewUnexpectedError().Message
	}
	return Result{Success: false, Message: msg, ErrorKind: kind}
}

func (a *Actions) invalidateIssue(is *domain.Issue) {
	a.invalidator.Invalidate(ProjectKey(is.ProjectID))
	if is.SprintID != nil {
		a.invalidator.Invalidate(SprintKey(*is.SprintID))
	}
}
