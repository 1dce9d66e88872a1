package service

import "backlog/internal/domain"

// Result is the uniform envelope returned by every public action. Callers
// branch on Success and ErrorKind; no action surfaces a raw error.
type Result struct {
	Success   bool
	Issue     *domain.Issue
	Issues    []*domain.Issue
	Updated   int64
	Message   string
	ErrorKind domain.ErrorKind
}

// Invalidator is notified after each successful mutation, once per
// affected project and once per affected sprint, so dependent views can
// refresh. Notifications are fire-and-forget and never influence the
// operation outcome.
type Invalidator interface {
	Invalidate(key string)
}

// NoopInvalidator ignores all notifications.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(string) {}

func invalidatorOrNoop(invs []Invalidator) Invalidator {
	for _, inv := range invs {
		if inv != nil {
			return inv
		}
	}
	return NoopInvalidator{}
}

// ProjectKey returns the invalidation key for a project's views.
func ProjectKey(projectID string) string { return "project/" + projectID }

// SprintKey returns the invalidation key for a sprint's views.
func SprintKey(sprintID string) string { return "sprint/" + sprintID }
