package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"backlog/internal/domain"

	"github.com/google/uuid"
)

var testKeyCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithKey(key string) ProjectOption {
	return func(p *domain.Project) {
		p.Key = key
	}
}

func defaultKey(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testKeyCounter.Add(1)
	return fmt.Sprintf("%s%d", string(letters), n)
}

func NewTestProject(orgID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Key:       defaultKey(name),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// User fixtures

func NewTestUser(name string) *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("%s-%s@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), uuid.New().String()[:8]),
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestIdentity returns an identity acting for the given user in orgID.
func NewTestIdentity(u *domain.User, orgID string) domain.Identity {
	return domain.Identity{UserID: u.ID, OrgID: orgID}
}

// Sprint options
type SprintOption func(*domain.Sprint)

func WithSprintStatus(s domain.SprintStatus) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Status = s
	}
}

func WithSprintDates(start, end time.Time) SprintOption {
	return func(sp *domain.Sprint) {
		sp.StartDate = start
		sp.EndDate = end
	}
}

func NewTestSprint(projectID, name string, opts ...SprintOption) *domain.Sprint {
	now := time.Now().UTC()
	sp := &domain.Sprint{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: now.AddDate(0, 0, -1),
		EndDate:   now.AddDate(0, 0, 13),
		Status:    domain.SprintPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Issue options
type IssueOption func(*domain.Issue)

func WithStatus(s domain.IssueStatus) IssueOption {
	return func(is *domain.Issue) {
		is.Status = s
	}
}

func WithPriority(p domain.IssuePriority) IssueOption {
	return func(is *domain.Issue) {
		is.Priority = p
	}
}

func WithOrder(order int) IssueOption {
	return func(is *domain.Issue) {
		is.Order = order
	}
}

func WithDescription(d string) IssueOption {
	return func(is *domain.Issue) {
		is.Description = &d
	}
}

func WithAssignee(userID string) IssueOption {
	return func(is *domain.Issue) {
		is.AssigneeID = &userID
	}
}

func WithSprint(sprintID string) IssueOption {
	return func(is *domain.Issue) {
		is.SprintID = &sprintID
	}
}

func NewTestIssue(projectID, reporterID, title string, opts ...IssueOption) *domain.Issue {
	now := time.Now().UTC()
	is := &domain.Issue{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Title:      title,
		Status:     domain.StatusTodo,
		Priority:   domain.PriorityMedium,
		ReporterID: reporterID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(is)
	}
	return is
}
