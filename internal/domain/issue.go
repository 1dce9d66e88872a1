package domain

import (
	"strings"
	"time"
)

// Issue is a unit of tracked work. Order is its position within the
// (project, status) board column; values are unique per column and assigned
// by the issue sequence allocator.
type Issue struct {
	ID          string
	ProjectID   string
	SprintID    *string
	Title       string
	Description *string
	Status      IssueStatus
	Priority    IssuePriority
	ReporterID  string
	AssigneeID  *string
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IssueDraft is the full field set required to create an issue.
type IssueDraft struct {
	Title       string
	Description *string
	Status      IssueStatus
	Priority    IssuePriority
	SprintID    *string
	AssigneeID  *string
}

// Normalize trims the title and description; an empty trimmed description
// collapses to nil.
func (d *IssueDraft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	if d.Description != nil {
		trimmed := strings.TrimSpace(*d.Description)
		if trimmed == "" {
			d.Description = nil
		} else {
			d.Description = &trimmed
		}
	}
}

// Validate checks the mandatory create fields: non-empty title, valid
// status, valid priority.
func (d *IssueDraft) Validate() error {
	if err := validateTitle(d.Title); err != nil {
		return err
	}
	if err := validateStatus(string(d.Status)); err != nil {
		return err
	}
	return validatePriority(string(d.Priority))
}

// IssuePatch is a partial field set for updates. A nil pointer means the
// field was not supplied and stays untouched. Description and assignee are
// clearable: the Set flag marks the field as supplied, and a nil value
// clears it.
type IssuePatch struct {
	Title          *string
	Status         *IssueStatus
	Priority       *IssuePriority
	Description    *string
	DescriptionSet bool
	AssigneeID     *string
	AssigneeSet    bool
	SprintID       *string
	SprintSet      bool
}

// Normalize trims the supplied title and description the same way drafts
// are normalized. Runs before Validate so whitespace-only titles fail.
func (p *IssuePatch) Normalize() {
	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		p.Title = &trimmed
	}
	if p.DescriptionSet {
		p.Description = trimmedOrNil(p.Description)
	}
}

// Empty reports whether the patch supplies no fields at all.
func (p *IssuePatch) Empty() bool {
	return p.Title == nil && p.Status == nil && p.Priority == nil &&
		!p.DescriptionSet && !p.AssigneeSet && !p.SprintSet
}

// Validate checks only the supplied fields against the create rules.
func (p *IssuePatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if err := validateStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	if p.Priority != nil {
		if err := validatePriority(string(*p.Priority)); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the supplied fields onto the issue. Title and description
// are trimmed the same way Normalize trims drafts.
func (p *IssuePatch) Apply(is *Issue) {
	if p.Title != nil {
		is.Title = strings.TrimSpace(*p.Title)
	}
	if p.Status != nil {
		is.Status = *p.Status
	}
	if p.Priority != nil {
		is.Priority = *p.Priority
	}
	if p.DescriptionSet {
		is.Description = trimmedOrNil(p.Description)
	}
	if p.AssigneeSet {
		is.AssigneeID = p.AssigneeID
	}
	if p.SprintSet {
		is.SprintID = p.SprintID
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "must not be empty")
	}
	return nil
}

func validateStatus(status string) error {
	if !ValidIssueStatuses[status] {
		return NewValidationError("status", "must be one of TODO, IN_PROGRESS, IN_REVIEW, DONE")
	}
	return nil
}

func validatePriority(priority string) error {
	if !ValidIssuePriorities[priority] {
		return NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
	}
	return nil
}
