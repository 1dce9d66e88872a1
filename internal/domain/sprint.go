package domain

import "time"

// Sprint groups issues over a date range within a single project.
type Sprint struct {
	ID        string
	ProjectID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    SprintStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields required to create a sprint.
func (s *Sprint) Validate() error {
	if s.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if !s.EndDate.After(s.StartDate) {
		return NewValidationError("end date", "must be after the start date")
	}
	return nil
}

// CanTransition reports whether the sprint may move to the target status.
// Sprints advance PLANNED -> ACTIVE -> COMPLETED; activation is only
// allowed while now falls inside the sprint's date range.
func (s *Sprint) CanTransition(target SprintStatus, now time.Time) error {
	switch target {
	case SprintActive:
		if s.Status != SprintPlanned {
			return NewValidationError("status", "only a planned sprint can be started")
		}
		if now.Before(s.StartDate) || now.After(s.EndDate) {
			return NewValidationError("status", "sprint can only be started within its date range")
		}
	case SprintCompleted:
		if s.Status != SprintActive {
			return NewValidationError("status", "only an active sprint can be completed")
		}
	default:
		return NewValidationError("status", "must be ACTIVE or COMPLETED")
	}
	return nil
}
