package domain

type IssueStatus string

const (
	StatusTodo       IssueStatus = "TODO"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusInReview   IssueStatus = "IN_REVIEW"
	StatusDone       IssueStatus = "DONE"
)

type IssuePriority string

const (
	PriorityLow    IssuePriority = "LOW"
	PriorityMedium IssuePriority = "MEDIUM"
	PriorityHigh   IssuePriority = "HIGH"
	PriorityUrgent IssuePriority = "URGENT"
)

type SprintStatus string

const (
	SprintPlanned   SprintStatus = "PLANNED"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
)

// ValidIssueStatuses is the canonical set of accepted issue status strings.
var ValidIssueStatuses = map[string]bool{
	"TODO": true, "IN_PROGRESS": true, "IN_REVIEW": true, "DONE": true,
}

// ValidIssuePriorities is the canonical set of accepted issue priority strings.
var ValidIssuePriorities = map[string]bool{
	"LOW": true, "MEDIUM": true, "HIGH": true, "URGENT": true,
}

// ValidSprintStatuses is the canonical set of accepted sprint status strings.
var ValidSprintStatuses = map[string]bool{
	"PLANNED": true, "ACTIVE": true, "COMPLETED": true,
}

// BoardColumns lists the issue statuses in kanban display order.
var BoardColumns = []IssueStatus{StatusTodo, StatusInProgress, StatusInReview, StatusDone}
