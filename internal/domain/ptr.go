package domain

// StrPtr returns a pointer to s. Convenient for building patches.
func StrPtr(s string) *string { return &s }

// StatusPtr returns a pointer to s.
func StatusPtr(s IssueStatus) *IssueStatus { return &s }

// PriorityPtr returns a pointer to p.
func PriorityPtr(p IssuePriority) *IssuePriority { return &p }
