package domain

import (
	"fmt"
	"regexp"
	"time"
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

// Project is the authorization parent of its issues. OrgID is the tenant
// boundary: every mutation compares it against the acting identity's org.
type Project struct {
	ID        string
	OrgID     string
	Key       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateKey checks that Key is non-empty and matches the required format:
// an uppercase letter followed by 1-9 uppercase letters or digits
// (e.g. WEB, API2).
func (p *Project) ValidateKey() error {
	if p.Key == "" {
		return NewValidationError("key", "is required")
	}
	if !projectKeyPattern.MatchString(p.Key) {
		return NewValidationError("key",
			fmt.Sprintf("%q must be 2-10 uppercase letters or digits starting with a letter (e.g. WEB2)", p.Key))
	}
	return nil
}

// Validate checks the fields required to create a project.
func (p *Project) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if p.OrgID == "" {
		return NewValidationError("organization", "is required")
	}
	return p.ValidateKey()
}
