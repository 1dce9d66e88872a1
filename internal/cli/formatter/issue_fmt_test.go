package formatter

import (
	"testing"

	"backlog/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFormatIssueList(t *testing.T) {
	assignee := "u-42"
	issues := []*domain.Issue{
		testIssue("Plain", domain.StatusTodo),
	}
	issues[0].AssigneeID = &assignee

	// Without a resolved user, the assignee column shows the truncated id.
	out := FormatIssueList(issues, nil)
	assert.Contains(t, out, "Plain")
	assert.Contains(t, out, "u-42")

	// With a resolved user, initials replace the id.
	users := map[string]*domain.User{
		assignee: {ID: assignee, Name: "Dana Reyes"},
	}
	out = FormatIssueList(issues, users)
	assert.Contains(t, out, "DR")
	assert.NotContains(t, out, "u-42")
}

func TestFormatIssueDetail(t *testing.T) {
	is := testIssue("Fix login", domain.StatusInProgress)
	desc := "Users bounce to the wrong page after OAuth."
	is.Description = &desc

	out := FormatIssueDetail(is)
	assert.Contains(t, out, "FIX LOGIN")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "unassigned")
	assert.Contains(t, out, desc)
}
