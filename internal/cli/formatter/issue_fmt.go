package formatter

import (
	"fmt"
	"strings"

	"backlog/internal/domain"
)

// FormatIssueList renders issues as an aligned table. users maps assignee
// IDs to resolved users for initials display; ids absent from the map fall
// back to a truncated id.
func FormatIssueList(issues []*domain.Issue, users map[string]*domain.User) string {
	rows := make([][]string, 0, len(issues))
	for _, is := range issues {
		assignee := Dim("--")
		if is.AssigneeID != nil {
			if u := users[*is.AssigneeID]; u != nil {
				assignee = StylePurple.Render(u.Initials())
			} else {
				assignee = TruncID(*is.AssigneeID)
			}
		}
		rows = append(rows, []string{
			TruncID(is.ID),
			StyleFg.Render(Truncate(is.Title, 48)),
			StatusPill(is.Status),
			PriorityBadge(is.Priority),
			assignee,
			Dim(RelativeTime(is.UpdatedAt)),
		})
	}
	return RenderTable([]string{"ID", "Title", "Status", "Priority", "Assignee", "Updated"}, rows)
}

// FormatIssueDetail renders a single issue with all fields.
func FormatIssueDetail(is *domain.Issue) string {
	var b strings.Builder

	b.WriteString(Header(is.Title))
	b.WriteString("\n\n")

	write := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render(fmt.Sprintf("%-10s", label)), value))
	}

	write("ID", Dim(is.ID))
	write("Status", StatusPill(is.Status))
	write("Priority", PriorityBadge(is.Priority))
	write("Position", StyleFg.Render(fmt.Sprintf("%d", is.Order)))
	write("Reporter", TruncID(is.ReporterID))
	if is.AssigneeID != nil {
		write("Assignee", TruncID(*is.AssigneeID))
	} else {
		write("Assignee", Dim("unassigned"))
	}
	if is.SprintID != nil {
		write("Sprint", TruncID(*is.SprintID))
	}
	write("Created", Dim(RelativeTime(is.CreatedAt)))
	write("Updated", Dim(RelativeTime(is.UpdatedAt)))

	if is.Description != nil {
		b.WriteString("\n")
		b.WriteString(StyleFg.Render(*is.Description))
		b.WriteString("\n")
	}

	return b.String()
}
