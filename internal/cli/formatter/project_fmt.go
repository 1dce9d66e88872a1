package formatter

import (
	"backlog/internal/domain"
)

// FormatProjectList renders projects as an aligned table.
func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			StylePurple.Render(p.Key),
			StyleFg.Render(p.Name),
			Dim(RelativeTime(p.CreatedAt)),
		})
	}
	return RenderTable([]string{"Key", "Name", "Created"}, rows)
}

// FormatSprintList renders sprints as an aligned table.
func FormatSprintList(sprints []*domain.Sprint) string {
	rows := make([][]string, 0, len(sprints))
	for _, sp := range sprints {
		rows = append(rows, []string{
			TruncID(sp.ID),
			StyleFg.Render(sp.Name),
			SprintPill(sp.Status),
			Dim(SprintRange(sp.StartDate, sp.EndDate)),
		})
	}
	return RenderTable([]string{"ID", "Name", "Status", "Dates"}, rows)
}
