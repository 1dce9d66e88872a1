package formatter

import (
	"fmt"
	"strings"

	"backlog/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const boardColumnWidth = 26

var (
	boardColumnStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorDim).
				Padding(0, 1).
				Width(boardColumnWidth)

	boardFocusedColumnStyle = boardColumnStyle.
				BorderForeground(ColorHeader)

	boardCardStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Width(boardColumnWidth - 2)

	boardSelectedCardStyle = lipgloss.NewStyle().
				Foreground(ColorHeader).
				Bold(true).
				Width(boardColumnWidth - 2)
)

// ColumnTitle returns the board heading for a status column.
func ColumnTitle(status domain.IssueStatus) string {
	switch status {
	case domain.StatusTodo:
		return "Todo"
	case domain.StatusInProgress:
		return "In Progress"
	case domain.StatusInReview:
		return "In Review"
	case domain.StatusDone:
		return "Done"
	default:
		return string(status)
	}
}

// FormatBoard renders a kanban board with one bordered column per status,
// issues in position order. focusCol/focusRow highlight the selection; pass
// -1 for a static render.
func FormatBoard(columns map[domain.IssueStatus][]*domain.Issue, focusCol, focusRow int) string {
	rendered := make([]string, 0, len(domain.BoardColumns))

	for ci, status := range domain.BoardColumns {
		issues := columns[status]

		var b strings.Builder
		title := fmt.Sprintf("%s %s", ColumnTitle(status), Dim(fmt.Sprintf("(%d)", len(issues))))
		b.WriteString(StyleHeader.Render(title))
		b.WriteString("\n")

		if len(issues) == 0 {
			b.WriteString(Dim("empty"))
		}
		for ri, is := range issues {
			line := fmt.Sprintf("%s %s", priorityDot(is.Priority), Truncate(is.Title, boardColumnWidth-6))
			if ci == focusCol && ri == focusRow {
				b.WriteString(boardSelectedCardStyle.Render("▸ " + line))
			} else {
				b.WriteString(boardCardStyle.Render("  " + line))
			}
			if ri < len(issues)-1 {
				b.WriteString("\n")
			}
		}

		style := boardColumnStyle
		if ci == focusCol {
			style = boardFocusedColumnStyle
		}
		rendered = append(rendered, style.Render(b.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func priorityDot(p domain.IssuePriority) string {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Render("▲")
	case domain.PriorityHigh:
		return StyleYellow.Render("▲")
	case domain.PriorityMedium:
		return StyleBlue.Render("●")
	default:
		return StyleDim.Render("▽")
	}
}
