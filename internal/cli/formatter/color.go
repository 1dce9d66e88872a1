package formatter

import (
	"fmt"
	"strings"

	"backlog/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator for an issue status.
func StatusPill(status domain.IssueStatus) string {
	switch status {
	case domain.StatusTodo:
		return StyleBlue.Render("○ Todo")
	case domain.StatusInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.StatusInReview:
		return StyleYellow.Render("◐ In Review")
	case domain.StatusDone:
		return StyleDim.Render("✔ Done")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityBadge returns a colored priority label.
func PriorityBadge(p domain.IssuePriority) string {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Render("▲ URGENT")
	case domain.PriorityHigh:
		return StyleYellow.Render("▲ High")
	case domain.PriorityMedium:
		return StyleBlue.Render("● Medium")
	case domain.PriorityLow:
		return StyleDim.Render("▽ Low")
	default:
		return StyleDim.Render(string(p))
	}
}

// SprintPill returns a colored indicator for a sprint status.
func SprintPill(status domain.SprintStatus) string {
	switch status {
	case domain.SprintPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.SprintActive:
		return StyleGreen.Render("● Active")
	case domain.SprintCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
