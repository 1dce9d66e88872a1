package cli

import (
	"fmt"
	"strings"

	"backlog/internal/cli/formatter"
	"backlog/internal/domain"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// backlogHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func backlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func statusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.BoardColumns))
	for _, s := range domain.BoardColumns {
		opts = append(opts, huh.NewOption(formatter.ColumnTitle(s), string(s)))
	}
	return opts
}

func priorityOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Low", string(domain.PriorityLow)),
		huh.NewOption("Medium", string(domain.PriorityMedium)),
		huh.NewOption("High", string(domain.PriorityHigh)),
		huh.NewOption("Urgent", string(domain.PriorityUrgent)),
	}
}

// issueDraftForm collects the fields for a new issue interactively.
func issueDraftForm(title, description, status, priority *string) *huh.Form {
	*status = string(domain.StatusTodo)
	*priority = string(domain.PriorityMedium)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Fix login redirect").
				Value(title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description (optional)").
				Value(description),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions()...).
				Value(status),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(priority),
		),
	).WithTheme(backlogHuhTheme()).WithShowHelp(false)
}
