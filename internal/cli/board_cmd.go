package cli

import (
	"context"
	"fmt"

	"backlog/internal/cli/formatter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board for a project",
		Long: `Render the project's kanban board. On an interactive terminal
the board is navigable and issues can be moved between columns;
otherwise a static board is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}

			if !app.interactive() {
				res := app.Actions.ListProjectIssues(ctx, app.Identity, p.ID)
				if err := resultErr(res); err != nil {
					return err
				}
				fmt.Printf("%s\n%s\n", formatter.Header(p.Name), formatter.FormatBoard(groupByColumn(res.Issues), -1, -1))
				return nil
			}

			model := newBoardModel(app, p.ID)
			final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if bm, ok := final.(boardModel); ok && bm.err != nil {
				return bm.err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project key or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
