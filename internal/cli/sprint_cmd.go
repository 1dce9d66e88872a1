package cli

import (
	"context"
	"fmt"
	"time"

	"backlog/internal/cli/formatter"
	"backlog/internal/domain"

	"github.com/spf13/cobra"
)

func newSprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints",
	}

	cmd.AddCommand(
		newSprintAddCmd(app),
		newSprintListCmd(app),
		newSprintStatusCmd(app, "start", domain.SprintActive),
		newSprintStatusCmd(app, "complete", domain.SprintCompleted),
	)

	return cmd
}

func newSprintAddCmd(app *App) *cobra.Command {
	var project, name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new sprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}

			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			sp, err := app.Sprints.Create(ctx, app.Identity, p.ID, name, startDate, endDate)
			if err != nil {
				return err
			}
			fmt.Printf("Created sprint %s (%s)\n", sp.Name, formatter.SprintRange(sp.StartDate, sp.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project key or ID")
	cmd.Flags().StringVar(&name, "name", "", "Sprint name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newSprintListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sprints in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			sprints, err := app.Sprints.ListByProject(ctx, app.Identity, p.ID)
			if err != nil {
				return err
			}
			if len(sprints) == 0 {
				fmt.Println("No sprints found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSprintList(sprints))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project key or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSprintStatusCmd(app *App, verb string, target domain.SprintStatus) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   verb + " SPRINT",
		Short: verb[:1] + verb[1:] + " a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			sprintID, err := resolveSprintID(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}
			sp, err := app.Sprints.UpdateStatus(ctx, app.Identity, sprintID, target)
			if err != nil {
				return err
			}
			fmt.Printf("Sprint %s is now %s\n", sp.Name, sp.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project key or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
