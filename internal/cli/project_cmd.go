package cli

import (
	"context"
	"fmt"

	"backlog/internal/cli/formatter"

	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var key, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Create(context.Background(), app.Identity, key, name)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s [%s]\n", p.Name, p.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Project key (letter followed by 1-9 letters/digits, e.g. WEB)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), app.Identity)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}
