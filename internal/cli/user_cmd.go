package cli

import (
	"context"
	"fmt"

	"backlog/internal/domain"

	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(newUserAddCmd(app))

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Register(context.Background(), name, email)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s <%s> [%s]\n", u.Name, u.Email, u.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// lookupAssignees resolves the distinct assignees of the given issues for
// display. Unresolvable ids are simply absent.
func lookupAssignees(ctx context.Context, app *App, issues []*domain.Issue) map[string]*domain.User {
	users := make(map[string]*domain.User)
	for _, is := range issues {
		if is.AssigneeID == nil {
			continue
		}
		id := *is.AssigneeID
		if _, seen := users[id]; seen {
			continue
		}
		if u, err := app.Users.GetByID(ctx, id); err == nil {
			users[id] = u
		}
	}
	return users
}
