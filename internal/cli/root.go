package cli

import (
	"backlog/internal/domain"
	"backlog/internal/service"

	"github.com/spf13/cobra"
)

// App holds the services and identity used by CLI commands. Issue
// mutations go through Actions so every command shares the envelope and
// observer path.
type App struct {
	Users    service.UserService
	Projects service.ProjectService
	Sprints  service.SprintService
	Issues   service.IssueService
	Actions  *service.Actions

	Identity domain.Identity

	// IsInteractive reports whether stdin is a terminal; interactive
	// forms and the board are gated on it.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "backlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var userID, orgID string

	root := &cobra.Command{
		Use:   "backlog",
		Short: "Team issue tracker with sprints and a kanban board",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if userID != "" {
				app.Identity.UserID = userID
			}
			if orgID != "" {
				app.Identity.OrgID = orgID
			}
		},
	}

	root.PersistentFlags().StringVar(&userID, "user", "", "Acting user ID (overrides BACKLOG_USER)")
	root.PersistentFlags().StringVar(&orgID, "org", "", "Acting org ID (overrides BACKLOG_ORG)")

	root.AddCommand(
		newUserCmd(app),
		newProjectCmd(app),
		newSprintCmd(app),
		newIssueCmd(app),
		newBoardCmd(app),
	)

	return root
}
