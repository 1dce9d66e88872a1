package cli

import (
	"context"
	"fmt"
	"strings"

	"backlog/internal/cli/formatter"
	"backlog/internal/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type issuePatchFlags struct {
	Title, Description, Status, Priority, Assignee, Sprint string
	ClearDescription, ClearAssignee, ClearSprint           bool
}

// buildIssuePatch maps flag values into a patch: only flags the user set
// appear, and --clear-* marks the field supplied with no value.
func buildIssuePatch(flags *pflag.FlagSet, v issuePatchFlags) domain.IssuePatch {
	var patch domain.IssuePatch

	if flags.Changed("title") {
		patch.Title = &v.Title
	}
	if flags.Changed("status") {
		s := domain.IssueStatus(strings.ToUpper(v.Status))
		patch.Status = &s
	}
	if flags.Changed("priority") {
		p := domain.IssuePriority(strings.ToUpper(v.Priority))
		patch.Priority = &p
	}
	if flags.Changed("description") {
		patch.DescriptionSet = true
		patch.Description = &v.Description
	}
	if v.ClearDescription {
		patch.DescriptionSet = true
		patch.Description = nil
	}
	if flags.Changed("assignee") {
		patch.AssigneeSet = true
		patch.AssigneeID = &v.Assignee
	}
	if v.ClearAssignee {
		patch.AssigneeSet = true
		patch.AssigneeID = nil
	}
	if flags.Changed("sprint") {
		patch.SprintSet = true
		patch.SprintID = &v.Sprint
	}
	if v.ClearSprint {
		patch.SprintSet = true
		patch.SprintID = nil
	}

	return patch
}

func newIssueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Manage issues",
	}

	cmd.AddCommand(
		newIssueAddCmd(app),
		newIssueShowCmd(app),
		newIssueListCmd(app),
		newIssueUpdateCmd(app),
		newIssueMoveCmd(app),
		newIssueAssignCmd(app),
		newIssueBulkStatusCmd(app),
	)

	return cmd
}

func newIssueAddCmd(app *App) *cobra.Command {
	var project, title, description, status, priority, assignee, sprint string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new issue",
		Long: `Create a new issue in a project. With no --title and an
interactive terminal, opens a form to collect the fields.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}

			if title == "" && app.interactive() {
				if err := issueDraftForm(&title, &description, &status, &priority).Run(); err != nil {
					return err
				}
			}
			if status == "" {
				status = string(domain.StatusTodo)
			}
			if priority == "" {
				priority = string(domain.PriorityMedium)
			}

			draft := domain.IssueDraft{
				Title:    title,
				Status:   domain.IssueStatus(status),
				Priority: domain.IssuePriority(priority),
			}
			if strings.TrimSpace(description) != "" {
				draft.Description = &description
			}
			if assignee != "" {
				draft.AssigneeID = &assignee
			}
			if sprint != "" {
				sprintID, err := resolveSprintID(ctx, app, p.ID, sprint)
				if err != nil {
					return err
				}
				draft.SprintID = &sprintID
			}

			res := app.Actions.CreateIssue(ctx, app.Identity, p.ID, draft)
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Printf("%s [%s]\n", res.Message, res.Issue.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project key or ID")
	cmd.Flags().StringVar(&title, "title", "", "Issue title")
	cmd.Flags().StringVar(&description, "description", "", "Issue description")
	cmd.Flags().StringVar(&status, "status", "", "Status (TODO|IN_PROGRESS|IN_REVIEW|DONE)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (LOW|MEDIUM|HIGH|URGENT)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee user ID")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Sprint name or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newIssueShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show issue details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := app.Actions.GetIssue(context.Background(), app.Identity, args[0])
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatIssueDetail(res.Issue))
			return nil
		},
	}
}

func newIssueListCmd(app *App) *cobra.Command {
	var project, sprint, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues by project, sprint, or board column",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var issues []*domain.Issue
			switch {
			case sprint != "" && project != "":
				p, err := resolveProject(ctx, app, project)
				if err != nil {
					return err
				}
				sprintID, err := resolveSprintID(ctx, app, p.ID, sprint)
				if err != nil {
					return err
				}
				r := app.Actions.ListSprintIssues(ctx, app.Identity, sprintID)
				if err := resultErr(r); err != nil {
					return err
				}
				issues = r.Issues
			case status != "":
				p, err := resolveProject(ctx, app, project)
				if err != nil {
					return err
				}
				r := app.Actions.ListColumn(ctx, app.Identity, p.ID, domain.IssueStatus(strings.ToUpper(status)))
				if err := resultErr(r); err != nil {
					return err
				}
				issues = r.Issues
			default:
				p, err := resolveProject(ctx, app, project)
				if err != nil {
					return err
				}
				r := app.Actions.ListProjectIssues(ctx, app.Identity, p.ID)
				if err := resultErr(r); err != nil {
					return err
				}
				issues = r.Issues
			}

			if len(issues) == 0 {
				fmt.Println("No issues found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatIssueList(issues, lookupAssignees(ctx, app, issues)))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project key or ID")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Sprint name or ID")
	cmd.Flags().StringVar(&status, "status", "", "Board column (TODO|IN_PROGRESS|IN_REVIEW|DONE)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newIssueUpdateCmd(app *App) *cobra.Command {
	var title, description, status, priority, assignee, sprint string
	var clearDescription, clearAssignee, clearSprint bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update issue fields",
		Long: `Update an issue. Only flags that are set change the issue;
--clear-* flags empty the corresponding optional field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := buildIssuePatch(cmd.Flags(), issuePatchFlags{
				Title:            title,
				Description:      description,
				Status:           status,
				Priority:         priority,
				Assignee:         assignee,
				Sprint:           sprint,
				ClearDescription: clearDescription,
				ClearAssignee:    clearAssignee,
				ClearSprint:      clearSprint,
			})

			if patch.Empty() {
				return fmt.Errorf("nothing to update; pass at least one field flag")
			}

			res := app.Actions.UpdateIssue(context.Background(), app.Identity, args[0], patch)
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Println(res.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status (TODO|IN_PROGRESS|IN_REVIEW|DONE)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (LOW|MEDIUM|HIGH|URGENT)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee user ID")
	cmd.Flags().StringVar(&sprint, "sprint", "", "New sprint ID")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "Remove the description")
	cmd.Flags().BoolVar(&clearAssignee, "clear-assignee", false, "Unassign the issue")
	cmd.Flags().BoolVar(&clearSprint, "clear-sprint", false, "Remove the issue from its sprint")

	return cmd
}

func newIssueMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STATUS",
		Short: "Move an issue to another board column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := domain.IssueStatus(strings.ToUpper(args[1]))
			res := app.Actions.UpdateIssue(context.Background(), app.Identity, args[0], domain.IssuePatch{Status: &s})
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Printf("Moved issue to %s\n", formatter.ColumnTitle(s))
			return nil
		},
	}
}

func newIssueAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign ID USER",
		Short: "Assign an issue to a user (by id or email)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := app.Users.Resolve(ctx, args[1])
			if err != nil {
				return err
			}
			res := app.Actions.UpdateIssue(ctx, app.Identity, args[0], domain.IssuePatch{
				AssigneeSet: true,
				AssigneeID:  &u.ID,
			})
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Printf("Assigned to %s\n", u.Name)
			return nil
		},
	}
}

func newIssueBulkStatusCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "bulk-status ID...",
		Short: "Move several issues to one status in a single batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := domain.IssueStatus(strings.ToUpper(status))
			res := app.Actions.BulkUpdateIssues(context.Background(), app.Identity, args, domain.IssuePatch{Status: &s})
			if err := resultErr(res); err != nil {
				return err
			}
			fmt.Println(res.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Target status (TODO|IN_PROGRESS|IN_REVIEW|DONE)")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}
