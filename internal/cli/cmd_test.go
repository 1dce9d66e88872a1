package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"backlog/internal/domain"
	"backlog/internal/repository"
	"backlog/internal/service"
	"backlog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := repository.NewSQLiteProjectRepo(db)
	sprintRepo := repository.NewSQLiteSprintRepo(db)
	issueRepo := repository.NewSQLiteIssueRepo(db)
	userRepo := repository.NewSQLiteUserRepo(db)

	user := testutil.NewTestUser("Cli Tester")
	require.NoError(t, userRepo.Create(ctx, user))

	issueSvc := service.NewIssueService(issueRepo, projRepo, sprintRepo, testutil.NewTestUoW(db))

	return &App{
		Users:         service.NewUserService(userRepo),
		Projects:      service.NewProjectService(projRepo, issueRepo),
		Sprints:       service.NewSprintService(sprintRepo, projRepo, issueRepo),
		Issues:        issueSvc,
		Actions:       service.NewActions(issueSvc, service.NoopInvalidator{}),
		Identity:      testutil.NewTestIdentity(user, "org-1"),
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestProjectAddAndList(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--key", "WEB", "--name", "Website")
	require.NoError(t, err)

	projects, err := app.Projects.List(context.Background(), app.Identity)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "WEB", projects[0].Key)
}

func TestProjectAdd_InvalidKey(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--key", "1BAD", "--name", "Website")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key")
}

func TestIssueAddAndMove(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "project", "add", "--key", "WEB", "--name", "Website")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "issue", "add",
		"--project", "WEB",
		"--title", "Fix login",
		"--priority", "HIGH",
	)
	require.NoError(t, err)

	p, err := app.Projects.GetByKey(ctx, app.Identity, "WEB")
	require.NoError(t, err)
	issues, err := app.Issues.ListByProject(ctx, app.Identity, p.ID)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.PriorityHigh, issues[0].Priority)

	_, err = executeCmd(t, app, "issue", "move", issues[0].ID, "in_progress")
	require.NoError(t, err)

	moved, err := app.Issues.GetByID(ctx, app.Identity, issues[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, moved.Status)
}

func TestIssueUpdate_RequiresAField(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "issue", "update", "some-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestIssueUpdate_ClearDescription(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "project", "add", "--key", "WEB", "--name", "Website")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "issue", "add",
		"--project", "WEB",
		"--title", "Task",
		"--description", "old text",
	)
	require.NoError(t, err)

	p, err := app.Projects.GetByKey(ctx, app.Identity, "WEB")
	require.NoError(t, err)
	issues, err := app.Issues.ListByProject(ctx, app.Identity, p.ID)
	require.NoError(t, err)
	require.NotNil(t, issues[0].Description)

	_, err = executeCmd(t, app, "issue", "update", issues[0].ID, "--clear-description")
	require.NoError(t, err)

	updated, err := app.Issues.GetByID(ctx, app.Identity, issues[0].ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Equal(t, "Task", updated.Title)
}

func TestIssueBulkStatus(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "project", "add", "--key", "WEB", "--name", "Website")
	require.NoError(t, err)
	for _, title := range []string{"A", "B"} {
		_, err = executeCmd(t, app, "issue", "add", "--project", "WEB", "--title", title)
		require.NoError(t, err)
	}

	p, err := app.Projects.GetByKey(ctx, app.Identity, "WEB")
	require.NoError(t, err)
	issues, err := app.Issues.ListByProject(ctx, app.Identity, p.ID)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	_, err = executeCmd(t, app, "issue", "bulk-status", issues[0].ID, issues[1].ID, "--status", "DONE")
	require.NoError(t, err)

	for _, is := range issues {
		got, err := app.Issues.GetByID(ctx, app.Identity, is.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDone, got.Status)
	}
}

func TestUserAddAndIssueAssign(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "user", "add", "--name", "Dana Reyes", "--email", "dana@example.com")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "project", "add", "--key", "WEB", "--name", "Website")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "issue", "add", "--project", "WEB", "--title", "Task")
	require.NoError(t, err)

	p, err := app.Projects.GetByKey(ctx, app.Identity, "WEB")
	require.NoError(t, err)
	issues, err := app.Issues.ListByProject(ctx, app.Identity, p.ID)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	// Assign by email.
	_, err = executeCmd(t, app, "issue", "assign", issues[0].ID, "dana@example.com")
	require.NoError(t, err)

	assigned, err := app.Issues.GetByID(ctx, app.Identity, issues[0].ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssigneeID)

	u, err := app.Users.GetByID(ctx, *assigned.AssigneeID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", u.Name)
}

func TestSprintLifecycle(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "project", "add", "--key", "WEB", "--name", "Website")
	require.NoError(t, err)

	p, err := app.Projects.GetByKey(ctx, app.Identity, "WEB")
	require.NoError(t, err)

	// A sprint whose window covers today can be started.
	start := time.Now().UTC().AddDate(0, 0, -1)
	sprint, err := app.Sprints.Create(ctx, app.Identity, p.ID, "Sprint 1", start, start.AddDate(0, 0, 14))
	require.NoError(t, err)

	_, err = executeCmd(t, app, "sprint", "start", sprint.ID, "--project", "WEB")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "sprint", "complete", sprint.ID, "--project", "WEB")
	require.NoError(t, err)

	sprints, err := app.Sprints.ListByProject(ctx, app.Identity, p.ID)
	require.NoError(t, err)
	require.Len(t, sprints, 1)
	assert.Equal(t, domain.SprintCompleted, sprints[0].Status)
}

func TestBoardCmd_StaticRender(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--key", "WEB", "--name", "Website")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "issue", "add", "--project", "WEB", "--title", "Task")
	require.NoError(t, err)

	// Non-interactive terminals get the static board and no program loop.
	_, err = executeCmd(t, app, "board", "--project", "WEB")
	require.NoError(t, err)
}

func TestUnknownProject(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "issue", "list", "--project", "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}
