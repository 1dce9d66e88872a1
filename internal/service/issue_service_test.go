package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"backlog/internal/domain"
	"backlog/internal/repository"
	"backlog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type issueFixture struct {
	db       *sql.DB
	svc      IssueService
	issues   repository.IssueRepo
	sprints  repository.SprintRepo
	projects repository.ProjectRepo
	proj     *domain.Project
	identity domain.Identity
}

func setupIssueService(t *testing.T) *issueFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	issueRepo := repository.NewSQLiteIssueRepo(db)
	projRepo := repository.NewSQLiteProjectRepo(db)
	sprintRepo := repository.NewSQLiteSprintRepo(db)
	userRepo := repository.NewSQLiteUserRepo(db)

	user := testutil.NewTestUser("Dana Reyes")
	require.NoError(t, userRepo.Create(ctx, user))
	proj := testutil.NewTestProject("org-1", "Website")
	require.NoError(t, projRepo.Create(ctx, proj))

	return &issueFixture{
		db:       db,
		svc:      NewIssueService(issueRepo, projRepo, sprintRepo, testutil.NewTestUoW(db)),
		issues:   issueRepo,
		sprints:  sprintRepo,
		projects: projRepo,
		proj:     proj,
		identity: testutil.NewTestIdentity(user, "org-1"),
	}
}

// seedForeignIssue creates an issue owned by another tenant.
func (f *issueFixture) seedForeignIssue(t *testing.T) *domain.Issue {
	t.Helper()
	ctx := context.Background()

	outsider := testutil.NewTestUser("Kim Voss")
	require.NoError(t, repository.NewSQLiteUserRepo(f.db).Create(ctx, outsider))
	foreignProj := testutil.NewTestProject("org-2", "Internal")
	require.NoError(t, f.projects.Create(ctx, foreignProj))

	is := testutil.NewTestIssue(foreignProj.ID, outsider.ID, "Foreign issue")
	require.NoError(t, f.issues.Create(ctx, is))
	return is
}

func draft(title string) domain.IssueDraft {
	return domain.IssueDraft{Title: title, Status: domain.StatusTodo, Priority: domain.PriorityMedium}
}

func TestIssueService_Create_AssignsColumnOrder(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	for want := 0; want < 3; want++ {
		is, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("Task"))
		require.NoError(t, err)
		assert.Equal(t, want, is.Order)
	}

	// A different column starts at zero.
	d := draft("Done task")
	d.Status = domain.StatusDone
	is, err := f.svc.Create(ctx, f.identity, f.proj.ID, d)
	require.NoError(t, err)
	assert.Equal(t, 0, is.Order)
}

func TestIssueService_Create_SeedsFromExistingOrders(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	// Column already holds orders {0,1,2} written before the allocator ran.
	for _, order := range []int{0, 1, 2} {
		is := testutil.NewTestIssue(f.proj.ID, f.identity.UserID, "Pre", testutil.WithOrder(order))
		require.NoError(t, f.issues.Create(ctx, is))
	}

	is, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("Next"))
	require.NoError(t, err)
	assert.Equal(t, 3, is.Order)
}

func TestIssueService_Create_SetsReporterAndTrims(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	d := draft("  Fix login  ")
	d.Description = domain.StrPtr("   ")
	is, err := f.svc.Create(ctx, f.identity, f.proj.ID, d)
	require.NoError(t, err)

	assert.Equal(t, "Fix login", is.Title)
	assert.Equal(t, f.identity.UserID, is.ReporterID)
	assert.Nil(t, is.Description, "blank description collapses to null")

	fetched, err := f.issues.GetByID(ctx, is.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fix login", fetched.Title)
}

func TestIssueService_Create_RejectsBadFieldsWithoutWriting(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		draft domain.IssueDraft
	}{
		{"empty title", domain.IssueDraft{Title: "  ", Status: domain.StatusTodo, Priority: domain.PriorityLow}},
		{"bad status", domain.IssueDraft{Title: "T", Status: "BLOCKED", Priority: domain.PriorityLow}},
		{"bad priority", domain.IssueDraft{Title: "T", Status: domain.StatusTodo, Priority: "CRITICAL"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.identity, f.proj.ID, tc.draft)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}

	issues, err := f.issues.ListByProject(ctx, f.proj.ID)
	require.NoError(t, err)
	assert.Empty(t, issues, "no write occurred")
}

func TestIssueService_Create_UnknownProject(t *testing.T) {
	f := setupIssueService(t)

	_, err := f.svc.Create(context.Background(), f.identity, "missing", draft("T"))
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestIssueService_Create_ForeignProjectLooksMissing(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	foreign := testutil.NewTestProject("org-2", "Internal")
	require.NoError(t, f.projects.Create(ctx, foreign))

	_, err := f.svc.Create(ctx, f.identity, foreign.ID, draft("T"))
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err),
		"another tenant's project must be indistinguishable from a missing one")
}

func TestIssueService_Create_Unauthenticated(t *testing.T) {
	f := setupIssueService(t)

	_, err := f.svc.Create(context.Background(), domain.Identity{}, f.proj.ID, draft("T"))
	require.Error(t, err)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))

	_, err = f.svc.Create(context.Background(), domain.Identity{UserID: "u1"}, f.proj.ID, draft("T"))
	require.Error(t, err)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err), "missing org context")
}

func TestIssueService_Create_RollsBackOrderOnFailedInsert(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	// Exec #1 is the allocator seed, exec #2 the issue insert.
	failing := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 2, Err: errors.New("disk full")}
	svc := NewIssueService(f.issues, f.projects, f.sprints, failing)

	_, err := svc.Create(ctx, f.identity, f.proj.ID, draft("Doomed"))
	require.Error(t, err)

	// The aborted allocation must not leave a gap: the next create still
	// receives order 0.
	is, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("Survivor"))
	require.NoError(t, err)
	assert.Equal(t, 0, is.Order)
}

func TestIssueService_Update_AppliesOnlySuppliedFields(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	d := draft("Original")
	d.Description = domain.StrPtr("context")
	d.AssigneeID = &f.identity.UserID
	is, err := f.svc.Create(ctx, f.identity, f.proj.ID, d)
	require.NoError(t, err)

	// Clearing the description touches nothing else.
	updated, err := f.svc.Update(ctx, f.identity, is.ID, domain.IssuePatch{DescriptionSet: true})
	require.NoError(t, err)

	assert.Nil(t, updated.Description)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, domain.StatusTodo, updated.Status)
	assert.Equal(t, domain.PriorityMedium, updated.Priority)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, f.identity.UserID, *updated.AssigneeID)
}

func TestIssueService_Update_EmptyTitleRejectedWithoutWrite(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	is, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("Keep me"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.identity, is.ID, domain.IssuePatch{Title: domain.StrPtr("   ")})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	fetched, err := f.issues.GetByID(ctx, is.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep me", fetched.Title, "original title unchanged in storage")
}

func TestIssueService_Update_CrossTenantUnauthorized(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	foreign := f.seedForeignIssue(t)

	_, err := f.svc.Update(ctx, f.identity, foreign.ID, domain.IssuePatch{Status: domain.StatusPtr(domain.StatusDone)})
	require.Error(t, err)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))
	assert.Equal(t, "unauthorized", err.Error(), "no detail leaks about the foreign resource")

	fetched, err := f.issues.GetByID(ctx, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, fetched.Status, "storage unmodified")
}

func TestIssueService_Update_NotFound(t *testing.T) {
	f := setupIssueService(t)

	_, err := f.svc.Update(context.Background(), f.identity, "missing", domain.IssuePatch{Status: domain.StatusPtr(domain.StatusDone)})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestIssueService_Update_Idempotent(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	is, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("Task"))
	require.NoError(t, err)

	patch := domain.IssuePatch{Status: domain.StatusPtr(domain.StatusDone)}
	first, err := f.svc.Update(ctx, f.identity, is.ID, patch)
	require.NoError(t, err)
	second, err := f.svc.Update(ctx, f.identity, is.ID, patch)
	require.NoError(t, err, "second identical update succeeds")

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Title, second.Title)
}

func TestIssueService_BulkUpdate_RequiresIDs(t *testing.T) {
	f := setupIssueService(t)

	_, _, err := f.svc.BulkUpdate(context.Background(), f.identity, nil, domain.IssuePatch{})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestIssueService_BulkUpdate_CrossTenantAbortsWholeBatch(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	mine, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("Mine"))
	require.NoError(t, err)
	foreign := f.seedForeignIssue(t)

	patch := domain.IssuePatch{Status: domain.StatusPtr(domain.StatusDone)}
	_, _, err = f.svc.BulkUpdate(ctx, f.identity, []string{mine.ID, foreign.ID}, patch)
	require.Error(t, err)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))

	// Neither row was touched.
	fetched, err := f.issues.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, fetched.Status)
	fetched, err = f.issues.GetByID(ctx, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, fetched.Status)
}

func TestIssueService_BulkUpdate_AppliesPatchToAll(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("A"))
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("B"))
	require.NoError(t, err)

	patch := domain.IssuePatch{Priority: domain.PriorityPtr(domain.PriorityUrgent)}
	count, scopes, err := f.svc.BulkUpdate(ctx, f.identity, []string{a.ID, b.ID}, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, scopes, 1, "one project scope, deduplicated")
	assert.Equal(t, f.proj.ID, scopes[0].ProjectID)

	for _, id := range []string{a.ID, b.ID} {
		fetched, err := f.issues.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityUrgent, fetched.Priority)
	}
}

func TestIssueService_BulkUpdate_ValidatesPatch(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("A"))
	require.NoError(t, err)

	patch := domain.IssuePatch{Status: domain.StatusPtr("NOT_A_STATUS")}
	_, _, err = f.svc.BulkUpdate(ctx, f.identity, []string{a.ID}, patch)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	fetched, err := f.issues.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, fetched.Status)
}

func TestIssueService_BulkUpdate_SkipsUnknownIDs(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft("A"))
	require.NoError(t, err)

	patch := domain.IssuePatch{Status: domain.StatusPtr(domain.StatusDone)}
	count, _, err := f.svc.BulkUpdate(ctx, f.identity, []string{a.ID, "missing"}, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "unresolved ids affect no rows")
}

func TestIssueService_GetByID_CrossTenantUnauthorized(t *testing.T) {
	f := setupIssueService(t)

	foreign := f.seedForeignIssue(t)
	_, err := f.svc.GetByID(context.Background(), f.identity, foreign.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))
}

func TestIssueService_ListColumn(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second"} {
		_, err := f.svc.Create(ctx, f.identity, f.proj.ID, draft(title))
		require.NoError(t, err)
	}

	column, err := f.svc.ListColumn(ctx, f.identity, f.proj.ID, domain.StatusTodo)
	require.NoError(t, err)
	require.Len(t, column, 2)
	assert.Equal(t, "First", column[0].Title)
	assert.Equal(t, "Second", column[1].Title)

	_, err = f.svc.ListColumn(ctx, f.identity, f.proj.ID, "BOGUS")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestIssueService_ListBySprint_ForeignSprintLooksMissing(t *testing.T) {
	f := setupIssueService(t)
	ctx := context.Background()

	foreignProj := testutil.NewTestProject("org-2", "Internal")
	require.NoError(t, f.projects.Create(ctx, foreignProj))
	foreignSprint := testutil.NewTestSprint(foreignProj.ID, "Theirs")
	require.NoError(t, f.sprints.Create(ctx, foreignSprint))

	_, err := f.svc.ListBySprint(ctx, f.identity, foreignSprint.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
