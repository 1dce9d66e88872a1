package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"backlog/internal/db"
	"backlog/internal/domain"
)

// issueColumns is the canonical SELECT column list for issues.
const issueColumns = `id, project_id, sprint_id, title, description, status, priority,
		reporter_id, assignee_id, order_idx, created_at, updated_at`

// SQLiteIssueRepo implements IssueRepo using a SQLite database.
type SQLiteIssueRepo struct {
	db db.DBTX
}

// NewSQLiteIssueRepo creates a new SQLiteIssueRepo.
func NewSQLiteIssueRepo(conn db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{db: conn}
}

func (r *SQLiteIssueRepo) Create(ctx context.Context, is *domain.Issue) error {
	query := `INSERT INTO issues (id, project_id, sprint_id, title, description, status, priority,
		reporter_id, assignee_id, order_idx, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		is.ID,
		is.ProjectID,
		nullableStr(is.SprintID),
		is.Title,
		nullableStr(is.Description),
		string(is.Status),
		string(is.Priority),
		is.ReporterID,
		nullableStr(is.AssigneeID),
		is.Order,
		is.CreatedAt.Format(time.RFC3339),
		is.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	is, err := scanIssue(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("issue: %w", ErrNotFound)
		}
		return nil, err
	}
	return is, nil
}

func (r *SQLiteIssueRepo) GetRef(ctx context.Context, id string) (*IssueProjectRef, error) {
	query := `SELECT i.id, i.project_id, i.sprint_id, p.org_id
		FROM issues i
		JOIN projects p ON i.project_id = p.id
		WHERE i.id = ?`
	var ref IssueProjectRef
	var sprintID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ref.IssueID, &ref.ProjectID, &sprintID, &ref.OrgID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("issue: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning issue ref: %w", err)
	}
	ref.SprintID = parseNullableStr(sprintID)
	return &ref, nil
}

func (r *SQLiteIssueRepo) ListRefs(ctx context.Context, ids []string) ([]IssueProjectRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT i.id, i.project_id, i.sprint_id, p.org_id
		FROM issues i
		JOIN projects p ON i.project_id = p.id
		WHERE i.id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("listing issue refs: %w", err)
	}
	defer rows.Close()

	var refs []IssueProjectRef
	for rows.Next() {
		var ref IssueProjectRef
		var sprintID sql.NullString
		if err := rows.Scan(&ref.IssueID, &ref.ProjectID, &sprintID, &ref.OrgID); err != nil {
			return nil, fmt.Errorf("scanning issue ref row: %w", err)
		}
		ref.SprintID = parseNullableStr(sprintID)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issue refs: %w", err)
	}
	return refs, nil
}

func (r *SQLiteIssueRepo) ListColumn(ctx context.Context, projectID string, status domain.IssueStatus) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues
		WHERE project_id = ? AND status = ?
		ORDER BY order_idx`
	return r.list(ctx, query, projectID, string(status))
}

func (r *SQLiteIssueRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues
		WHERE project_id = ?
		ORDER BY status, order_idx`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteIssueRepo) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues
		WHERE sprint_id = ?
		ORDER BY status, order_idx`
	return r.list(ctx, query, sprintID)
}

func (r *SQLiteIssueRepo) Update(ctx context.Context, is *domain.Issue) error {
	query := `UPDATE issues SET sprint_id = ?, title = ?, description = ?, status = ?, priority = ?,
		assignee_id = ?, order_idx = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableStr(is.SprintID),
		is.Title,
		nullableStr(is.Description),
		string(is.Status),
		string(is.Priority),
		nullableStr(is.AssigneeID),
		is.Order,
		is.UpdatedAt.Format(time.RFC3339),
		is.ID,
	)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) UpdateMany(ctx context.Context, ids []string, patch *domain.IssuePatch) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	set := []string{"updated_at = ?"}
	args := []any{nowUTC()}
	if patch.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Status != nil {
		set = append(set, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, string(*patch.Priority))
	}
	if patch.DescriptionSet {
		set = append(set, "description = ?")
		args = append(args, nullableStr(patch.Description))
	}
	if patch.AssigneeSet {
		set = append(set, "assignee_id = ?")
		args = append(args, nullableStr(patch.AssigneeID))
	}
	if patch.SprintSet {
		set = append(set, "sprint_id = ?")
		args = append(args, nullableStr(patch.SprintID))
	}

	query := `UPDATE issues SET ` + strings.Join(set, ", ") +
		` WHERE id IN (` + placeholders(len(ids)) + `)`
	args = append(args, idArgs(ids)...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk updating issues: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return count, nil
}

func (r *SQLiteIssueRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM issues WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting issue: %w", err)
	}
	return nil
}

func (r *SQLiteIssueRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []*domain.Issue
	for rows.Next() {
		is, err := scanIssue(rows.Scan)
		if err != nil {
			return nil, err
		}
		issues = append(issues, is)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

// scanIssue scans one issue row via the given Scan function, so it works
// for both *sql.Row and *sql.Rows.
func scanIssue(scan func(...any) error) (*domain.Issue, error) {
	var is domain.Issue
	var sprintID, description, assigneeID sql.NullString
	var statusStr, priorityStr, createdAtStr, updatedAtStr string

	err := scan(
		&is.ID, &is.ProjectID, &sprintID, &is.Title, &description, &statusStr, &priorityStr,
		&is.ReporterID, &assigneeID, &is.Order, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning issue: %w", err)
	}

	is.SprintID = parseNullableStr(sprintID)
	is.Description = parseNullableStr(description)
	is.AssigneeID = parseNullableStr(assigneeID)
	is.Status = domain.IssueStatus(statusStr)
	is.Priority = domain.IssuePriority(priorityStr)

	var parseErr error
	if is.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if is.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &is, nil
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func idArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
