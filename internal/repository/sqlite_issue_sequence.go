package repository

import (
	"context"
	"fmt"

	"backlog/internal/db"
	"backlog/internal/domain"
)

// SQLiteIssueSequenceRepo allocates board-column order values atomically
// using the issue_sequences table. Two concurrent creates against the same
// (project, status) column can never receive the same order value.
type SQLiteIssueSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteIssueSequenceRepo creates a new SQLiteIssueSequenceRepo.
func NewSQLiteIssueSequenceRepo(conn db.DBTX) *SQLiteIssueSequenceRepo {
	return &SQLiteIssueSequenceRepo{db: conn}
}

// NextOrder returns the next order value for the (projectID, status)
// column: max existing order + 1, or 0 for an empty column. Allocation is
// atomic and safe under concurrent writes.
func (r *SQLiteIssueSequenceRepo) NextOrder(ctx context.Context, projectID string, status domain.IssueStatus) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO issue_sequences (project_id, status, next_order)
		SELECT ?, ?, COALESCE(MAX(order_idx), -1) + 1
		FROM issues
		WHERE project_id = ? AND status = ?`
	if _, err := r.db.ExecContext(ctx, seedQuery, projectID, string(status), projectID, string(status)); err != nil {
		return 0, fmt.Errorf("seeding issue sequence for %s/%s: %w", projectID, status, err)
	}

	var next int
	allocQuery := `UPDATE issue_sequences
		SET next_order = next_order + 1
		WHERE project_id = ? AND status = ?
		RETURNING next_order - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, projectID, string(status)).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next order for %s/%s: %w", projectID, status, err)
	}

	return next, nil
}
