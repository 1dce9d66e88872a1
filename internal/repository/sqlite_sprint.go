package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backlog/internal/db"
	"backlog/internal/domain"
)

const sprintColumns = `id, project_id, name, start_date, end_date, status, created_at, updated_at`

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

// NewSQLiteSprintRepo creates a new SQLiteSprintRepo.
func NewSQLiteSprintRepo(conn db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: conn}
}

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	query := `INSERT INTO sprints (id, project_id, name, start_date, end_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		string(s.Status),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSprint(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sprint: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSprintRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE project_id = ? ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := scanSprint(rows.Scan)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return sprints, nil
}

func (r *SQLiteSprintRepo) Update(ctx context.Context, s *domain.Sprint) error {
	query := `UPDATE sprints SET name = ?, start_date = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		string(s.Status),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint: %w", err)
	}
	return nil
}

// scanSprint scans one sprint row via the given Scan function, so it works
// for both *sql.Row and *sql.Rows.
func scanSprint(scan func(...any) error) (*domain.Sprint, error) {
	var s domain.Sprint
	var statusStr, startStr, endStr, createdAtStr, updatedAtStr string
	if err := scan(&s.ID, &s.ProjectID, &s.Name, &startStr, &endStr, &statusStr, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sprint: %w", err)
	}
	s.Status = domain.SprintStatus(statusStr)

	var parseErr error
	if s.StartDate, parseErr = time.Parse(dateLayout, startStr); parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	if s.EndDate, parseErr = time.Parse(dateLayout, endStr); parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	if s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &s, nil
}
