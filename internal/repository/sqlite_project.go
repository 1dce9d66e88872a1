package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backlog/internal/db"
	"backlog/internal/domain"
)

const projectColumns = `id, org_id, key, name, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, org_id, key, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OrgID,
		p.Key,
		p.Name,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) GetForOrg(ctx context.Context, id, orgID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND org_id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id, orgID))
}

func (r *SQLiteProjectRepo) GetByKey(ctx context.Context, orgID, key string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE org_id = ? AND UPPER(key) = UPPER(?)`
	return r.scanProject(r.db.QueryRowContext(ctx, query, orgID, key))
}

func (r *SQLiteProjectRepo) ListByOrg(ctx context.Context, orgID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE org_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&p.ID, &p.OrgID, &p.Key, &p.Name, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		if err := parseProjectTimes(&p, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var createdAtStr, updatedAtStr string
	err := row.Scan(&p.ID, &p.OrgID, &p.Key, &p.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if err := parseProjectTimes(&p, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}

func parseProjectTimes(p *domain.Project, createdAtStr, updatedAtStr string) error {
	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
