package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

const projectColumns = `id, user_id, title, description, due_date, status, created_at, updated_at`

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p           domain.Project
		description sql.NullString
		dueDate     sql.NullTime
		status      string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &description, &dueDate, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if dueDate.Valid {
		d := domain.DateOf(dueDate.Time)
		p.DueDate = &d
	}
	p.Status = domain.Status(status)
	return &p, nil
}

// List returns the user's projects filtered and ordered by q.
func (r *ProjectRepository) List(ctx context.Context, userID int64, q domain.ListQuery) ([]domain.Project, error) {
	query, args := buildListQuery(userID, q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// Get returns a single project owned by the user.
func (r *ProjectRepository) Get(ctx context.Context, userID, id int64) (*domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1 AND id = $2;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Create inserts a new project for the given user.
func (r *ProjectRepository) Create(ctx context.Context, userID int64, in domain.NewProject) (*domain.Project, error) {
	const q = `
INSERT INTO projects (user_id, title, description, due_date, status)
VALUES ($1, $2, $3, $4::date, $5)
RETURNING ` + projectColumns + `;
`
	var dueDate any
	if in.DueDate != nil {
		dueDate = in.DueDate.String()
	}

	p, err := scanProject(r.db.QueryRowContext(ctx, q, userID, in.Title, in.Description, dueDate, string(in.Status)))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of patch to the user's project in a
// single statement.
func (r *ProjectRepository) Update(ctx context.Context, userID, id int64, patch domain.Patch) (*domain.Project, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, userID, id)
	}

	query, args := buildUpdateQuery(userID, id, patch)
	p, err := scanProject(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// Delete permanently removes the user's project. It reports whether a row was deleted.
func (r *ProjectRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	const q = `
DELETE FROM projects
WHERE user_id = $1 AND id = $2;
`
	result, err := r.db.ExecContext(ctx, q, userID, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

var sortColumns = map[domain.SortField]string{
	domain.SortByTitle:     "title",
	domain.SortByDueDate:   "due_date",
	domain.SortByCreatedAt: "created_at",
}

func buildListQuery(userID int64, q domain.ListQuery) (string, []any) {
	q = q.Normalize()

	var b strings.Builder
	b.WriteString("SELECT " + projectColumns + "\nFROM projects\nWHERE user_id = $1")
	args := []any{userID}

	if q.Status != "" {
		args = append(args, string(q.Status))
		fmt.Fprintf(&b, " AND status = $%d", len(args))
	}

	b.WriteString("\nORDER BY ")
	b.WriteString(orderClause(q))
	b.WriteString(";")
	return b.String(), args
}

// orderClause only ever emits allow-listed column names.
func orderClause(q domain.ListQuery) string {
	dir := "ASC"
	if q.Order == domain.OrderDesc {
		dir = "DESC"
	}

	switch q.Sort {
	case domain.SortByDueDate:
		nulls := "NULLS LAST"
		if q.Order == domain.OrderDesc {
			nulls = "NULLS FIRST"
		}
		return fmt.Sprintf("due_date %s %s, id ASC", dir, nulls)
	case domain.SortByTitle:
		// Case-folded first, then exact, so "apple" and "Banana" interleave naturally.
		return fmt.Sprintf(`lower(title) COLLATE "C" %[1]s, title COLLATE "C" %[1]s, id ASC`, dir)
	default:
		return fmt.Sprintf("%s %s, id ASC", sortColumns[q.Sort], dir)
	}
}

func buildUpdateQuery(userID, id int64, patch domain.Patch) (string, []any) {
	args := []any{userID, id}
	sets := make([]string, 0, 5)
	set := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if patch.Title != nil {
		set("title = $%d", *patch.Title)
	}
	if patch.Description != nil {
		var v any
		if *patch.Description != "" {
			v = *patch.Description
		}
		set("description = $%d", v)
	}
	if patch.DueDate != nil {
		var v any
		if !patch.DueDate.IsZero() {
			v = patch.DueDate.String()
		}
		set("due_date = $%d::date", v)
	}
	if patch.Status != nil {
		set("status = $%d", string(*patch.Status))
	}
	sets = append(sets, "updated_at = now()")

	q := "UPDATE projects\nSET " + strings.Join(sets, ", ") +
		"\nWHERE user_id = $1 AND id = $2\nRETURNING " + projectColumns + ";"
	return q, args
}
