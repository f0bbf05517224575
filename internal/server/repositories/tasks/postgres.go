// Package tasks provides the PostgreSQL-backed repository for task rows,
// including the filtered public listing and the conditional claim used by
// assignment.
package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/timebank/internal/arrayx"
	"github.com/dmitrijs2005/timebank/internal/common"
	"github.com/dmitrijs2005/timebank/internal/dbx"
	"github.com/dmitrijs2005/timebank/internal/server/models"
)

const taskColumns = `id, title, description, duration, credits_offered, task_type, skills_required,
	location, created_by, assigned_to, status, before_photo, after_photo, validation_result,
	created_at, completed_at`

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (*models.Task, error) {
	task := &models.Task{}
	var skills sql.NullString
	var result []byte

	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Duration, &task.CreditsOffered,
		&task.TaskType, &skills, &task.Location, &task.CreatedBy, &task.AssignedTo, &task.Status,
		&task.BeforePhoto, &task.AfterPhoto, &result, &task.CreatedAt, &task.CompletedAt)
	if err != nil {
		return nil, err
	}

	task.SkillsRequired = arrayx.Decode(skills.String)

	if len(result) > 0 {
		vr := &models.ValidationResult{}
		if err := json.Unmarshal(result, vr); err != nil {
			return nil, fmt.Errorf("decode validation result: %w", err)
		}
		task.ValidationResult = vr
	}

	return task, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `INSERT INTO tasks (id, title, description, duration, credits_offered, task_type,
		skills_required, location, created_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Duration, task.CreditsOffered, task.TaskType,
		arrayx.Encode(task.SkillsRequired), task.Location, task.CreatedBy, task.Status))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// List returns tasks matching the filter, newest first. Status is always
// applied; location matches as a case-insensitive substring.
func (r *PostgresRepository) List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error) {
	where := []string{"status = $1"}
	args := []any{filter.Status}

	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		where = append(where, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filter.TaskType != "" {
		args = append(args, filter.TaskType)
		where = append(where, fmt.Sprintf("task_type = $%d", len(args)))
	}

	args = append(args, filter.Limit)
	query := fmt.Sprintf(`SELECT `+taskColumns+` FROM tasks WHERE %s ORDER BY created_at DESC LIMIT $%d`,
		strings.Join(where, " AND "), len(args))

	return r.queryTasks(ctx, query, args...)
}

// ListByParticipant returns every task the user created or was assigned,
// newest first.
func (r *PostgresRepository) ListByParticipant(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE created_by = $1 OR assigned_to = $1
		ORDER BY created_at DESC`

	return r.queryTasks(ctx, query, userID)
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update applies only the fields present in upd and returns the updated row.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd *models.TaskUpdate) (*models.Task, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.AssignedTo != nil {
		add("assigned_to", *upd.AssignedTo)
	}
	if upd.BeforePhoto != nil {
		add("before_photo", *upd.BeforePhoto)
	}
	if upd.AfterPhoto != nil {
		add("after_photo", *upd.AfterPhoto)
	}

	if len(set) == 0 {
		return nil, common.ErrorNoFields
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d RETURNING `+taskColumns,
		strings.Join(set, ", "), len(args))

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Claim assigns an open task to userID. The status predicate is part of the
// UPDATE itself so two concurrent claims cannot both succeed: the loser
// matches zero rows and gets ErrorNotAvailable.
func (r *PostgresRepository) Claim(ctx context.Context, id string, userID string) (*models.Task, error) {
	query := `UPDATE tasks SET assigned_to = $1, status = 'assigned'
		WHERE id = $2 AND status = 'open'
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotAvailable
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Finalize records the validation outcome together with the resulting
// status and optional completion time, returning the updated row.
func (r *PostgresRepository) Finalize(ctx context.Context, id string, status string, result *models.ValidationResult, completedAt *time.Time) (*models.Task, error) {
	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode validation result: %w", err)
	}

	query := `UPDATE tasks SET status = $1, validation_result = $2, completed_at = $3
		WHERE id = $4
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query, status, encoded, completedAt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}
