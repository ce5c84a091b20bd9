// Package repository implements the record store against a local SQLite
// database, for running LabFlow without a remote backend.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swoodhull82/labflow/internal/db"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/store"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, start_date, end_date, milestone, progress,
		status, category, assignee, priority, created_at, updated_at`

// SQLiteTaskStore implements store.Store on a local SQLite database.
type SQLiteTaskStore struct {
	db *sql.DB
}

// NewSQLiteTaskStore creates a new SQLiteTaskStore.
func NewSQLiteTaskStore(database *sql.DB) *SQLiteTaskStore {
	return &SQLiteTaskStore{db: database}
}

var _ store.Store = (*SQLiteTaskStore)(nil)

func (r *SQLiteTaskStore) ListTasks(ctx context.Context, filter store.Filter) ([]domain.Task, error) {
	const op = "repository.list_tasks"

	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY start_date IS NULL, start_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewError(store.Classify(err), op, err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, store.NewError(store.KindUnknown, op, err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewError(store.Classify(err), op, err)
	}

	for i := range tasks {
		deps, err := listDependencies(ctx, r.db, tasks[i].ID)
		if err != nil {
			return nil, store.NewError(store.KindUnknown, op, err)
		}
		tasks[i].Dependencies = deps
	}
	return tasks, nil
}

func (r *SQLiteTaskStore) UpdateTask(ctx context.Context, id string, fields store.TaskFields) (*domain.Task, error) {
	const op = "repository.update_task"

	if fields.IsEmpty() {
		return nil, store.NewError(store.KindValidation, op, fmt.Errorf("empty update for task %s", id))
	}

	var updated *domain.Task
	err := db.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		sets := []string{"updated_at = ?"}
		args := []any{time.Now().UTC().Format(time.RFC3339)}
		if fields.Title != nil {
			sets = append(sets, "title = ?")
			args = append(args, *fields.Title)
		}
		if fields.Status != nil {
			sets = append(sets, "status = ?")
			args = append(args, string(*fields.Status))
		}
		if fields.Progress != nil {
			sets = append(sets, "progress = ?")
			args = append(args, domain.ClampProgress(*fields.Progress))
		}
		if fields.StartDate != nil {
			sets = append(sets, "start_date = ?")
			args = append(args, fields.StartDate.Format(dateLayout))
		}
		if fields.EndDate != nil {
			sets = append(sets, "end_date = ?")
			args = append(args, fields.EndDate.Format(dateLayout))
		}

		query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		args = append(args, id)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.NewError(store.KindNotFound, op, fmt.Errorf("task %s not found", id))
		}

		if fields.Dependencies != nil {
			if err := replaceDependencies(ctx, tx, id, *fields.Dependencies); err != nil {
				return err
			}
		}

		// Read the row back through the same transaction so the returned
		// task reflects this update even under concurrent writers.
		updated, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		if _, ok := err.(*store.Error); ok {
			return nil, err
		}
		return nil, store.NewError(store.Classify(err), op, err)
	}

	return updated, nil
}

func (r *SQLiteTaskStore) CreateTask(ctx context.Context, t *domain.Task) error {
	const op = "repository.create_task"

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}

	err := db.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `INSERT INTO tasks (` + taskColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.ExecContext(ctx, query,
			t.ID,
			t.Title,
			nullableTimeToString(t.StartDate, dateLayout),
			nullableTimeToString(t.EndDate, dateLayout),
			boolToInt(t.Milestone),
			domain.ClampProgress(t.Progress),
			string(t.Status),
			t.Category,
			t.Assignee,
			t.Priority,
			t.CreatedAt.Format(time.RFC3339),
			t.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
		return replaceDependencies(ctx, tx, t.ID, t.Dependencies)
	})
	if err != nil {
		return store.NewError(store.Classify(err), op, err)
	}
	return nil
}

// getTask loads a single task through conn, which may be the pool or an
// open transaction.
func getTask(ctx context.Context, conn db.DBTX, id string) (*domain.Task, error) {
	const op = "repository.get_task"

	row := conn.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, store.NewError(store.KindNotFound, op, fmt.Errorf("task %s not found", id))
	}
	if err != nil {
		return nil, store.NewError(store.Classify(err), op, err)
	}
	deps, err := listDependencies(ctx, conn, id)
	if err != nil {
		return nil, store.NewError(store.KindUnknown, op, err)
	}
	t.Dependencies = deps
	return t, nil
}

func listDependencies(ctx context.Context, conn db.DBTX, successorID string) ([]string, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT predecessor_id FROM task_dependencies WHERE successor_id = ? ORDER BY seq`,
		successorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deps = append(deps, id)
	}
	return deps, rows.Err()
}

// replaceDependencies rewrites the successor's dependency rows, preserving
// list order through the seq column.
func replaceDependencies(ctx context.Context, conn db.DBTX, successorID string, deps []string) error {
	if _, err := conn.ExecContext(ctx,
		`DELETE FROM task_dependencies WHERE successor_id = ?`, successorID); err != nil {
		return err
	}
	for i, predID := range deps {
		if _, err := conn.ExecContext(ctx,
			`INSERT INTO task_dependencies (successor_id, predecessor_id, seq) VALUES (?, ?, ?)`,
			successorID, predID, i); err != nil {
			return err
		}
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var startDate, endDate sql.NullString
	var milestone int
	var status, createdAt, updatedAt string

	err := s.Scan(
		&t.ID,
		&t.Title,
		&startDate,
		&endDate,
		&milestone,
		&t.Progress,
		&status,
		&t.Category,
		&t.Assignee,
		&t.Priority,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.StartDate = parseNullableTime(startDate, dateLayout)
	t.EndDate = parseNullableTime(endDate, dateLayout)
	t.Milestone = intToBool(milestone)
	t.Progress = domain.ClampProgress(t.Progress)
	t.Status = domain.NormalizeStatus(status)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = ts
	}
	return &t, nil
}
