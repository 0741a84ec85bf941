package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/database"
	"github.com/taskdeck/core/internal/ports"
)

// TaskRepositoryImpl implements ports.TaskRepository on Postgres.
// Mutations run inside a single transaction: begin, mutate, read the
// result row, commit; any failure rolls the whole thing back.
type TaskRepositoryImpl struct {
	db  *database.DB
	now func() time.Time
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

const taskColumns = `id_task, id_account, id_user, title, description, due_date, priority, status, date_created, date_modified, deleted`

func (r *TaskRepositoryImpl) Insert(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (id_account, id_user, title, description, due_date, priority, status, date_created, date_modified, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, FALSE)
		RETURNING ` + taskColumns

	now := r.now()

	var created entities.Task
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query,
			task.AccountID, task.UserID, task.Title, task.Description,
			task.DueDate, task.Priority, entities.StatusPending, now,
		).StructScan(&created)
	})
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return &created, nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id_task = $1 AND id_account = $2 AND id_user = $3 AND NOT deleted`

	var task entities.Task
	err := r.db.DB.GetContext(ctx, &task, query, taskID, scope.AccountID, scope.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, scope entities.Principal, filter ports.TaskFilter) ([]*entities.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id_account = $1 AND id_user = $2 AND NOT deleted`

	args := []interface{}{scope.AccountID, scope.UserID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}

	// Ordering is a contract: most urgent first, soonest due date next,
	// newest creation as the final tie-break.
	query += ` ORDER BY priority DESC, due_date ASC NULLS LAST, date_created DESC`

	tasks := []*entities.Task{}
	err := r.db.DB.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, scope entities.Principal, task *entities.Task) (*entities.Task, error) {
	// Tenancy columns and date_created are deliberately absent from the
	// SET list; the scope only appears in the match condition.
	query := `
		UPDATE tasks
		SET title = $4, description = $5, due_date = $6, priority = $7, status = $8, date_modified = $9
		WHERE id_task = $1 AND id_account = $2 AND id_user = $3 AND NOT deleted
		RETURNING ` + taskColumns

	var updated entities.Task
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			task.ID, scope.AccountID, scope.UserID,
			task.Title, task.Description, task.DueDate, task.Priority, task.Status,
			r.now(),
		).StructScan(&updated)
		if err == sql.ErrNoRows {
			return entities.ErrTaskNotFound
		}
		return err
	})
	if err != nil {
		if err == entities.ErrTaskNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return &updated, nil
}

func (r *TaskRepositoryImpl) MarkDeleted(ctx context.Context, scope entities.Principal, taskID int64) error {
	query := `
		UPDATE tasks
		SET deleted = TRUE, date_modified = $4
		WHERE id_task = $1 AND id_account = $2 AND id_user = $3 AND NOT deleted`

	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, taskID, scope.AccountID, scope.UserID, r.now())
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}

		// The row is already invisible on a repeat delete.
		if rowsAffected == 0 {
			return entities.ErrTaskNotFound
		}

		return nil
	})

	return err
}
