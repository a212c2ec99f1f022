package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskhub/taskhub-go/internal/model"
)

// ErrTaskNotFound is returned when no task matches the compound
// (id, owner) predicate. A task owned by someone else is reported exactly
// like a task that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence. Every method requires the owner
// ID and builds it into the SQL predicate, so a query that ignores
// ownership cannot be expressed through this type.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{db: store.DB}
}

const taskColumns = `id, user_id, title, description, status, created_at, updated_at`

// Create inserts a new task owned by userID, assigning its ID and timestamps.
func (r *TaskRepository) Create(ctx context.Context, userID string, task *model.Task) error {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.UserID = userID
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Status,
		now.UnixNano(), now.UnixNano(),
	)
	return err
}

// Get retrieves a single task by ID, scoped to its owner.
func (r *TaskRepository) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`

	task := &model.Task{}
	var createdAt, updatedAt int64
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	task.CreatedAt = time.Unix(0, createdAt).UTC()
	task.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return task, nil
}

// ListByUser retrieves all tasks owned by userID, most recently created
// first. The id tiebreak keeps the order stable across calls when two
// tasks share a creation timestamp.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		t.CreatedAt = time.Unix(0, createdAt).UTC()
		t.UpdatedAt = time.Unix(0, updatedAt).UTC()
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Update writes the task's mutable fields under the compound (id, owner)
// predicate and refreshes updated_at. Zero rows affected means the task
// does not exist for this owner.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	task.UpdatedAt = time.Now().UTC()

	query := `UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.UpdatedAt.UnixNano(),
		task.ID, task.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task under the compound (id, owner) predicate.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
