package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

const taskColumns = `id, title, description, completed, created_at`

type taskRow struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Completed   bool      `db:"completed"`
	CreatedAt   time.Time `db:"created_at"`
}

func newTaskRow(t *domain.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

func (r taskRow) toDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
	}
}

// taskRepository implements domain.TaskRepository
type taskRepository struct {
	q sqlx.ExtContext
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var row taskRow
	query := r.q.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, lookupErr("task", id, err)
	}
	return row.toDomain(), nil
}

// List retrieves all tasks in creation order
func (r *taskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	var rows []taskRow
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, title`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query); err != nil {
		return nil, unavailable("failed to list tasks", err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (:id, :title, :description, :completed, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newTaskRow(task)); err != nil {
		return unavailable("failed to insert task", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = :title, description = :description, completed = :completed
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, newTaskRow(task))
	return expectOne("task", task.ID, res, err)
}

func (r *taskRepository) ToggleCompleted(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE tasks SET completed = NOT completed WHERE id = ?`), id)
	return expectOne("task", id, res, err)
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	return expectOne("task", id, res, err)
}
