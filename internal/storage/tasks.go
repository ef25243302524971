package storage

import (
	"context"
	"fmt"

	"event-planner/internal/models"
)

const taskColumns = `id, title, description, is_completed`

// InsertTask stores t and assigns its ID.
func (s *Storage) InsertTask(ctx context.Context, t *models.Task) error {
	id, err := s.insert(ctx,
		`INSERT INTO tasks (title, description, is_completed) VALUES (?, ?, ?)`,
		t.Title, t.Description, t.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	t.ID = id
	return nil
}

// UpdateTask replaces every field of the task with t.ID.
func (s *Storage) UpdateTask(ctx context.Context, t models.Task) error {
	return s.update(ctx, "task", t.ID,
		`UPDATE tasks SET title = ?, description = ?, is_completed = ? WHERE id = ?`,
		t.Title, t.Description, t.IsCompleted, t.ID,
	)
}

// DeleteTask removes the task with id, if any.
func (s *Storage) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "tasks", id)
}

// GetTask returns the task with id.
func (s *Storage) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted)
	if err != nil {
		return models.Task{}, notFound(err, "task", id)
	}
	return t, nil
}

// ListTasks returns all tasks ordered by id.
func (s *Storage) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
