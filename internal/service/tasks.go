package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"event-planner/internal/models"
)

// TaskStore persists tasks.
type TaskStore interface {
	InsertTask(ctx context.Context, t *models.Task) error
	UpdateTask(ctx context.Context, t models.Task) error
	DeleteTask(ctx context.Context, id int64) error
	GetTask(ctx context.Context, id int64) (models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
}

type TaskService struct {
	store TaskStore
	log   zerolog.Logger
	mu    sync.Mutex
	live  *liveList[models.Task]
}

func NewTaskService(store TaskStore, log zerolog.Logger) *TaskService {
	log = log.With().Str("component", "tasks").Logger()
	return &TaskService{
		store: store,
		log:   log,
		live:  newLiveList(store.ListTasks, log),
	}
}

// AddTask stores a new, incomplete task. Title and description are required.
func (s *TaskService) AddTask(ctx context.Context, title, description string) (models.Task, error) {
	title, err := required("title", title)
	if err != nil {
		return models.Task{}, err
	}
	description, err = required("description", description)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := models.Task{Title: title, Description: description}
	if err := s.store.InsertTask(ctx, &t); err != nil {
		return models.Task{}, err
	}
	s.log.Debug().Int64("task_id", t.ID).Str("title", t.Title).Msg("Adding task")
	s.live.refresh(ctx)
	return t, nil
}

func (s *TaskService) ToggleCompletion(ctx context.Context, id int64, completed bool) (models.Task, error) {
	return s.modify(ctx, id, func(t *models.Task) { t.IsCompleted = completed })
}

func (s *TaskService) RenameTask(ctx context.Context, id int64, newTitle string) (models.Task, error) {
	newTitle, err := required("title", newTitle)
	if err != nil {
		return models.Task{}, err
	}
	return s.modify(ctx, id, func(t *models.Task) { t.Title = newTitle })
}

func (s *TaskService) modify(ctx context.Context, id int64, change func(*models.Task)) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	change(&t)
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return models.Task{}, err
	}
	s.log.Debug().Int64("task_id", t.ID).Bool("completed", t.IsCompleted).Msg("Task updated")
	s.live.refresh(ctx)
	return t, nil
}

// DeleteTask removes the task; deleting twice is harmless.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.Debug().Int64("task_id", id).Msg("Task deleted")
	s.live.refresh(ctx)
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (models.Task, error) {
	return s.store.GetTask(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

// Watch streams the task list after every committed change.
func (s *TaskService) Watch(ctx context.Context) (<-chan []models.Task, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.watch(ctx)
}
