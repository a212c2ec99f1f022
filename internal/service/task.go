package service

import (
	"context"
	"errors"
	"strings"

	"github.com/taskhub/taskhub-go/internal/model"
	"github.com/taskhub/taskhub-go/internal/repository"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidStatus       = errors.New("status must be 'pending' or 'completed'")
	ErrTaskNotFound        = errors.New("task not found")
)

// TaskService handles task business logic. The userID parameter on every
// method is the authenticated subject; it is the only source of ownership.
type TaskService struct {
	repo *repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// CreateTask creates a task owned by userID. Any owner information a
// caller might smuggle into the request never reaches this point; the
// request model has no owner field.
func (s *TaskService) CreateTask(ctx context.Context, userID string, req model.CreateTaskRequest) (model.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}
	if description == "" {
		return model.TaskResponse{}, ErrDescriptionRequired
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return model.TaskResponse{}, ErrInvalidStatus
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      status,
	}

	if err := s.repo.Create(ctx, userID, task); err != nil {
		return model.TaskResponse{}, err
	}

	return model.TaskToResponse(*task), nil
}

// ListTasks returns all tasks owned by userID, most recent first.
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]model.TaskResponse, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = model.TaskToResponse(t)
	}
	return result, nil
}

// UpdateTask applies a partial patch to a task owned by userID. A task
// owned by anyone else yields ErrTaskNotFound, the same as a missing ID.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, req model.UpdateTaskRequest) (model.TaskResponse, error) {
	task, err := s.repo.Get(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.TaskResponse{}, ErrTitleRequired
		}
		task.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return model.TaskResponse{}, ErrDescriptionRequired
		}
		task.Description = description
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return model.TaskResponse{}, ErrInvalidStatus
		}
		task.Status = *req.Status
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	return model.TaskToResponse(*task), nil
}

// DeleteTask removes a task owned by userID. Deleting a missing or
// foreign task yields ErrTaskNotFound on every call.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}
