package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-task-manager/internal/models"
	"go-task-manager/internal/repositories"
)

// ErrTaskForbidden はタスクが呼び出し元ユーザーの所有ではないことを示します。
var ErrTaskForbidden = errors.New("task belongs to another user")

// TaskService はタスク関連のビジネスロジックを扱います。
type TaskService struct {
	db       *gorm.DB
	taskRepo *repositories.TaskRepository
}

// NewTaskService は新しいTaskServiceを作成します。
func NewTaskService(db *gorm.DB, taskRepo *repositories.TaskRepository) *TaskService {
	return &TaskService{db: db, taskRepo: taskRepo}
}

// CreateTask は userID が所有する新しいタスクを作成します。
func (s *TaskService) CreateTask(ctx context.Context, userID uint, req models.TaskCreateRequest) (*models.Task, error) {
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		UserID:      userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.taskRepo.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks はユーザーのタスクだけを返します。
func (s *TaskService) ListTasks(ctx context.Context, userID uint) ([]models.Task, error) {
	return s.taskRepo.FindByUserID(ctx, userID)
}

// UpdateTaskCompletion はタスクの完了状態を更新し、認可チェックを行います。
// completed が nil の場合は現在の状態を反転します。
func (s *TaskService) UpdateTaskCompletion(ctx context.Context, id, userID uint, completed *bool) (*models.Task, error) {
	var updated *models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := s.taskRepo.WithTx(tx)
		task, err := loadOwnedTask(ctx, tasks, id, userID)
		if err != nil {
			return err
		}

		if completed == nil {
			task.Completed = !task.Completed
		} else {
			task.Completed = *completed
		}
		if err := tasks.UpdateCompleted(ctx, task.ID, task.Completed); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask はタスクを削除し、認可チェックを行います。
func (s *TaskService) DeleteTask(ctx context.Context, id, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := s.taskRepo.WithTx(tx)
		if _, err := loadOwnedTask(ctx, tasks, id, userID); err != nil {
			return err
		}
		return tasks.Delete(ctx, id)
	})
}

// loadOwnedTask はタスクを取得し、存在しなければ ErrTaskNotFound、所有者でなければ ErrTaskForbidden を返します。
func loadOwnedTask(ctx context.Context, tasks *repositories.TaskRepository, id, userID uint) (*models.Task, error) {
	task, err := tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskForbidden
	}
	return task, nil
}
