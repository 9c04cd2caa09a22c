package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-task-manager/internal/models"
)

// ErrTaskNotFound はタスクが見つからない場合のエラーです。
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository はタスクのデータベース操作を行います。
type TaskRepository struct {
	DB *gorm.DB
}

// NewTaskRepository は新しいTaskRepositoryインスタンスを作成します。
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: tx}
}

// Create は新しいタスクを挿入します。IDと作成日時が t にセットされます。
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	if err := r.DB.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("could not insert task: %w", err)
	}
	return nil
}

// FindByID は指定されたIDのタスクを取得します。
func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	err := r.DB.WithContext(ctx).First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}
	return &t, nil
}

// FindByUserID はユーザーが所有するタスクをID順に取得します。
func (r *TaskRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	return tasks, nil
}

// UpdateCompleted はタスクの完了状態を更新します。
func (r *TaskRepository) UpdateCompleted(ctx context.Context, id uint, completed bool) error {
	res := r.DB.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Update("completed", completed)
	if res.Error != nil {
		return fmt.Errorf("could not update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQLは値が変わらない行を数えないので存在を確認する
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete は指定されたIDのタスクを削除します。
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("could not delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
