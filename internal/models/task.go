package models

import (
	"time"
)

// Task はユーザーが所有するタスクです。ユーザー削除時は一緒に削除されます。
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(120);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uint      `gorm:"not null;index" json:"-"` // 所有者
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TaskCreateRequest はタスク作成リクエストです。
type TaskCreateRequest struct {
	Title       string  `json:"title" binding:"required,max=120"`
	Description *string `json:"description"`
}

// TaskUpdateRequest はタスク更新リクエストです。
// Completed が nil の場合は完了状態を反転します。
type TaskUpdateRequest struct {
	Completed *bool `json:"completed"`
}

// TaskSummary は更新レスポンスで返す最小限のタスク情報です。
type TaskSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewTaskSummary は Task から更新レスポンス用の要約を作成します。
func NewTaskSummary(t *Task) TaskSummary {
	return TaskSummary{ID: t.ID, Title: t.Title, Completed: t.Completed}
}
