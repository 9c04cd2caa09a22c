package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-task-manager/internal/models"
	"go-task-manager/internal/repositories"
	"go-task-manager/internal/services"
)

// TaskHandler はタスク関連のハンドラーを管理します。
type TaskHandler struct {
	taskService *services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler は新しいTaskHandlerを作成します。
func NewTaskHandler(taskService *services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

// CreateTaskHandler は新しいタスクを作成します。
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req models.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		h.internalError(c, "failed to create task", err, "Internal error while creating task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": task})
}

// GetTasksHandler は呼び出し元ユーザーのタスク一覧を返します。
func (h *TaskHandler) GetTasksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, "failed to list tasks", err, "Internal error while fetching tasks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// UpdateTaskHandler はタスクの完了状態を更新します。
// ボディに completed が無い場合は完了状態を反転します。
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req models.TaskUpdateRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
	}

	task, err := h.taskService.UpdateTaskCompletion(c.Request.Context(), id, userID, req.Completed)
	if err != nil {
		if h.writeLookupError(c, err) {
			return
		}
		h.internalError(c, "failed to update task", err, "Internal error while updating task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": models.NewTaskSummary(task)})
}

// DeleteTaskHandler はタスクを削除します。
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id, userID); err != nil {
		if h.writeLookupError(c, err) {
			return
		}
		h.internalError(c, "failed to delete task", err, "Internal error while deleting task")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseTaskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

// writeLookupError は存在・所有者チェックのエラーをレスポンスに変換します。
func (h *TaskHandler) writeLookupError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, repositories.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, services.ErrTaskForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	default:
		return false
	}
	return true
}

func (h *TaskHandler) internalError(c *gin.Context, msg string, err error, public string) {
	h.logger.Error(msg, slog.String("request_id", RequestIDFrom(c)), slog.Any("error", err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": public})
}
