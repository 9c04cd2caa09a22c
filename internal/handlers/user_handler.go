package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-task-manager/internal/models"
	"go-task-manager/internal/repositories"
	"go-task-manager/internal/services"
)

// UserHandler は認証関連のハンドラーを管理します。
type UserHandler struct {
	userService *services.UserService
	jwtService  *services.JWTService
	logger      *slog.Logger
}

// NewUserHandler は新しいUserHandlerを作成します。
func NewUserHandler(userService *services.UserService, jwtService *services.JWTService, logger *slog.Logger) *UserHandler {
	return &UserHandler{userService: userService, jwtService: jwtService, logger: logger}
}

// RegisterHandler はユーザー登録を処理します。
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.UserCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required", "details": err.Error()})
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		case errors.Is(err, services.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at most 72 bytes"})
		default:
			h.logger.Error("failed to register user", slog.String("request_id", RequestIDFrom(c)), slog.Any("error", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error while registering user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    models.NewUserResponse(user),
	})
}

// LoginHandler はユーザーログインを処理し、アクセストークンを発行します。
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.UserCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required", "details": err.Error()})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logger.Error("failed to authenticate user", slog.String("request_id", RequestIDFrom(c)), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error while logging in"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.logger.Error("failed to generate token", slog.String("request_id", RequestIDFrom(c)), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error while logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "access_token": token})
}
