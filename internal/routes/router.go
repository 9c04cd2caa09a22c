// Package routesはroutingを行います。
package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-task-manager/internal/config"
	"go-task-manager/internal/handlers"
	"go-task-manager/internal/repositories"
	"go-task-manager/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *gorm.DB, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), Recovery(logger))

	// CORS対策
	corsConfig := cors.DefaultConfig()
	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	r.Use(cors.New(corsConfig))

	// リポジトリ
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// サービス
	userService := services.NewUserService(db, userRepo, services.NewPasswordHasher(cfg.BcryptCost), logger)
	taskService := services.NewTaskService(db, taskRepo)
	jwtService := services.NewJWTService(cfg.JWTSecretKey, cfg.JWTAccessTokenTTL)

	// ハンドラー
	userHandler := handlers.NewUserHandler(userService, jwtService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)
	healthHandler := handlers.NewHealthHandler(db, logger)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	// ルーティング
	r.GET("/hello", healthHandler.HelloHandler)
	r.GET("/dbcheck", healthHandler.DBCheckHandler)

	auth := r.Group("/auth")
	{
		auth.POST("/register", userHandler.RegisterHandler)
		auth.POST("/login", userHandler.LoginHandler)
	}

	tasks := r.Group("/tasks")
	tasks.Use(AuthMiddleware(jwtService))
	{
		tasks.POST("", taskHandler.CreateTaskHandler)
		tasks.GET("", taskHandler.GetTasksHandler)
		tasks.PUT("/:id", taskHandler.UpdateTaskHandler)
		tasks.DELETE("/:id", taskHandler.DeleteTaskHandler)
	}

	return r
}
