package api

import (
	"net/http"

	"taskflow-backend/internal/auth/delivery"
	authUsecase "taskflow-backend/internal/auth/usecase"
	taskDelivery "taskflow-backend/internal/task/delivery"
	"taskflow-backend/pkg/config"
	"taskflow-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, sseManager *sse.Manager, cfg *config.Config, taskHandler *taskDelivery.TaskHandler, reminderHandler *taskDelivery.ReminderHandler) {
	authHandler := delivery.NewAuthHandler(authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// SSE endpoint
		api.GET("/events", delivery.AuthMiddleware(authUsecase), func(c *gin.Context) {
			userID := c.GetString("userID")
			sseManager.ServeHTTP(c, userID)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(authUsecase))
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.POST("/:id/subtasks", taskHandler.AddSubtask)
			tasks.PATCH("/:id/subtasks/:subtaskId", taskHandler.UpdateSubtask)
			tasks.DELETE("/:id/subtasks/:subtaskId", taskHandler.DeleteSubtask)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(delivery.AuthMiddleware(authUsecase))
		{
			categories.GET("", taskHandler.GetCategories)
			categories.POST("", taskHandler.CreateCategory)
			categories.PUT("/:id", taskHandler.UpdateCategory)
			categories.DELETE("/:id", taskHandler.DeleteCategory)
		}

		// Derived views and persisted view state (protected)
		api.GET("/stats", delivery.AuthMiddleware(authUsecase), taskHandler.GetStats)
		preferences := api.Group("/preferences")
		preferences.Use(delivery.AuthMiddleware(authUsecase))
		{
			preferences.GET("", taskHandler.GetPreferences)
			preferences.PUT("", taskHandler.SavePreferences)
		}

		// Automation polling routes, gated by the shared-secret token
		reminders := api.Group("/reminders")
		reminders.Use(taskDelivery.AutomationAuth(cfg.AutomationAPIKey))
		{
			reminders.GET("", reminderHandler.GetDueReminders)
			reminders.POST("/ack", reminderHandler.AckReminders)
		}
	}
}
