package main

import (
	"log"

	api "taskflow-backend/cmd/api"
	authdomain "taskflow-backend/internal/auth/domain"
	authRepo "taskflow-backend/internal/auth/repository"
	authUsecase "taskflow-backend/internal/auth/usecase"
	taskdomain "taskflow-backend/internal/task/domain"
	taskRepo "taskflow-backend/internal/task/repository"
	taskUsecase "taskflow-backend/internal/task/usecase"
	"taskflow-backend/pkg/config"
	"taskflow-backend/pkg/database"
	"taskflow-backend/pkg/sse"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&taskdomain.Category{},
		&taskdomain.Task{},
		&taskdomain.Subtask{},
		&taskdomain.Reminder{},
		&taskdomain.Preference{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	categoryRepository := taskRepo.NewGormCategoryRepository(db)
	reminderRepository := taskRepo.NewGormReminderRepository(db)
	preferenceRepository := taskRepo.NewGormPreferenceRepository(db)

	// Initialize SSE Manager
	sseManager := sse.NewManager()
	go sseManager.Run()

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository, categoryRepository, reminderRepository, preferenceRepository, sseManager)

	// New accounts start with the default category set
	authUsecaseInstance.SetOnUserCreated(taskUsecaseInstance.SeedDefaultCategories)

	if cfg.AutomationAPIKey == "" {
		log.Println("[WARN] AUTOMATION_API_KEY not set, reminder polling endpoints disabled")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, taskUsecaseInstance, sseManager, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
