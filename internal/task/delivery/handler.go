package delivery

import (
	"errors"
	"net/http"
	"time"

	"taskflow-backend/internal/task/domain"
	"taskflow-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title           string                 `json:"title" binding:"required"`
	Description     string                 `json:"description"`
	Priority        string                 `json:"priority"`
	Status          string                 `json:"status"`
	DueDate         *string                `json:"due_date"`
	CategoryID      string                 `json:"category_id"`
	Tags            []string               `json:"tags"`
	Subtasks        []usecase.SubtaskInput `json:"subtasks"`
	ReminderMinutes *int                   `json:"reminder_minutes"`
	Recurrence      string                 `json:"recurrence"`
}

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// PreferencesRequest represents the persisted view snapshot payload
type PreferencesRequest struct {
	ViewMode string             `json:"view_mode" binding:"required"`
	Filters  domain.TaskFilters `json:"filters"`
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyTitle), errors.Is(err, usecase.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrTaskNotFound),
		errors.Is(err, usecase.ErrSubtaskNotFound),
		errors.Is(err, usecase.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetTasks returns the authenticated user's tasks, filtered server-side with
// the same semantics the client store applies
// GET /api/tasks?status=todo&priority=high&category_id=...&search=...
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")

	tasks, err := h.taskUsecase.GetUserTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filters := domain.TaskFilters{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
		Tags:       c.QueryArray("tag"),
	}
	filtered := domain.FilterTasks(tasks, filters)

	c.JSON(http.StatusOK, gin.H{
		"tasks": filtered,
		"total": len(filtered),
	})
}

// GetTaskByID returns a specific task
// GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.taskUsecase.GetTaskByID(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateTask(userID, usecase.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		Status:          req.Status,
		DueDate:         req.DueDate,
		CategoryID:      req.CategoryID,
		Tags:            req.Tags,
		Subtasks:        req.Subtasks,
		ReminderMinutes: req.ReminderMinutes,
		Recurrence:      req.Recurrence,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask updates an existing task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var updates usecase.TaskUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(userID, taskID, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus changes only the status of a task
// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(userID, taskID, usecase.TaskUpdateRequest{Status: &req.Status})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task. Deleting an already-removed task succeeds:
// concurrent deletion from another session is an expected race.
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	err := h.taskUsecase.DeleteTask(userID, taskID)
	if err != nil && !errors.Is(err, usecase.ErrTaskNotFound) {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AddSubtask appends a checklist item
// POST /api/tasks/:id/subtasks
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req struct {
		Title     string `json:"title" binding:"required"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.AddSubtask(userID, taskID, req.Title, req.SortOrder)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateSubtask edits a checklist item
// PATCH /api/tasks/:id/subtasks/:subtaskId
func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")
	subtaskID := c.Param("subtaskId")

	var updates usecase.SubtaskUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateSubtask(userID, taskID, subtaskID, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteSubtask removes a checklist item
// DELETE /api/tasks/:id/subtasks/:subtaskId
func (h *TaskHandler) DeleteSubtask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")
	subtaskID := c.Param("subtaskId")

	task, err := h.taskUsecase.DeleteSubtask(userID, taskID, subtaskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetStats returns the counts snapshot for the user's tasks
// GET /api/stats
func (h *TaskHandler) GetStats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.taskUsecase.GetStats(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCategories returns the user's categories
// GET /api/categories
func (h *TaskHandler) GetCategories(c *gin.Context) {
	userID := c.GetString("userID")

	categories, err := h.taskUsecase.GetUserCategories(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a category
// POST /api/categories
func (h *TaskHandler) CreateCategory(c *gin.Context) {
	userID := c.GetString("userID")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.taskUsecase.CreateCategory(userID, req.Name, req.Color, req.Icon)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory edits a category
// PUT /api/categories/:id
func (h *TaskHandler) UpdateCategory(c *gin.Context) {
	userID := c.GetString("userID")
	categoryID := c.Param("id")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.taskUsecase.UpdateCategory(userID, categoryID, req.Name, req.Color, req.Icon)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category
// DELETE /api/categories/:id
func (h *TaskHandler) DeleteCategory(c *gin.Context) {
	userID := c.GetString("userID")
	categoryID := c.Param("id")

	if err := h.taskUsecase.DeleteCategory(userID, categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// GetPreferences returns the persisted view snapshot
// GET /api/preferences
func (h *TaskHandler) GetPreferences(c *gin.Context) {
	userID := c.GetString("userID")

	pref, err := h.taskUsecase.GetPreferences(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pref)
}

// SavePreferences upserts the persisted view snapshot
// PUT /api/preferences
func (h *TaskHandler) SavePreferences(c *gin.Context) {
	userID := c.GetString("userID")

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.taskUsecase.SavePreferences(userID, domain.ViewMode(req.ViewMode), req.Filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pref)
}
