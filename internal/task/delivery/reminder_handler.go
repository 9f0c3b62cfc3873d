package delivery

import (
	"crypto/subtle"
	"net/http"
	"time"

	"taskflow-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// ReminderHandler serves the external automation polling contract: the
// workflow tool fetches due reminders, sends the notifications itself, and
// acknowledges the ones it handled.
type ReminderHandler struct {
	taskUsecase usecase.TaskUsecase
}

func NewReminderHandler(taskUsecase usecase.TaskUsecase) *ReminderHandler {
	return &ReminderHandler{taskUsecase: taskUsecase}
}

// AutomationAuth gates the polling endpoints behind a shared-secret bearer
// token. A missing or mismatched token is a hard rejection with no data in
// the response; an empty configured key disables the endpoints entirely.
func AutomationAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		expected := "Bearer " + apiKey
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(authHeader), []byte(expected)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetDueReminders returns unsent reminders that are due, joined with task
// and user info, oldest first
// GET /api/reminders
func (h *ReminderHandler) GetDueReminders(c *gin.Context) {
	reminders, err := h.taskUsecase.GetDueReminders(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// AckReminders marks a set of reminders as sent
// POST /api/reminders/ack
func (h *ReminderHandler) AckReminders(c *gin.Context) {
	var req struct {
		ReminderIDs []string `json:"reminder_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reminder_ids array required"})
		return
	}

	marked, err := h.taskUsecase.MarkRemindersSent(req.ReminderIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "marked_sent": marked})
}
