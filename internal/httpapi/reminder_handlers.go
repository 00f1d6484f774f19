package httpapi

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type reminderInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ReminderTime   string `json:"reminderTime"`
	Repeat         string `json:"repeat"`
	TelegramChatID string `json:"telegramChatId"`
}

func (s *Server) createReminder(c *gin.Context) {
	var input reminderInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" || input.ReminderTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and reminder time are required"})
		return
	}

	recurrence := models.Recurrence(input.Repeat)
	if input.Repeat == "" {
		recurrence = models.RecurrenceOnce
	}
	if !recurrence.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Repeat must be once, daily, weekly or monthly"})
		return
	}

	fireTime, err := s.parseReminderTime(input.ReminderTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reminder time format"})
		return
	}

	reminder := &models.Reminder{
		ReminderID:  uuid.New().String(),
		UserID:      c.GetString("userID"),
		Title:       input.Title,
		Description: input.Description,
		FireTime:    fireTime,
		Recurrence:  recurrence,
		Destination: input.TelegramChatID,
		Active:      true,
	}
	if err := s.reminders.Create(c.Request.Context(), reminder); err != nil {
		log.Printf("Create reminder error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create reminder"})
		return
	}

	// Past one-shot times are accepted and stored; Schedule drops them
	// silently and they simply never fire.
	s.sched.Schedule(reminder)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Reminder created successfully",
		"reminder": gin.H{
			"id":           reminder.ReminderID,
			"title":        reminder.Title,
			"reminderTime": reminder.FireTime.In(s.loc),
			"repeat":       reminder.Recurrence,
			"isActive":     reminder.Active,
		},
	})
}

func (s *Server) listReminders(c *gin.Context) {
	reminders, err := s.reminders.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		log.Printf("Get reminders error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get reminders"})
		return
	}

	active := []*models.Reminder{}
	past := []*models.Reminder{}
	for _, reminder := range reminders {
		if reminder.Active {
			active = append(active, reminder)
		} else {
			past = append(past, reminder)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"activeReminders": active,
		"pastReminders":   past,
		"total":           len(reminders),
		"activeCount":     len(active),
	})
}

func (s *Server) deleteReminder(c *gin.Context) {
	reminderID := c.Param("id")

	deleted, err := s.reminders.Delete(c.Request.Context(), reminderID, c.GetString("userID"))
	if err != nil {
		log.Printf("Delete reminder error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete reminder"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
		return
	}

	s.sched.Cancel(reminderID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reminder deleted successfully",
	})
}

func (s *Server) toggleReminder(c *gin.Context) {
	ctx := c.Request.Context()
	reminderID := c.Param("id")

	reminder, err := s.reminders.GetByID(ctx, reminderID, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
		return
	}

	reminder.Active = !reminder.Active
	if err := s.reminders.SetActive(ctx, reminderID, reminder.Active); err != nil {
		log.Printf("Toggle reminder error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to toggle reminder"})
		return
	}

	s.sched.Reschedule(reminder)

	message := "Reminder deactivated"
	if reminder.Active {
		message = "Reminder activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  message,
		"isActive": reminder.Active,
	})
}

// parseReminderTime reads the submitted time. A timestamp without a zone is
// interpreted as wall-clock time in the reference timezone, matching what
// users see in the reminder form; storage is always UTC.
func (s *Server) parseReminderTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, raw, s.loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}
