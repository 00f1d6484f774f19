package httpapi

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shivakushwah143/SecondBrain/internal/auth"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

func (s *Server) telegramLink(c *gin.Context) {
	var input struct {
		TelegramChatID   string `json:"telegramChatId"`
		TelegramUsername string `json:"telegramUsername"`
		Token            string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.TelegramChatID == "" || input.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Telegram chat ID and token are required"})
		return
	}

	claims, err := auth.VerifyToken(s.cfg.JWTSecret, input.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	if err := s.users.LinkTelegram(ctx, user.UserID, input.TelegramChatID, input.TelegramUsername); err != nil {
		log.Printf("Telegram link error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to link Telegram account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Telegram account linked successfully",
		"username":       user.Username,
		"telegramChatId": input.TelegramChatID,
	})
}

func (s *Server) telegramContent(c *gin.Context) {
	var input struct {
		TelegramChatID string   `json:"telegramChatId"`
		Link           string   `json:"link"`
		Type           string   `json:"type"`
		Title          string   `json:"title"`
		Tags           []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil ||
		input.TelegramChatID == "" || input.Link == "" || input.Type == "" || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required: chat ID, link, type, and title"})
		return
	}
	if input.Type != models.ContentTypeYouTube && input.Type != models.ContentTypeTwitter {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Type must be youtube or twitter"})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.GetByTelegramChatID(ctx, input.TelegramChatID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Please link your account first. Use /link command."})
		return
	}

	tags := append([]string{"telegram", input.Type}, input.Tags...)
	content := &models.Content{
		ContentID: uuid.New().String(),
		UserID:    user.UserID,
		Title:     input.Title,
		Link:      input.Link,
		Type:      input.Type,
		Tags:      tags,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		log.Printf("Telegram content error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save content"})
		return
	}

	// Confirmation back to the chat is best effort.
	if s.channel != nil {
		text := fmt.Sprintf("Content Saved Successfully!\n\nTitle: %s\nType: %s\nURL: %s\n\n✅ Added to your second brain!",
			input.Title, input.Type, input.Link)
		if err := s.channel.Send(input.TelegramChatID, text); err != nil {
			log.Printf("Failed to send Telegram confirmation: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content saved successfully",
		"content": content,
	})
}

func (s *Server) telegramContentList(c *gin.Context) {
	var input struct {
		TelegramChatID string `json:"telegramChatId"`
		Limit          int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.TelegramChatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Telegram chat ID is required"})
		return
	}
	if input.Limit <= 0 {
		input.Limit = 10
	}

	ctx := c.Request.Context()
	user, err := s.users.GetByTelegramChatID(ctx, input.TelegramChatID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Telegram account not linked"})
		return
	}

	contents, err := s.contents.GetByUserID(ctx, user.UserID, input.Limit)
	if err != nil {
		log.Printf("Telegram content list error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch content"})
		return
	}
	if contents == nil {
		contents = []*models.Content{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"content":  contents,
		"count":    len(contents),
		"username": user.Username,
	})
}
