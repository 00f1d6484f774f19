package httpapi

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type contentInput struct {
	Title string   `json:"title"`
	Link  string   `json:"link"`
	Type  string   `json:"type"`
	Tags  []string `json:"tags"`
}

func (s *Server) addContent(c *gin.Context) {
	var input contentInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" || input.Link == "" || input.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, link, and type required"})
		return
	}
	if !models.ValidContentType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Type must be youtube, twitter, or pdf"})
		return
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	content := &models.Content{
		ContentID: uuid.New().String(),
		UserID:    c.GetString("userID"),
		Title:     input.Title,
		Link:      input.Link,
		Type:      input.Type,
		Tags:      tags,
	}
	if err := s.contents.Create(c.Request.Context(), content); err != nil {
		log.Printf("Add content error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Content added",
		"content": content,
	})
}

func (s *Server) listContent(c *gin.Context) {
	contents, err := s.contents.GetByUserID(c.Request.Context(), c.GetString("userID"), 0)
	if err != nil {
		log.Printf("Get content error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if contents == nil {
		contents = []*models.Content{}
	}

	c.JSON(http.StatusOK, gin.H{
		"content": contents,
		"count":   len(contents),
	})
}

func (s *Server) deleteContent(c *gin.Context) {
	var input struct {
		ContentID string `json:"contentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ContentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content ID required"})
		return
	}

	deleted, err := s.contents.Delete(c.Request.Context(), input.ContentID, c.GetString("userID"))
	if err != nil {
		log.Printf("Delete content error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}
