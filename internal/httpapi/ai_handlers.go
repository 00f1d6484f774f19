package httpapi

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) chatWithAI(c *gin.Context) {
	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message required"})
		return
	}

	ctx := c.Request.Context()
	contents, err := s.contents.GetByUserID(ctx, c.GetString("userID"), 5)
	if err != nil {
		log.Printf("AI chat context error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	var recentItems []string
	for i, content := range contents {
		recentItems = append(recentItems, fmt.Sprintf("%d. %s (%s): %s", i+1, content.Title, content.Type, content.Link))
	}

	if !s.ai.Configured() {
		c.JSON(http.StatusOK, gin.H{
			"response":     "The AI assistant is not configured yet. Add an API key to enable chat.",
			"hasContext":   len(recentItems) > 0,
			"contextItems": len(recentItems),
		})
		return
	}

	response, err := s.ai.Chat(ctx, input.Message, recentItems)
	if err != nil {
		log.Printf("AI chat error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"response": "I'm having trouble connecting to the AI service right now. Please try again in a moment.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":     response,
		"hasContext":   len(recentItems) > 0,
		"contextItems": len(recentItems),
	})
}
