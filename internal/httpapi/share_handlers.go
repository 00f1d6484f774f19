package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

func (s *Server) shareBrain(c *gin.Context) {
	var input struct {
		Share *bool `json:"share"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Share == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Share boolean required"})
		return
	}

	ctx := c.Request.Context()
	userID := c.GetString("userID")

	if !*input.Share {
		if err := s.shares.Deactivate(ctx, userID); err != nil {
			log.Printf("Share deactivate error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Share link deactivated"})
		return
	}

	link, err := s.shares.GetActiveByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		raw := make([]byte, 8)
		rand.Read(raw)
		link = &models.ShareLink{
			ShareID: uuid.New().String(),
			UserID:  userID,
			Hash:    hex.EncodeToString(raw),
			Active:  true,
		}
		err = s.shares.Create(ctx, link)
	}
	if err != nil {
		log.Printf("Share error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hash": link.Hash,
		"url":  "/api/v1/brain/" + link.Hash,
	})
}

func (s *Server) viewSharedBrain(c *gin.Context) {
	ctx := c.Request.Context()

	link, err := s.shares.GetActiveByHash(ctx, c.Param("shareLink"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Link not found or inactive"})
		return
	}

	user, err := s.users.GetByID(ctx, link.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Link not found or inactive"})
		return
	}

	contents, err := s.contents.GetByUserID(ctx, user.UserID, 0)
	if err != nil {
		log.Printf("Shared brain content error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	collections, err := s.documents.GetByUserID(ctx, user.UserID)
	if err != nil {
		log.Printf("Shared brain collections error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if contents == nil {
		contents = []*models.Content{}
	}
	if collections == nil {
		collections = []*models.Document{}
	}

	c.JSON(http.StatusOK, gin.H{
		"username":       user.Username,
		"content":        contents,
		"pdfCollections": collections,
		"sharedAt":       link.CreatedAt,
	})
}
