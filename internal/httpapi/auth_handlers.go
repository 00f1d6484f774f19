package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Shivakushwah143/SecondBrain/internal/auth"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) signup(c *gin.Context) {
	var input credentialsInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}
	if len(input.Username) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username must be at least 3 characters"})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
		return
	}

	ctx := c.Request.Context()
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Username exists"})
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("Signup lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Printf("Signup hash error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Username:     input.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.Printf("Signup create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.UserID, user.Username)
	if err != nil {
		log.Printf("Signup token error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": user.UserID, "username": user.Username},
	})
}

func (s *Server) signin(c *gin.Context) {
	var input credentialsInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}

	user, err := s.users.GetByUsername(c.Request.Context(), input.Username)
	if err != nil || !auth.CheckPasswordHash(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.UserID, user.Username)
	if err != nil {
		log.Printf("Signin token error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.UserID, "username": user.Username},
	})
}

func (s *Server) me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := s.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":       user.Username,
		"userId":         user.UserID,
		"createdAt":      user.CreatedAt,
		"telegramLinked": user.HasLinkedTelegram(),
	})
}
