// Package httpapi exposes the REST surface of the second brain: accounts,
// content, document chat, sharing, reminders and the bot-facing Telegram
// endpoints.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Shivakushwah143/SecondBrain/internal/ai"
	"github.com/Shivakushwah143/SecondBrain/internal/auth"
	"github.com/Shivakushwah143/SecondBrain/internal/config"
	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/notify"
	"github.com/Shivakushwah143/SecondBrain/internal/repository"
	"github.com/Shivakushwah143/SecondBrain/internal/scheduler"
	"github.com/Shivakushwah143/SecondBrain/internal/vector"
)

type Server struct {
	cfg *config.Config
	db  *database.DB
	loc *time.Location

	users     *repository.UserRepository
	contents  *repository.ContentRepository
	reminders *repository.ReminderRepository
	shares    *repository.ShareLinkRepository
	documents *repository.DocumentRepository

	sched   *scheduler.Scheduler
	ai      *ai.Client
	vectors *vector.Store
	channel notify.Channel
}

// NewServer wires the handlers. channel may be nil when Telegram is not
// configured; the affected endpoints degrade gracefully.
func NewServer(cfg *config.Config, db *database.DB, loc *time.Location, sched *scheduler.Scheduler,
	aiClient *ai.Client, vectors *vector.Store, channel notify.Channel) *Server {
	return &Server{
		cfg:       cfg,
		db:        db,
		loc:       loc,
		users:     repository.NewUserRepository(db),
		contents:  repository.NewContentRepository(db),
		reminders: repository.NewReminderRepository(db),
		shares:    repository.NewShareLinkRepository(db),
		documents: repository.NewDocumentRepository(db),
		sched:     sched,
		ai:        aiClient,
		vectors:   vectors,
		channel:   channel,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	api := r.Group("/api/v1")
	api.POST("/signup", s.signup)
	api.POST("/signin", s.signin)
	api.GET("/health", s.health)

	// Bot-facing endpoints authenticate via chat id or embedded token.
	api.POST("/telegram/link", s.telegramLink)
	api.POST("/telegram/content", s.telegramContent)
	api.POST("/telegram/content/list", s.telegramContentList)

	api.GET("/brain/:shareLink", s.viewSharedBrain)

	authed := api.Group("", auth.Middleware(s.cfg.JWTSecret))
	authed.GET("/me", s.me)
	authed.POST("/content", s.addContent)
	authed.GET("/content", s.listContent)
	authed.DELETE("/content", s.deleteContent)
	authed.POST("/pdf/upload", s.uploadPDF)
	authed.GET("/pdf/collections", s.listCollections)
	authed.POST("/pdf/chat", s.chatWithPDF)
	authed.POST("/ai/chat", s.chatWithAI)
	authed.POST("/brain/share", s.shareBrain)
	authed.POST("/reminders", s.createReminder)
	authed.GET("/reminders", s.listReminders)
	authed.DELETE("/reminders/:id", s.deleteReminder)
	authed.PUT("/reminders/:id/toggle", s.toggleReminder)

	return r
}

func (s *Server) health(c *gin.Context) {
	dbStatus := "connected"
	if err := s.db.Pool.Ping(c.Request.Context()); err != nil {
		dbStatus = "disconnected"
	}

	aiStatus := "not_configured"
	if s.ai.Configured() {
		aiStatus = "configured"
	}

	telegramStatus := "not_configured"
	if s.channel != nil {
		telegramStatus = "configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"postgres": dbStatus,
			"ai":       aiStatus,
			"telegram": telegramStatus,
		},
	})
}
