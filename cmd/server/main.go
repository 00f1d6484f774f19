package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivakushwah143/SecondBrain/internal/ai"
	"github.com/Shivakushwah143/SecondBrain/internal/bot"
	"github.com/Shivakushwah143/SecondBrain/internal/config"
	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/httpapi"
	"github.com/Shivakushwah143/SecondBrain/internal/notify"
	"github.com/Shivakushwah143/SecondBrain/internal/repository"
	"github.com/Shivakushwah143/SecondBrain/internal/scheduler"
	"github.com/Shivakushwah143/SecondBrain/internal/vector"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate required config
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	loc, err := time.LoadLocation(cfg.ReminderTimezone)
	if err != nil {
		log.Fatalf("Invalid REMINDER_TIMEZONE %q: %v", cfg.ReminderTimezone, err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// AI client (optional)
	aiClient := ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	if aiClient.Configured() {
		log.Printf("AI client initialized (model: %s)", cfg.AIModel)
	} else {
		log.Println("AI client not configured, chat features disabled")
	}

	// Vector store for document retrieval
	vectors, err := vector.NewStore(ctx, db)
	if err != nil {
		log.Fatalf("Failed to load vector store: %v", err)
	}
	log.Printf("Vector store loaded (%d vectors)", vectors.Count())

	// Telegram bot and notification channel (optional)
	var channel notify.Channel
	var tgBot *bot.Bot
	if cfg.TelegramToken != "" {
		tgBot, err = bot.New(cfg.TelegramToken, cfg.JWTSecret, db)
		if err != nil {
			log.Fatalf("Failed to create Telegram bot: %v", err)
		}
		channel = notify.NewTelegram(tgBot.API())
	} else {
		log.Println("TELEGRAM_TOKEN not set, reminder delivery disabled")
	}

	// Scheduler: rebuild jobs for every active reminder
	reminderRepo := repository.NewReminderRepository(db)
	sched := scheduler.New(channel, reminderRepo, scheduler.NewClock(), loc, cfg.TelegramDefaultChatID)
	if err := sched.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore reminders: %v", err)
	}

	if tgBot != nil {
		go func() {
			if err := tgBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Bot stopped: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.NewServer(cfg, db, loc, sched, aiClient, vectors, channel).Router(),
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server listening on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
