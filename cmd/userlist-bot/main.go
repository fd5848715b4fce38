package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/glebk/userlist-bot/internal/bot"
	"github.com/glebk/userlist-bot/internal/config"
	"github.com/glebk/userlist-bot/internal/remote"
	"github.com/glebk/userlist-bot/internal/repository/sqlite"
	"github.com/glebk/userlist-bot/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize database
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database initialized at: %s", cfg.DatabasePath)

	cache := sqlite.NewCacheRepository(db)
	client := remote.New(cfg.API.BaseURL, cfg.API.Timeout)

	// Initialize services
	list := service.NewUserList(cache, client, cfg.API.PageSize)
	mutations := service.NewMutations(cache, client, list)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The bot retries on /list if the first load fails
	if err := list.Initialize(ctx); err != nil {
		log.Printf("Initial load failed: %v", err)
	} else {
		log.Printf("Loaded %d of %d users from %s", list.Len(), list.Total(), cfg.API.BaseURL)
	}

	// Initialize bot
	telegramBot, err := bot.New(cfg.TelegramToken, list, mutations)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v", err)
	}

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil {
		log.Printf("Bot stopped with error: %v", err)
	}

	log.Println("Shutting down gracefully...")
}
