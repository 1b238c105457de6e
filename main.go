package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/cliparse"
	"github.com/danielhkuo/raid-toto/db"
	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/notify"
	"github.com/danielhkuo/raid-toto/router"
	"github.com/danielhkuo/raid-toto/store"
)

func main() {
	var err error

	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	// Connect and create schema (tables)
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	cat := catalog.Default()
	repo := store.NewSQLStore(dbConn, cfg.DatabaseType)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.AnnouncementsEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			slog.Error("telegram setup failed, announcements disabled", "error", err)
		} else {
			notifier = tg
			slog.Info("Telegram announcements enabled", "chat_id", cfg.TelegramChatID)
		}
	}

	// Create router
	mux := router.NewRouter(repo, cat, notify.NewAnnouncer(notifier, cat), cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg cliparse.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
