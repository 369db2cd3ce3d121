package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"clario/backend/internal/api"
	"clario/backend/internal/avatar"
	"clario/backend/internal/config"
	"clario/backend/internal/database"
	"clario/backend/internal/llm"
	"clario/backend/internal/render"
	"clario/backend/internal/repository"
	"clario/backend/internal/service"
	"clario/backend/internal/session"
)

// App bundles the wired dependencies so tests can assert on them without
// starting the listener.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Server *http.Server
}

// New wires the application from configuration: storage, session manager,
// upstream clients, services, handlers, router.
func New(cfg *config.Config) (*App, error) {
	setupLogger(cfg.LogLevel)

	warnMissingCredentials(cfg)

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := repository.NewSQLiteRepository(db)
	sessions := session.NewManager(repo)

	provider := llm.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.SystemPrompt)
	chain := llm.NewChain(provider, cfg.ModelFallbacks)
	avatarClient := avatar.NewClient(cfg.DIDBaseURL, cfg.DIDAPIKey)
	renderer := render.NewCommandRenderer(cfg.RenderCommand, cfg.VideosDir)

	chatService := service.NewChatService(chain, sessions, cfg.GeminiAPIKey != "")
	videoService := service.NewVideoService(avatarClient, chain, renderer, cfg.DIDAPIKey)

	chatHandler := api.NewChatHandler(chatService)
	sessionHandler := api.NewSessionHandler(sessions)
	videoHandler := api.NewVideoHandler(videoService)
	router := api.NewRouter(chatHandler, sessionHandler, videoHandler, cfg.FrontendURL, cfg.VideosDir)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{Config: cfg, DB: db, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	app, err := New(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	logConfigSource()
	slog.Info("Starting server", "port", cfg.AppPort)

	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

// warnMissingCredentials degrades features instead of refusing to start: the
// affected endpoints surface per-request errors.
func warnMissingCredentials(cfg *config.Config) {
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not configured; the chat relay and motion-video extraction will return errors")
	}
	if cfg.DIDAPIKey == "" {
		slog.Warn("DID_API_KEY not configured; avatar video generation will not work")
	}
}

func logConfigSource() {
	if file := viper.ConfigFileUsed(); file != "" {
		slog.Info("Successfully loaded configuration from file.", "file", file)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
