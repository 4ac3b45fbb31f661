package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/rubot/internal/chat"
	"github.com/xaenox/rubot/internal/currency"
	"github.com/xaenox/rubot/internal/responder"
	"github.com/xaenox/rubot/internal/storage"
	"github.com/xaenox/rubot/internal/ui"
	"github.com/xaenox/rubot/pkg/config"
)

func main() {
	// Initialize logger. Log to a file: stdout belongs to the TUI.
	logger, err := newLogger("rubot.log")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.New().String()))

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	backend, err := newBackend(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer backend.Close()

	// Quote source for the currency rule
	quotes := currency.NewService(cfg.Currency.APIURL, cfg.Currency.APIKey, logger)

	// Each login opens its own session over the shared backend
	factory := func(user string) (*chat.Session, error) {
		history := storage.NewHistory(user, backend, logger)
		return chat.NewSession(user, responder.New(user, quotes), history), nil
	}

	app := ui.NewApp(factory, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("Chat client error", zap.Error(err))
	}
}

func newLogger(path string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}
	return zapCfg.Build()
}

func newBackend(cfg *config.Config, logger *zap.Logger) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		logger.Info("Using PostgreSQL storage")
		return storage.NewPostgresBackend(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
	case "memory":
		logger.Info("Using in-memory storage")
		return storage.NewMemoryBackend(), nil
	default:
		logger.Info("Using file storage", zap.String("dir", cfg.Storage.Dir))
		return storage.NewFileBackend(cfg.Storage.Dir)
	}
}
