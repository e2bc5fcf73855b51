package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"daytrack/internal/config"
	"daytrack/internal/feedback"
	"daytrack/internal/fsutil"
	"daytrack/internal/notify"
	"daytrack/internal/reports"
	"daytrack/internal/scheduler"
	"daytrack/internal/storage"
	"daytrack/internal/tracker"
	"daytrack/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "daytrack: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.yaml (default: XDG config dir)")
	flag.Parse()

	// .env is optional; it typically carries GEMINI_API_KEY.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := fsutil.EnsureDir(cfg.DataDir); err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info().Str("data_dir", cfg.DataDir).Msg("starting daytrack")

	repo, closeRepo := openRepository(cfg, logger)
	defer closeRepo()

	tr := tracker.New(repo, tracker.WithLogger(logger))
	if err := tr.Load(context.Background()); err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	engine, err := scheduler.NewEngine(cfg.Notifications.ReminderTimes, scheduler.WithLogger(logger))
	if err != nil {
		return err
	}
	engine.Start()
	defer engine.Stop()

	notifier := notify.Disabled()
	if cfg.Notifications.Enabled {
		notifier = notify.New()
	}

	feedbackGen, err := buildFeedback(cfg, tr, logger)
	if err != nil {
		return err
	}

	model := update.NewModel(update.Deps{
		Tracker:   tr,
		Scheduler: engine,
		Notifier:  notifier,
		Feedback:  feedbackGen,
		Logger:    logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info().Msg("shutting down")
	return nil
}

func openLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05", NoColor: true,
	}).Level(level).With().Timestamp().Logger()

	return logger, func() { _ = logFile.Close() }, nil
}

// openRepository prefers sqlite and falls back to the in-memory repository
// so the UI still starts when the database cannot open.
func openRepository(cfg *config.Config, logger zerolog.Logger) (storage.Repository, func()) {
	repo, err := storage.OpenSQLite(cfg.DatabasePath())
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.DatabasePath()).
			Msg("sqlite unavailable, state will not persist")
		return storage.NewMemoryRepository(), func() {}
	}
	return repo, func() { _ = repo.Close() }
}

func buildFeedback(cfg *config.Config, tr *tracker.Tracker, logger zerolog.Logger) (*feedback.Generator, error) {
	cache, err := feedback.OpenCache(cfg.FeedbackCachePath())
	if err != nil {
		return nil, err
	}
	opts := []feedback.GeminiOption{
		feedback.WithTimeout(time.Duration(cfg.Feedback.TimeoutSeconds) * time.Second),
	}
	if cfg.Feedback.Endpoint != "" {
		opts = append(opts, feedback.WithBaseURL(cfg.Feedback.Endpoint))
	}
	llm := feedback.NewGeminiClient(cfg.APIKey(), cfg.Feedback.Model, opts...)
	return feedback.NewGenerator(cache, llm, reports.NewGenerator(tr), logger), nil
}
