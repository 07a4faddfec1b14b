package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"giveaway-bot/internal/config"
	"giveaway-bot/internal/http-server/handlers/giveaway"
	"giveaway-bot/internal/http-server/handlers/mysql"
	"giveaway-bot/internal/http-server/handlers/webhook"
	mwlogger "giveaway-bot/internal/http-server/middleware/logger"
	resp "giveaway-bot/internal/lib/api/response"
	"giveaway-bot/internal/lib/logger/handler/slogpretty"
	"giveaway-bot/internal/lib/logger/sl"
	"giveaway-bot/internal/lib/random"
	"giveaway-bot/internal/repository"
	"giveaway-bot/internal/telegram"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting giveaway bot...", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	if cfg.Telegram.BotToken == "" {
		log.Warn("bot token not configured, updates will be acked and ignored")
	}

	participants := setupParticipantStore(cfg, log)

	client := telegram.NewClient(log, cfg.Telegram.APIURL, cfg.Telegram.BotToken, cfg.Telegram.Timeout)

	flows := giveaway.New(
		log,
		client,
		participants,
		random.NewPercentSource(),
		config.PrizeTable.Prizes,
		cfg.Giveaway.RevealDelay)

	webhookHandler := webhook.New(log, flows, cfg.Telegram.BotToken != "")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.MethodNotAllowed(webhookHandler.MethodNotAllowed())

	router.Post("/webhook", webhookHandler.New())
	router.Options("/webhook", webhookHandler.Preflight())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, resp.OK())
	})

	log.Info("Server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("Server failed", sl.Err(err))
	}

	log.Error("Server stopped")
}

// setupParticipantStore wires the MySQL-backed store, degrading to the no-op
// store when the DSN is missing or the database is unreachable. A store outage
// must not take the conversation down with it.
func setupParticipantStore(cfg *config.Config, log *slog.Logger) giveaway.ParticipantStore {
	if cfg.Storage.DSN == "" {
		log.Warn("storage DSN not configured, participation checks disabled")

		return repository.NewNullParticipantRepository()
	}

	db, err := sql.Open("mysql", cfg.Storage.DSN)
	if err != nil {
		log.Error("failed to init storage, participation checks disabled", sl.Err(err))

		return repository.NewNullParticipantRepository()
	}

	if err = db.Ping(); err != nil {
		log.Error("storage unreachable, participation checks disabled", sl.Err(err))

		return repository.NewNullParticipantRepository()
	}

	if err = repository.RunMigrations(db); err != nil {
		log.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	handler := mysql.New(db)

	return repository.NewParticipantRepository(*handler)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlogLogger()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlogLogger() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
