package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"moneypulse/internal/advisor"
	router "moneypulse/internal/api"
	"moneypulse/internal/api/handler"
	"moneypulse/internal/category"
	"moneypulse/internal/config"
	"moneypulse/internal/ledger"
	"moneypulse/internal/settings"
	"moneypulse/internal/transfer"
	"moneypulse/internal/util"
	"moneypulse/pkg/kvstore"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger

	KV      *kvstore.Postgres
	AsyncKV *kvstore.Async

	Ledger     *ledger.Store
	Categories *category.Registry
	Settings   *settings.Store
	Relayer    *transfer.Relayer
	Advisor    *advisor.Advisor

	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	kv, err := kvstore.NewPostgres(cfg.DB, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to persistence store: %w", err)
	}
	app.KV = kv

	// Mutators fire-and-forget their snapshots; a single background writer
	// keeps per-key ordering.
	app.AsyncKV = kvstore.NewAsync(kv, 64)
	app.AsyncKV.Start()
	app.Logger.Info("Persistence store ready.")

	app.Categories = category.NewRegistry(ctx, app.AsyncKV)
	app.Ledger = ledger.NewStore(ctx, app.AsyncKV, app.Logger)
	app.Settings = settings.NewStore(ctx, app.AsyncKV)
	app.Relayer = transfer.NewRelayer(cfg.RelayerLatency, app.Logger)

	// The advisor degrades to disabled when no API key is configured; the
	// rest of the application is unaffected.
	var chatModel advisor.ChatModel
	if gemini, err := advisor.NewGemini(ctx, cfg.AdvisorModel); err != nil {
		app.Logger.Warn("Financial advisor disabled", "error", err)
	} else {
		chatModel = gemini
	}
	app.Advisor = advisor.New(app.Ledger, app.Categories, chatModel, app.Logger)
	app.Logger.Info("Core components initialized.")

	h := handler.New(
		app.Ledger,
		app.Categories,
		app.Settings,
		app.Relayer,
		app.Advisor,
		cfg.TransferToken,
		cfg.TransferSuccessDelay,
		app.Logger,
	)
	app.HTTPHandler = router.NewRouter(h, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.AsyncKV != nil {
		app.AsyncKV.Shutdown()
	}
	if app.KV != nil {
		if err := app.KV.Close(); err != nil {
			app.Logger.Error("Failed to close persistence store", "error", err)
			return fmt.Errorf("failed to close persistence store: %w", err)
		}
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
