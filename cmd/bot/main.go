// Package main contains the entrypoint for the coaching bot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/dualcoach/internal/bot"
	"github.com/edgard/dualcoach/internal/bot/handlers"
	"github.com/edgard/dualcoach/internal/bot/tasks"
	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/database"
	"github.com/edgard/dualcoach/internal/gemini"
	"github.com/edgard/dualcoach/internal/generator"
	"github.com/edgard/dualcoach/internal/logger"
	"github.com/edgard/dualcoach/internal/onboarding"
	"github.com/edgard/dualcoach/internal/openai"
	"github.com/edgard/dualcoach/internal/session"
	"github.com/edgard/dualcoach/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components and returns the
// process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "", "Path to configuration file (default: ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)
	if err := store.Ping(ctx); err != nil {
		log.Error("Database is not reachable", "error", err)
		return 1
	}

	gen, err := newGenerator(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize AI client", "provider", cfg.AI.Provider, "error", err)
		return 1
	}

	keyboards := telegram.NewKeyboards(cfg.Labels)
	dispatcher := &deferredDispatcher{}
	queue := handlers.NewUserQueue(dispatcher, log)
	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Dispatcher: queue,
		Parser:     keyboards,
	}

	// Handlers run on the polling goroutine so the queue sees updates in
	// arrival order; the queue then fans out per user.
	botOpts := []tgbot.Option{
		tgbot.WithNotAsyncHandlers(),
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.DefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	orchestrator := session.New(session.Deps{
		Store:      store,
		Generator:  gen,
		Channel:    telegram.NewChannel(tg, keyboards, cfg.Telegram, log),
		Onboarding: onboarding.New(store, &cfg.Messages, cfg.Onboarding, log),
		Config:     cfg,
		Logger:     log,
	})
	dispatcher.target = orchestrator

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommands(ctx, tg, handlers.BotCommands()); err != nil {
		log.Warn("Failed to publish command menu", "error", err)
	}

	tDeps := tasks.TaskDeps{
		Logger:   log,
		Store:    store,
		Sessions: orchestrator,
		Config:   cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, tg, sched)

	log.Info("Starting bot...", "provider", cfg.AI.Provider)
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")
	queue.Wait()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}

func newGenerator(ctx context.Context, cfg *config.Config, log *slog.Logger) (generator.Generator, error) {
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		return gemini.NewClient(ctx, cfg.Gemini, log)
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAI, log)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

// deferredDispatcher forwards to the orchestrator, which can only be built
// once the Telegram client it sends through exists. Updates arrive only after
// the client is started, by which time target is set.
type deferredDispatcher struct {
	target handlers.Dispatcher
}

func (d *deferredDispatcher) Handle(ctx context.Context, in chat.Inbound) error {
	return d.target.Handle(ctx, in)
}
