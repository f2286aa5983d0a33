package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nextlevelbuilder/jotbot/internal/bus"
	"github.com/nextlevelbuilder/jotbot/internal/channels/telegram"
	"github.com/nextlevelbuilder/jotbot/internal/commands"
	"github.com/nextlevelbuilder/jotbot/internal/config"
	"github.com/nextlevelbuilder/jotbot/internal/providers"
	"github.com/nextlevelbuilder/jotbot/internal/store/pg"
	"github.com/nextlevelbuilder/jotbot/internal/transcribe"
)

// runBot wires the store, provider, dispatcher, and Telegram channel
// together and blocks until interrupted.
func runBot(ctx context.Context) error {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	setupLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := pg.OpenDB(cfg.Database.PostgresDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := pg.Migrate(db); err != nil {
		return err
	}

	itemStore := pg.NewItemStore(db)
	provider := providers.NewOllamaProvider(providers.OllamaConfig{
		APIBase: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.Model,
	})
	if !provider.CheckConnection(ctx) {
		slog.Warn("ollama endpoint not reachable; inference commands will fail until it is up",
			"base_url", cfg.Ollama.BaseURL)
	}

	var transcriber transcribe.Transcriber
	if cfg.Whisper.URL != "" {
		transcriber = transcribe.NewWhisperClient(cfg.Whisper.URL)
	} else {
		slog.Info("whisper endpoint not configured; /summarize_meeting disabled")
	}

	mb := bus.New()
	dispatcher := commands.NewDispatcher(itemStore, provider, transcriber)

	channel, err := telegram.New(ctx, telegram.Config{Token: cfg.Telegram.Token}, mb)
	if err != nil {
		return err
	}
	if err := channel.SyncMenuCommands(ctx, telegram.DefaultMenuCommands()); err != nil {
		slog.Warn("failed to sync telegram menu commands", "error", err)
	}

	// Config hot-reload: log level changes apply live; credential or
	// endpoint changes need a restart.
	if watcher, werr := config.NewWatcher(cfgPath, cfg); werr == nil {
		watcher.OnChange(func(next *config.Config) {
			setupLogging(next.Log.Level)
		})
		if werr := watcher.Start(); werr != nil {
			slog.Debug("config watcher not started", "error", werr)
		} else {
			defer watcher.Stop()
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	// Poller: Telegram updates → inbound commands.
	g.Go(func() error {
		return channel.Start(ctx)
	})

	// Consumer: each inbound command is dispatched on its own goroutine
	// so one slow inference call never blocks other users.
	g.Go(func() error {
		for {
			cmd, ok := mb.ConsumeInbound(ctx)
			if !ok {
				return nil
			}
			go func() {
				reply := dispatcher.Dispatch(ctx, cmd)
				if !mb.PublishOutbound(ctx, bus.OutboundReply{ChatID: cmd.ChatID, Text: reply}) {
					slog.Debug("reply dropped during shutdown", "chat_id", cmd.ChatID)
				}
			}()
		}
	})

	// Sender: outbound replies → Telegram.
	g.Go(func() error {
		return channel.DeliverLoop(ctx)
	})

	slog.Info("jotbot running")
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("bot stopped: %w", err)
	}
	slog.Info("jotbot shut down")
	return nil
}
