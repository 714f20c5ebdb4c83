package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/marhaba-bot/marhaba/internal/bootstrap"
	"github.com/marhaba-bot/marhaba/internal/bus"
	"github.com/marhaba-bot/marhaba/internal/channels"
	"github.com/marhaba-bot/marhaba/internal/channels/discord"
	"github.com/marhaba-bot/marhaba/internal/config"
	"github.com/marhaba-bot/marhaba/internal/engine"
	"github.com/marhaba-bot/marhaba/internal/games"
	"github.com/marhaba-bot/marhaba/internal/responses"
	"github.com/marhaba-bot/marhaba/internal/store"
)

func runBot() {
	// Setup structured logging
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Load config
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Discord.Token == "" {
		slog.Error("no discord token configured; set discord.token in the config file or MARHABA_DISCORD_TOKEN")
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		slog.Error("failed to create data directory", "dir", cfg.DataDir(), "error", err)
		os.Exit(1)
	}

	if seeded, err := bootstrap.EnsureDataFiles(cfg.DataDir()); err != nil {
		slog.Warn("example document seeding failed", "error", err)
	} else if len(seeded) > 0 {
		slog.Info("seeded example documents", "dir", cfg.DataDir(), "files", seeded)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Core components
	msgBus := bus.New()
	channelStore := store.Open(cfg.ActiveChannelsPath(), cfg.ChannelSettingsPath())

	rnd := responses.StdRand()
	library := responses.NewLibrary(rnd)
	if path := cfg.ResponsesPath(); path != "" {
		if err := library.LoadOverrides(path); err != nil {
			slog.Warn("responses overrides not loaded, using built-in tables", "path", path, "error", err)
		}
		if err := library.Watch(ctx, path); err != nil {
			slog.Warn("responses watcher not started", "path", path, "error", err)
		}
	}

	gameManager := games.NewManager(library, rnd,
		func(channelID, content string) {
			msgBus.PublishOutbound(bus.OutboundMessage{
				Channel:   "discord",
				ChannelID: channelID,
				Content:   content,
			})
		},
		games.Config{
			GuessLow:      cfg.Games.GuessLow,
			GuessHigh:     cfg.Games.GuessHigh,
			GuessAttempts: cfg.Games.GuessAttempts,
			Timeout:       cfg.Games.Timeout(),
		})

	// Transport
	ch, err := discord.New(cfg.Discord, msgBus)
	if err != nil {
		slog.Error("failed to create discord channel", "error", err)
		os.Exit(1)
	}

	dispatcher := engine.New(msgBus, channelStore, library, gameManager, ch, rnd, cfg.Engine.CommandPrefix)
	go dispatcher.Run(ctx)
	go pumpOutbound(ctx, msgBus, ch)

	if err := ch.Start(ctx); err != nil {
		slog.Error("failed to start discord channel", "error", err)
		os.Exit(1)
	}

	slog.Info("marhaba started", "version", Version, "data_dir", cfg.DataDir())
	<-ctx.Done()

	slog.Info("shutting down")
	if err := ch.Stop(context.Background()); err != nil {
		slog.Warn("discord shutdown error", "error", err)
	}
}

// pumpOutbound delivers bus outbound messages to the transport until ctx
// is done. Send failures are logged and skipped; one bad message must not
// stall the queue.
func pumpOutbound(ctx context.Context, msgBus *bus.MessageBus, ch channels.Channel) {
	for {
		msg, ok := msgBus.ConsumeOutbound(ctx)
		if !ok {
			return
		}
		if err := ch.Send(ctx, msg); err != nil {
			slog.Warn("outbound send failed", "channel_id", msg.ChannelID, "error", err)
		}
	}
}
