package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"telegram-relay-bot/internal/domain"
	applog "telegram-relay-bot/internal/log"
	"telegram-relay-bot/internal/pkg/config"
	"telegram-relay-bot/internal/relay"
	"telegram-relay-bot/internal/server"
	"telegram-relay-bot/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "relay bot failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Загрузка и проверка конфигурации
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Daemon.Enabled {
		parent, release, err := daemonize(cfg.Daemon)
		if err != nil {
			return err
		}
		if parent {
			return nil
		}
		defer release.Close()
	}

	// Логгер с маскировкой токена
	logger, logCloser, err := applog.New(cfg.Logging, cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := relay.NewStore(relay.WithTTL(cfg.Relay.MappingTTL))
	metrics := relay.NewMetrics(registry, store)
	reporter := relay.NewReporter(logger.With(slog.String("component", "reporter")), metrics)

	// Сбои long polling библиотека сообщает только через свой логгер.
	if err := tgbotapi.SetLogger(&applog.TGBotAPIAdapter{
		Logger:           logger.With(slog.String("component", "tgbotapi")),
		OnTransportError: reporter.ReportTransport,
	}); err != nil {
		return fmt.Errorf("failed to set bot api logger: %w", err)
	}

	// tgbotapi не принимает контекст, поэтому каждый запрос ограничен таймаутом HTTP-клиента.
	httpClient := &http.Client{Timeout: cfg.UpdateTimeout() + cfg.SendTimeout()}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Bot.Token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return fmt.Errorf("failed to create bot api: %w", err)
	}
	api.Debug = cfg.Bot.Debug
	logger.Info("Authorized on account", slog.String("username", api.Self.UserName))

	client := telegram.NewClient(api, telegram.WithLogger(logger.With(slog.String("component", "telegram"))))

	ownerName := cfg.Bot.OwnerName
	if ownerName == "" {
		ownerName = relay.DefaultOwnerName
	}
	router := relay.NewRouter(
		domain.Identity(cfg.Bot.OwnerID),
		store,
		client,
		client,
		reporter,
		relay.WithLogger(logger.With(slog.String("component", "relay"))),
		relay.WithTexts(relay.DefaultTexts(ownerName)),
		relay.WithMetrics(metrics),
		relay.WithRedactor(applog.NewMasker(cfg.Bot.Token).Mask),
	)
	dispatcher := relay.NewDispatcher(router, reporter, logger.With(slog.String("component", "dispatcher")))
	poller := telegram.NewPoller(api, dispatcher,
		telegram.WithUpdateTimeout(cfg.Bot.UpdateTimeoutSeconds),
		telegram.WithPollerLogger(logger.With(slog.String("component", "poller"))),
	)

	// Ожидание сигналов для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store.StartCleanupTicker(ctx, cfg.Relay.CleanupInterval)

	var srv *server.Server
	if cfg.Server.Enabled {
		srv = server.New(cfg, router, registry, logger.With(slog.String("component", "server")))
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server failed", slog.Any("error", err))
				stop()
			}
		}()
	}

	logger.Info("Relay bot started",
		slog.Int64("owner_id", cfg.Bot.OwnerID),
		slog.Bool("server_enabled", cfg.Server.Enabled),
		slog.Duration("mapping_ttl", cfg.Relay.MappingTTL),
	)

	poller.Run(ctx)

	logger.Info("Shutting down, waiting for in-flight events...")
	dispatcher.Wait()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", slog.Any("error", err))
		}
	}

	stats := router.Stats()
	logger.Info("Relay bot stopped gracefully",
		slog.Uint64("forwarded", stats.Forwarded),
		slog.Uint64("replied", stats.Replied),
		slog.Int("mappings", stats.Mappings),
	)
	return nil
}
