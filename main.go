package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"journal_bot/config"
	"journal_bot/internal/commands"
	"journal_bot/internal/ledger"
	"journal_bot/internal/log"
	"journal_bot/internal/telegram"
	"journal_bot/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("🚀 starting trading journal bot")

	store, err := ledger.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open ledger", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close ledger", zap.Error(err))
		}
	}()
	logger.Info("✅ ledger initialized", zap.String("path", cfg.DBPath))

	handler := commands.NewHandler(store, logger)

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.PollTimeout, handler, logger)
	if err != nil {
		logger.Fatal("create telegram bot", zap.Error(err))
	}

	server := web.NewServer(cfg.Port, logger)
	server.Start()

	go bot.Start()

	logger.Info("✅ all systems initialized", zap.String("port", cfg.Port))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("🛑 shutting down")
	bot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("web server shutdown", zap.Error(err))
	}

	logger.Info("👋 goodbye")
}
