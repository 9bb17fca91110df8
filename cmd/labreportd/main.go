package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/notify"
	"github.com/clinikit/labreport-tracker/internal/reminder"
	"github.com/clinikit/labreport-tracker/internal/repository"
)

// labreportd watches the reminder store and pushes a notification for every
// reminder due today or tomorrow, once per check interval.
func main() {
	cfg := common.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var notifier notify.TextNotifier = notify.Discard{}
	if cfg.NotifyConfigured() {
		notifier = notify.NewTelegram(cfg.Notify.TelegramBotToken, cfg.Notify.TelegramChatID, cfg.Notify.Timeout)
	} else {
		logger.Warn("telegram transport not configured, notifications are discarded")
	}

	store := repository.NewReminderStore(cfg.Data.RemindersPath, logger)
	svc := reminder.NewService(store, notifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("reminder watcher started", "interval", cfg.Reminder.CheckInterval.String(), "reminders", cfg.Data.RemindersPath)

	// Run once at startup, then on every tick.
	svc.CheckDue()

	ticker := time.NewTicker(cfg.Reminder.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sent := svc.CheckDue()
			logger.Info("reminder check completed", "sent", sent)
		case <-ctx.Done():
			logger.Info("shutting down...")
			fmt.Println("stopped.")
			return
		}
	}
}
