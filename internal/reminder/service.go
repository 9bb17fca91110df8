// Package reminder persists reminders and pushes notifications for the ones
// coming due.
package reminder

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clinikit/labreport-tracker/constants"
	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/entity"
	"github.com/clinikit/labreport-tracker/internal/notify"
	"github.com/clinikit/labreport-tracker/internal/repository"
)

type Service struct {
	store    *repository.ReminderStore
	notifier notify.TextNotifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store *repository.ReminderStore, notifier notify.TextNotifier, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, notifier: notifier, logger: logger, now: time.Now}
}

// Save validates and appends the reminder, then announces it. A delivery
// failure is logged and does not undo the save.
func (s *Service) Save(r entity.Reminder) error {
	if strings.TrimSpace(r.Title) == "" {
		return common.NewAppError("REMINDER_INPUT", "title is required", common.ErrInvalidInput)
	}
	if _, err := time.Parse(constants.DateLayout, r.Date); err != nil {
		return common.NewAppError("REMINDER_INPUT", "date must be YYYY-MM-DD", common.ErrInvalidInput)
	}
	if err := s.store.Append(r); err != nil {
		return err
	}
	s.logger.Info("reminder.saved", "title", r.Title, "type", r.Type, "date", r.Date)

	msg := fmt.Sprintf("Reminder added\n\n• %s\n• %s\n• Date: %s", r.Title, r.Type, r.Date)
	if err := s.notifier.SendText(msg); err != nil {
		s.logger.Warn("reminder.notify.failed", "title", r.Title, "error", err)
	}
	return nil
}

// List returns all saved reminders.
func (s *Service) List() []entity.Reminder {
	return s.store.Load()
}

// CheckDue sends one notification for every reminder scheduled today or
// tomorrow and returns how many were sent. Reminders with unparseable dates
// are skipped with a warning.
func (s *Service) CheckDue() int {
	reminders := s.store.Load()
	if len(reminders) == 0 {
		s.logger.Info("reminder.check.empty")
		return 0
	}

	now := s.now()
	today := now.Format(constants.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(constants.DateLayout)

	sent := 0
	for _, r := range reminders {
		if _, err := time.Parse(constants.DateLayout, r.Date); err != nil {
			s.logger.Warn("reminder.invalid", "title", r.Title, "date", r.Date, "error", err)
			continue
		}

		var timing string
		switch r.Date {
		case today:
			timing = "Today"
		case tomorrow:
			timing = "Tomorrow"
		default:
			continue
		}

		msg := fmt.Sprintf("Reminder: your %s is scheduled.\n\n• Title: %s\n• Date: %s (%s)",
			strings.ToLower(r.Type), r.Title, r.Date, timing)
		if err := s.notifier.SendText(msg); err != nil {
			s.logger.Warn("reminder.notify.failed", "title", r.Title, "error", err)
			continue
		}
		s.logger.Info("reminder.sent", "title", r.Title, "timing", timing)
		sent++
	}
	if sent == 0 {
		s.logger.Info("reminder.check.none_due")
	}
	return sent
}
