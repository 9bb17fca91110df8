package repository

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/entity"
)

// ReminderStore persists reminders as a single JSON array with whole-file
// overwrite semantics, like the history store.
type ReminderStore struct {
	path   string
	logger *slog.Logger
}

func NewReminderStore(path string, logger *slog.Logger) *ReminderStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderStore{path: path, logger: logger}
}

// Load returns all saved reminders. A missing, empty, or corrupt file yields
// an empty list; corruption is logged, never returned as an error.
func (s *ReminderStore) Load() []entity.Reminder {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("reminders.read.failed", "path", s.path, "error", err)
		}
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := ValidateJSONAgainstSchema(remindersSchema(), data); err != nil {
		s.logger.Warn("reminders.corrupt", "path", s.path, "error", err)
		return nil
	}

	var reminders []entity.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		s.logger.Warn("reminders.corrupt", "path", s.path, "error", err)
		return nil
	}
	return reminders
}

// Append adds a reminder and rewrites the whole file.
func (s *ReminderStore) Append(r entity.Reminder) error {
	reminders := append(s.Load(), r)
	data, err := json.MarshalIndent(reminders, "", "    ")
	if err != nil {
		return common.WrapError(err, "marshal reminders")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return common.WrapError(err, "write reminders")
	}
	return nil
}
