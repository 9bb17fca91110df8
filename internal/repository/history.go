package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/entity"
)

// HistoryStore is the append-only collection of report entries, persisted as
// a single JSON array. Every mutation rewrites the whole file; entries are
// never edited or deleted in place. A single desktop user is assumed, so the
// store provides no locking and callers must serialize access.
type HistoryStore struct {
	path    string
	logger  *slog.Logger
	entries []entity.ReportEntry
	corrupt bool
}

func NewHistoryStore(path string, logger *slog.Logger) *HistoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryStore{path: path, logger: logger}
}

// Load reads the persisted history into memory and returns it in persisted
// order. A missing, empty, or unreadable file yields an empty history;
// corruption is logged and flagged, never returned as an error.
func (s *HistoryStore) Load() []entity.ReportEntry {
	s.entries = nil
	s.corrupt = false

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("history.read.failed", "path", s.path, "error", err)
			s.corrupt = true
		}
		return s.snapshot()
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s.snapshot()
	}
	if err := ValidateJSONAgainstSchema(historySchema(), data); err != nil {
		s.logger.Warn("history.corrupt", "path", s.path, "error", err)
		s.corrupt = true
		return s.snapshot()
	}

	var entries []entity.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("history.corrupt", "path", s.path, "error", err)
		s.corrupt = true
		return s.snapshot()
	}
	s.entries = entries
	return s.snapshot()
}

// Corrupt reports whether the last Load discarded unreadable content. The
// presentation layer should surface this as a warning, not a failure.
func (s *HistoryStore) Corrupt() bool {
	return s.corrupt
}

// Append adds the entry to the end of the in-memory sequence and immediately
// persists the entire sequence.
func (s *HistoryStore) Append(entry entity.ReportEntry) error {
	s.entries = append(s.entries, entry)
	return s.save()
}

// All returns the in-memory history in persisted order.
func (s *HistoryStore) All() []entity.ReportEntry {
	return s.snapshot()
}

// Len returns the number of entries currently loaded.
func (s *HistoryStore) Len() int {
	return len(s.entries)
}

// Entry returns the entry at index i. Index position is the only handle the
// comparison surface uses, so load order is kept stable.
func (s *HistoryStore) Entry(i int) (entity.ReportEntry, error) {
	if i < 0 || i >= len(s.entries) {
		return entity.ReportEntry{}, common.NewAppError("HISTORY_INDEX",
			fmt.Sprintf("no entry at index %d", i), common.ErrInvalidInput)
	}
	return s.entries[i], nil
}

// ByAssignee filters to one subject's entries, preserving their relative
// order. Entries that carry no results mapping at all are excluded.
func (s *HistoryStore) ByAssignee(who string) []entity.ReportEntry {
	var out []entity.ReportEntry
	for _, e := range s.entries {
		if e.AssignedTo == who && e.Results != nil {
			out = append(out, e)
		}
	}
	return out
}

func (s *HistoryStore) save() error {
	out := s.entries
	if out == nil {
		out = []entity.ReportEntry{}
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return common.WrapError(err, "marshal history")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return common.WrapError(err, "write history")
	}
	return nil
}

func (s *HistoryStore) snapshot() []entity.ReportEntry {
	out := make([]entity.ReportEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
