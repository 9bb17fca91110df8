package repository

import (
	"log/slog"
	"os"
	"strings"

	"github.com/clinikit/labreport-tracker/constants"
	"github.com/clinikit/labreport-tracker/internal/common"
)

// KeywordStore loads the ordered list of lab parameters to search for.
// The backing file holds one keyword per line and is seeded with a default
// set on first use. The running process never mutates the list; edits happen
// by changing the file between runs.
type KeywordStore struct {
	path   string
	logger *slog.Logger
}

func NewKeywordStore(path string, logger *slog.Logger) *KeywordStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeywordStore{path: path, logger: logger}
}

// Load returns the keyword list, creating the file with the default set when
// it does not exist yet. Blank lines are skipped.
func (s *KeywordStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.seed()
		}
		return nil, common.WrapError(err, "read keywords")
	}

	var keywords []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			keywords = append(keywords, line)
		}
	}
	return keywords, nil
}

func (s *KeywordStore) seed() ([]string, error) {
	defaults := append([]string(nil), constants.DefaultKeywords...)
	content := strings.Join(defaults, "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return nil, common.WrapError(err, "seed keywords")
	}
	s.logger.Info("keywords.seeded", "path", s.path, "count", len(defaults))
	return defaults, nil
}
