package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/clinikit/labreport-tracker/constants"
	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/entity"
	"github.com/clinikit/labreport-tracker/internal/extract"
	"github.com/clinikit/labreport-tracker/internal/parser"
	"github.com/clinikit/labreport-tracker/internal/repository"
)

// Processor coordinates text extraction, value parsing, and the history
// append for one source document.
type Processor struct {
	Extractor extract.TextExtractor
	Keywords  *repository.KeywordStore
	History   *repository.HistoryStore
	Logger    *slog.Logger

	now func() time.Time
}

// Result summarizes one processed document. JobID only identifies the run in
// logs; entry identity on disk stays timestamp-based.
type Result struct {
	JobID    uuid.UUID
	Entry    entity.ReportEntry
	Matches  []parser.Match
	Pages    int
	Warnings []string
}

func NewProcessor(ex extract.TextExtractor, kw *repository.KeywordStore, hist *repository.HistoryStore, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Extractor: ex, Keywords: kw, History: hist, Logger: logger, now: time.Now}
}

// ProcessFile extracts values from the document at path and appends the
// resulting entry to history for the given assignee. A document in which no
// keyword matches still produces an entry, with an empty results mapping.
func (p *Processor) ProcessFile(ctx context.Context, path, assignee string) (*Result, error) {
	jobID := uuid.New()
	start := time.Now()

	res, err := p.Extractor.Extract(ctx, path)
	if err != nil {
		p.Logger.Error("processor.extract.failed", "job_id", jobID, "path", path, "err", err)
		return nil, common.WrapError(err, "extract text")
	}
	p.Logger.Info("processor.extract.ok",
		"job_id", jobID,
		"path", path,
		"pages", res.Pages,
		"chars", len(res.Text),
	)

	keywords, err := p.Keywords.Load()
	if err != nil {
		return nil, common.WrapError(err, "load keywords")
	}

	matches, reportDate := parser.ExtractMatches(res.Text, keywords)
	results := parser.Results(matches)
	if len(results) == 0 {
		p.Logger.Warn("processor.parse.empty", "job_id", jobID, "path", path)
	}

	entry := entity.ReportEntry{
		Timestamp:  p.now().Format(constants.TimestampLayout),
		Filename:   filepath.Base(path),
		AssignedTo: assignee,
		ReportDate: reportDate,
		Results:    results,
	}
	if err := p.History.Append(entry); err != nil {
		return nil, common.WrapError(err, "append history")
	}
	p.Logger.Info("processor.entry.saved",
		"job_id", jobID,
		"assigned_to", assignee,
		"values", len(results),
		"report_date", reportDate,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return &Result{
		JobID:    jobID,
		Entry:    entry,
		Matches:  matches,
		Pages:    res.Pages,
		Warnings: res.Warnings,
	}, nil
}
