package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/clinikit/labreport-tracker/internal/aggregate"
	"github.com/clinikit/labreport-tracker/internal/entity"
	"github.com/clinikit/labreport-tracker/internal/repository"
)

// Service is a tiny façade over the history store that produces XLSX bytes
// for exports.
type Service struct {
	history *repository.HistoryStore
	logger  *slog.Logger
}

func NewService(history *repository.HistoryStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{history: history, logger: logger}
}

// HistoryXLSX returns an XLSX workbook (as bytes) for one subject: a History
// sheet with one row per report entry and a Monthly Summary sheet derived
// from the same entries via the aggregator.
func (s *Service) HistoryXLSX(assignee string, keywords []string) ([]byte, error) {
	start := time.Now()

	entries := s.history.ByAssignee(assignee)

	f := excelize.NewFile()
	const sheet = "History"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Timestamp", "Filename", "Report Date"}
	headers = append(headers, keywords...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, e.Timestamp)
		write(2, e.Filename)
		write(3, e.ReportDate)
		for i, kw := range keywords {
			if v, ok := e.Results[kw]; ok {
				write(4+i, v)
			}
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 32) // filename
	_ = f.SetColWidth(sheet, "C", "C", 14) // report date

	if err := s.writeSummarySheet(f, entries, keywords); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"assigned_to", assignee,
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeSummarySheet(f *excelize.File, entries []entity.ReportEntry, keywords []string) error {
	const sheet = "Monthly Summary"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	headers := []string{"Month", "Parameter", "Avg", "Min", "Max", "Count"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	summary := aggregate.MonthlySummary(entries, keywords)
	row := 2
	for _, month := range aggregate.SortedMonths(summary) {
		// Keep keyword-list order within each month for stable output.
		for _, kw := range keywords {
			stats, ok := summary[month][kw]
			if !ok {
				continue
			}
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			write(1, month)
			write(2, kw)
			write(3, stats.Avg)
			write(4, stats.Min)
			write(5, stats.Max)
			write(6, stats.Count)
			row++
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	return nil
}
