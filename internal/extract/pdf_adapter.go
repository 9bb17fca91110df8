package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// PDFAdapter extracts text from PDF files with a pure Go reader, so no
// external binaries are needed. Page texts are joined with a single space,
// matching how downstream keyword matching expects line-wrapped values to
// flow together.
type PDFAdapter struct {
	logger *slog.Logger
}

func NewPDFAdapter(logger *slog.Logger) *PDFAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFAdapter{logger: logger}
}

func (a *PDFAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()

	f, r, err := pdf.Open(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			a.logger.Warn("pdf.close.failed", "path", path, "error", err)
		}
	}()

	pages := r.NumPage()
	var b strings.Builder
	var warnings []string
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(txt)
	}

	res := TextExtractionResult{
		Text:     b.String(),
		Pages:    pages,
		Duration: time.Since(start),
		Warnings: warnings,
	}
	a.logger.Debug("pdf text extracted", "path", path, "pages", pages, "chars", len(res.Text))
	return res, nil
}
