package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/clinikit/labreport-tracker/internal/extract"
)

// extracttext dumps the raw text pulled out of a PDF, for checking what the
// value parser will actually see.
func main() {
	path := flag.String("pdf", "", "PDF file to extract text from (required)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "Error: --pdf is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	adapter := extract.NewPDFAdapter(logger)
	res, err := adapter.Extract(context.Background(), *path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: extraction failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Fprintf(os.Stderr, "pages=%d chars=%d elapsed=%s\n", res.Pages, len(res.Text), res.Duration)
	fmt.Println(res.Text)
}
