package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/clinikit/labreport-tracker/constants"
	"github.com/clinikit/labreport-tracker/internal/aggregate"
	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/compare"
	"github.com/clinikit/labreport-tracker/internal/export"
	"github.com/clinikit/labreport-tracker/internal/extract"
	"github.com/clinikit/labreport-tracker/internal/pipeline"
	"github.com/clinikit/labreport-tracker/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		pdfPath    = flag.String("pdf", "", "PDF report to analyze and append to history (requires --user)")
		user       = flag.String("user", "", "subject the report or query applies to")
		compareIdx = flag.String("compare", "", "two history indexes to compare, e.g. 0,2")
		summary    = flag.Bool("summary", false, "print the monthly summary for --user")
		series     = flag.String("series", "", "print the time series of one parameter for --user")
		out        = flag.String("export", "", "write history + summary workbook for --user to this XLSX path")
		listAll    = flag.Bool("list", false, "list all history entries")
	)
	flag.Parse()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	keywords := repository.NewKeywordStore(cfg.Data.KeywordsPath, logger)
	history := repository.NewHistoryStore(cfg.Data.HistoryPath, logger)
	history.Load()
	if history.Corrupt() {
		printError("Warning: history file was unreadable and is treated as empty\n")
	}

	ctx := context.Background()

	switch {
	case *pdfPath != "":
		if *user == "" {
			printError("Error: --user is required with --pdf\n")
			os.Exit(1)
		}
		ext := constants.NormalizeExt(filepath.Ext(*pdfPath))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			printError("Error: unsupported file type %q\n", ext)
			os.Exit(1)
		}
		runAnalyze(ctx, *pdfPath, *user, keywords, history, logger)

	case *compareIdx != "":
		runCompare(*compareIdx, history)

	case *summary:
		if *user == "" {
			printError("Error: --user is required with --summary\n")
			os.Exit(1)
		}
		runSummary(*user, keywords, history)

	case *series != "":
		if *user == "" {
			printError("Error: --user is required with --series\n")
			os.Exit(1)
		}
		runSeries(*user, *series, history)

	case *out != "":
		if *user == "" {
			printError("Error: --user is required with --export\n")
			os.Exit(1)
		}
		runExport(*user, *out, keywords, history, logger)

	case *listAll:
		runList(history)

	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runAnalyze(ctx context.Context, path, user string, keywords *repository.KeywordStore, history *repository.HistoryStore, logger *slog.Logger) {
	proc := pipeline.NewProcessor(extract.NewPDFAdapter(logger), keywords, history, logger)
	res, err := proc.ProcessFile(ctx, path, user)
	if err != nil {
		printError("Error: processing failed: %v\n", err)
		os.Exit(1)
	}

	if len(res.Entry.Results) == 0 {
		fmt.Println("No values found.")
		return
	}
	fmt.Println("Extracted Health Parameters:")
	fmt.Println()
	params := make([]string, 0, len(res.Entry.Results))
	for p := range res.Entry.Results {
		params = append(params, p)
	}
	sort.Strings(params)
	for _, p := range params {
		fmt.Printf("• %s: %v\n", p, res.Entry.Results[p])
	}
}

func runCompare(spec string, history *repository.HistoryStore) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		printError("Error: --compare takes exactly two indexes, e.g. 0,2\n")
		os.Exit(1)
	}
	idx := make([]int, 2)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			printError("Error: invalid history index %q\n", p)
			os.Exit(1)
		}
		idx[i] = n
	}

	a, err := history.Entry(idx[0])
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	b, err := history.Entry(idx[1])
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	table, err := compare.Reports(a, b)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(table.Render())
}

func runSummary(user string, keywords *repository.KeywordStore, history *repository.HistoryStore) {
	kws, err := keywords.Load()
	if err != nil {
		printError("Error: loading keywords: %v\n", err)
		os.Exit(1)
	}
	entries := history.ByAssignee(user)
	if len(entries) == 0 {
		fmt.Println("No reports found.")
		return
	}

	summary := aggregate.MonthlySummary(entries, kws)
	fmt.Println("Monthly Summary:")
	fmt.Println()
	for _, month := range aggregate.SortedMonths(summary) {
		fmt.Printf("Month: %s\n", month)
		for _, kw := range kws {
			stats, ok := summary[month][kw]
			if !ok {
				continue
			}
			fmt.Printf("• %s: Avg = %.2f, Min = %v, Max = %v\n", kw, stats.Avg, stats.Min, stats.Max)
		}
		fmt.Println()
	}
}

func runSeries(user, keyword string, history *repository.HistoryStore) {
	entries := history.ByAssignee(user)
	points := aggregate.TimeSeries(entries, keyword)
	if len(points) == 0 {
		fmt.Printf("No values found for %s\n", keyword)
		return
	}
	for _, p := range points {
		fmt.Printf("%s\t%v\n", p.Timestamp.Format(constants.TimestampLayout), p.Value)
	}
}

func runExport(user, out string, keywords *repository.KeywordStore, history *repository.HistoryStore, logger *slog.Logger) {
	kws, err := keywords.Load()
	if err != nil {
		printError("Error: loading keywords: %v\n", err)
		os.Exit(1)
	}
	svc := export.NewService(history, logger)
	data, err := svc.HistoryXLSX(user, kws)
	if err != nil {
		printError("Error: export failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		printError("Error: writing %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("Exported %s\n", out)
}

func runList(history *repository.HistoryStore) {
	entries := history.All()
	if len(entries) == 0 {
		fmt.Println("History is empty.")
		return
	}
	for i, e := range entries {
		fmt.Printf("%3d  %s  %-30s  %-12s  %d values\n", i, e.Timestamp, e.Filename, e.AssignedTo, len(e.Results))
	}
}
