package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/clinikit/labreport-tracker/internal/entity"
	"github.com/clinikit/labreport-tracker/internal/repository"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	hist := repository.NewHistoryStore(filepath.Join(t.TempDir(), "report_history.json"), nil)
	hist.Load()

	entries := []entity.ReportEntry{
		{
			Timestamp:  "2024-05-12 10:00:00",
			Filename:   "may.pdf",
			AssignedTo: "alice",
			ReportDate: "12/05/2024",
			Results:    map[string]float64{"Hemoglobin": 12.5, "Glucose": 99},
		},
		{
			Timestamp:  "2024-05-20 10:00:00",
			Filename:   "may_followup.pdf",
			AssignedTo: "alice",
			ReportDate: "20/05/2024",
			Results:    map[string]float64{"Hemoglobin": 13.5},
		},
		{
			Timestamp:  "2024-06-01 10:00:00",
			Filename:   "june.pdf",
			AssignedTo: "bob",
			ReportDate: "01/06/2024",
			Results:    map[string]float64{"Hemoglobin": 11},
		},
	}
	for _, e := range entries {
		require.NoError(t, hist.Append(e))
	}
	return NewService(hist, nil)
}

func TestHistoryXLSX(t *testing.T) {
	svc := seededService(t)
	keywords := []string{"Hemoglobin", "Glucose"}

	data, err := svc.HistoryXLSX("alice", keywords)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	// Header row.
	assert.Equal(t, "Timestamp", cell("History", "A1"))
	assert.Equal(t, "Filename", cell("History", "B1"))
	assert.Equal(t, "Report Date", cell("History", "C1"))
	assert.Equal(t, "Hemoglobin", cell("History", "D1"))
	assert.Equal(t, "Glucose", cell("History", "E1"))

	// Alice's entries only, in history order.
	assert.Equal(t, "2024-05-12 10:00:00", cell("History", "A2"))
	assert.Equal(t, "may.pdf", cell("History", "B2"))
	assert.Equal(t, "12/05/2024", cell("History", "C2"))
	assert.Equal(t, "12.5", cell("History", "D2"))
	assert.Equal(t, "99", cell("History", "E2"))

	assert.Equal(t, "may_followup.pdf", cell("History", "B3"))
	assert.Equal(t, "13.5", cell("History", "D3"))
	// Glucose missing from the second entry leaves its cell blank.
	assert.Equal(t, "", cell("History", "E3"))

	// Bob's entry must not leak into Alice's export.
	assert.Equal(t, "", cell("History", "A4"))
}

func TestHistoryXLSXSummarySheet(t *testing.T) {
	svc := seededService(t)

	data, err := svc.HistoryXLSX("alice", []string{"Hemoglobin", "Glucose"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Monthly Summary", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Month", cell("A1"))
	assert.Equal(t, "Parameter", cell("B1"))
	assert.Equal(t, "Avg", cell("C1"))
	assert.Equal(t, "Min", cell("D1"))
	assert.Equal(t, "Max", cell("E1"))
	assert.Equal(t, "Count", cell("F1"))

	// Both of Alice's entries fall in 2024-05. Hemoglobin rows come before
	// Glucose because rows follow the keyword-list order.
	assert.Equal(t, "2024-05", cell("A2"))
	assert.Equal(t, "Hemoglobin", cell("B2"))
	assert.Equal(t, "13", cell("C2"))
	assert.Equal(t, "12.5", cell("D2"))
	assert.Equal(t, "13.5", cell("E2"))
	assert.Equal(t, "2", cell("F2"))

	assert.Equal(t, "Glucose", cell("B3"))
	assert.Equal(t, "99", cell("C3"))
	assert.Equal(t, "1", cell("F3"))
}

func TestHistoryXLSXNoEntries(t *testing.T) {
	svc := seededService(t)

	data, err := svc.HistoryXLSX("nobody", []string{"Hemoglobin"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("History", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Timestamp", v)

	v, err = f.GetCellValue("History", "A2")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
