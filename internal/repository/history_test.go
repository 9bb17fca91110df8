package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinikit/labreport-tracker/internal/common"
	"github.com/clinikit/labreport-tracker/internal/entity"
)

func tempHistory(t *testing.T) (*HistoryStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report_history.json")
	return NewHistoryStore(path, nil), path
}

func sampleEntry(ts, user string, results map[string]float64) entity.ReportEntry {
	return entity.ReportEntry{
		Timestamp:  ts,
		Filename:   "report.pdf",
		AssignedTo: user,
		ReportDate: "12/05/2024",
		Results:    results,
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	store, path := tempHistory(t)
	store.Load()

	entries := []entity.ReportEntry{
		sampleEntry("2024-01-01 10:00:00", "asha", map[string]float64{"Hemoglobin": 12.0}),
		sampleEntry("2024-01-02 11:30:00", "asha", map[string]float64{"Hemoglobin": 12.5, "Glucose": 101}),
		sampleEntry("2024-02-01 09:15:00", "ravi", map[string]float64{"Glucose": 95}),
	}
	for _, e := range entries {
		require.NoError(t, store.Append(e))
	}
	before := store.All()

	reloaded := NewHistoryStore(path, nil)
	after := reloaded.Load()

	require.Equal(t, before, after)
	assert.False(t, reloaded.Corrupt())
}

func TestHistoryMissingFile(t *testing.T) {
	store, _ := tempHistory(t)
	entries := store.Load()
	assert.Empty(t, entries)
	assert.False(t, store.Corrupt())
}

func TestHistoryEmptyFile(t *testing.T) {
	store, path := tempHistory(t)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	entries := store.Load()
	assert.Empty(t, entries)
	assert.False(t, store.Corrupt())
}

func TestHistoryCorruptFile(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		store, path := tempHistory(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		entries := store.Load()
		assert.Empty(t, entries)
		assert.True(t, store.Corrupt())
	})

	t.Run("schema violation", func(t *testing.T) {
		store, path := tempHistory(t)
		// results values must be numbers
		bad := `[{"timestamp":"2024-01-01 10:00:00","filename":"r.pdf","assigned_to":"asha","results":{"Hemoglobin":"high"}}]`
		require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

		entries := store.Load()
		assert.Empty(t, entries)
		assert.True(t, store.Corrupt())
	})

	t.Run("append after corrupt starts fresh", func(t *testing.T) {
		store, path := tempHistory(t)
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
		store.Load()
		require.True(t, store.Corrupt())

		e := sampleEntry("2024-03-01 08:00:00", "asha", map[string]float64{"Glucose": 99})
		require.NoError(t, store.Append(e))

		after := NewHistoryStore(path, nil).Load()
		require.Len(t, after, 1)
		assert.Equal(t, e, after[0])
	})
}

func TestHistoryEmptyResultsRoundTrip(t *testing.T) {
	// A report in which no keyword matched still appends and reloads intact.
	store, path := tempHistory(t)
	store.Load()

	e := sampleEntry("2024-01-05 12:00:00", "asha", map[string]float64{})
	require.NoError(t, store.Append(e))

	after := NewHistoryStore(path, nil).Load()
	require.Len(t, after, 1)
	assert.Equal(t, e, after[0])
	assert.NotNil(t, after[0].Results)
	assert.Empty(t, after[0].Results)
}

func TestHistoryByAssignee(t *testing.T) {
	store, path := tempHistory(t)
	// One entry has no results mapping at all; it is excluded from queries.
	content := `[
        {"timestamp":"2024-01-01 10:00:00","filename":"a.pdf","assigned_to":"asha","results":{"Hemoglobin":12}},
        {"timestamp":"2024-01-02 10:00:00","filename":"b.pdf","assigned_to":"ravi","results":{"Glucose":90}},
        {"timestamp":"2024-01-03 10:00:00","filename":"c.pdf","assigned_to":"asha"},
        {"timestamp":"2024-01-04 10:00:00","filename":"d.pdf","assigned_to":"asha","results":{}}
    ]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	store.Load()
	require.False(t, store.Corrupt())

	got := store.ByAssignee("asha")
	require.Len(t, got, 2)
	assert.Equal(t, "a.pdf", got[0].Filename)
	assert.Equal(t, "d.pdf", got[1].Filename)
}

func TestHistoryEntryIndex(t *testing.T) {
	store, _ := tempHistory(t)
	store.Load()
	require.NoError(t, store.Append(sampleEntry("2024-01-01 10:00:00", "asha", map[string]float64{})))

	e, err := store.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "asha", e.AssignedTo)

	_, err = store.Entry(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = store.Entry(-1)
	assert.Error(t, err)
}

func TestHistorySnapshotIsolated(t *testing.T) {
	store, _ := tempHistory(t)
	store.Load()
	require.NoError(t, store.Append(sampleEntry("2024-01-01 10:00:00", "asha", map[string]float64{"Glucose": 90})))

	out := store.All()
	out[0].AssignedTo = "mutated"

	again, err := store.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "asha", again.AssignedTo)
}
