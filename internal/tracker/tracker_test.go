package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForDuration(t *testing.T) {
	tests := []struct {
		name          string
		seconds       float64
		hasUtterances bool
		want          Status
	}{
		{"long meeting", 700, true, StatusConducted},
		{"exactly ten minutes", 600, true, StatusConducted},
		{"just under ten minutes", 599.9, true, StatusNotConducted},
		{"short meeting", 300, true, StatusNotConducted},
		{"no utterances", 0, false, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForDuration(tt.seconds, tt.hasUtterances))
		})
	}
}

func TestNewRowFormatsDuration(t *testing.T) {
	row := NewRow("cal-1", "Weekly Sync", "tr-1", "doc-url", "src-url", 700, true)
	assert.Equal(t, "11.67", row.DurationMinutes)
	assert.Equal(t, StatusConducted, row.Status)
}

func TestRowCellsRoundTrip(t *testing.T) {
	row := NewRow("cal-1", "Weekly Sync", "tr-1", "doc-url", "src-url", 300, true)

	cells := row.Cells()
	require.Len(t, cells, 7)

	asStrings := make([]string, len(cells))
	for i, c := range cells {
		asStrings[i] = c.(string)
	}

	assert.Equal(t, row, ParseRow(asStrings))
}

func TestParseRowPadsShortRows(t *testing.T) {
	row := ParseRow([]string{"cal-1", "Title", "tr-1"})
	assert.Equal(t, "cal-1", row.CalendarID)
	assert.Equal(t, "tr-1", row.TranscriptID)
	assert.Empty(t, row.DocURL)
}

func TestParseRowsSkipsEmptyLines(t *testing.T) {
	rows := ParseRows([][]string{
		{"cal-1", "Title", "tr-1"},
		{},
		{"cal-2", "Other", "tr-2"},
	})
	assert.Len(t, rows, 2)
}

func TestUpsertAdds(t *testing.T) {
	table := NewTable(nil)

	result, _ := table.Upsert(NewRow("cal-1", "A", "tr-1", "", "", 700, true))
	assert.Equal(t, Added, result)
	assert.Equal(t, 1, table.Len())
	assert.Len(t, table.Added(), 1)
	assert.Empty(t, table.Updated())
}

func TestUpsertUnchanged(t *testing.T) {
	row := NewRow("cal-1", "A", "tr-1", "doc", "src", 700, true)
	table := NewTable([]Row{row})

	result, _ := table.Upsert(row)
	assert.Equal(t, Unchanged, result)
	assert.Empty(t, table.Added())
	assert.Empty(t, table.Updated())
}

func TestUpsertUpdatesPreexistingRow(t *testing.T) {
	existing := NewRow("cal-1", "A", "tr-1", "", "src", 700, true)
	table := NewTable([]Row{existing})

	changed := existing
	changed.DocURL = "https://docs.google.com/document/d/doc-1"

	result, prev := table.Upsert(changed)
	assert.Equal(t, Updated, result)
	assert.Equal(t, existing, prev)

	updates := table.Updated()
	require.Len(t, updates, 1)
	assert.Equal(t, 2, updates[0].SheetRow)
	assert.Equal(t, changed, updates[0].Row)
}

func TestUpsertDuplicateTranscriptIDLastWriteWins(t *testing.T) {
	table := NewTable(nil)

	first := NewRow("cal-1", "First", "tr-1", "", "", 700, true)
	second := NewRow("cal-2", "Second", "tr-1", "", "", 300, true)

	table.Upsert(first)
	result, prev := table.Upsert(second)

	assert.Equal(t, Updated, result)
	assert.Equal(t, "cal-1", prev.CalendarID)

	got, ok := table.Get("tr-1")
	require.True(t, ok)
	assert.Equal(t, "cal-2", got.CalendarID)
	assert.Equal(t, 1, table.Len())

	// The row was added this run, so it flushes as an append, not an update.
	assert.Len(t, table.Added(), 1)
	assert.Empty(t, table.Updated())
}

func TestUpsertIdempotentAcrossRuns(t *testing.T) {
	// First run adds rows; second run over the same data changes nothing.
	rows := []Row{
		NewRow("cal-1", "A", "tr-1", "doc-1", "src-1", 700, true),
		NewRow("cal-2", "B", "tr-2", "doc-2", "src-2", 300, true),
	}

	table := NewTable(rows)
	for _, r := range rows {
		result, _ := table.Upsert(r)
		assert.Equal(t, Unchanged, result)
	}

	assert.Equal(t, 2, table.Len())
	assert.Empty(t, table.Added())
	assert.Empty(t, table.Updated())
}
