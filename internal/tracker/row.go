package tracker

import (
	"fmt"
)

// Status is the meeting-status recorded in the tracking sheet.
type Status string

const (
	StatusConducted    Status = "Conducted"
	StatusNotConducted Status = "Not Conducted"
	StatusUnknown      Status = "Unknown"
)

// conductedThresholdSeconds separates real meetings from no-shows and early
// drops. The duration is derived from utterance timestamps, so a meeting with
// under ten minutes of speech counts as not conducted.
const conductedThresholdSeconds = 600

// StatusForDuration applies the meeting-status heuristic.
func StatusForDuration(seconds float64, hasUtterances bool) Status {
	if !hasUtterances {
		return StatusUnknown
	}
	if seconds >= conductedThresholdSeconds {
		return StatusConducted
	}
	return StatusNotConducted
}

// Row is one tracking-table entry: the mapping from a transcript to its
// document plus the meeting-status heuristic result. Column order matches the
// tracking sheet: Calendar ID, Title, Transcript ID, Doc URL, Source URL,
// Duration, Meeting Status.
type Row struct {
	CalendarID      string
	Title           string
	TranscriptID    string
	DocURL          string
	SourceURL       string
	DurationMinutes string
	Status          Status
}

// NewRow builds a tracking row from transcript metadata. Duration is recorded
// in minutes with two decimals, as the sheet has always stored it.
func NewRow(calendarID, title, transcriptID, docURL, sourceURL string, durationSeconds float64, hasUtterances bool) Row {
	return Row{
		CalendarID:      calendarID,
		Title:           title,
		TranscriptID:    transcriptID,
		DocURL:          docURL,
		SourceURL:       sourceURL,
		DurationMinutes: fmt.Sprintf("%.2f", durationSeconds/60),
		Status:          StatusForDuration(durationSeconds, hasUtterances),
	}
}

// Cells returns the row in sheet column order.
func (r Row) Cells() []any {
	return []any{
		r.CalendarID,
		r.Title,
		r.TranscriptID,
		r.DocURL,
		r.SourceURL,
		r.DurationMinutes,
		string(r.Status),
	}
}

// ParseRow builds a Row from sheet cells; short rows are padded with empty
// strings because the Sheets API omits trailing empty cells.
func ParseRow(cells []string) Row {
	padded := make([]string, 7)
	copy(padded, cells)
	return Row{
		CalendarID:      padded[0],
		Title:           padded[1],
		TranscriptID:    padded[2],
		DocURL:          padded[3],
		SourceURL:       padded[4],
		DurationMinutes: padded[5],
		Status:          parseStatus(padded[6]),
	}
}

// ParseRows converts a sheet read into rows, skipping fully empty lines.
func ParseRows(cells [][]string) []Row {
	rows := make([]Row, 0, len(cells))
	for _, line := range cells {
		row := ParseRow(line)
		if row.TranscriptID == "" && row.CalendarID == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func parseStatus(s string) Status {
	switch Status(s) {
	case StatusConducted, StatusNotConducted, StatusUnknown:
		return Status(s)
	case "":
		return ""
	default:
		return StatusUnknown
	}
}
