package tracker

// UpsertResult reports what an Upsert did.
type UpsertResult int

const (
	Unchanged UpsertResult = iota
	Added
	Updated
)

// Update pairs a changed row with its 1-based sheet row number.
type Update struct {
	Row      Row
	SheetRow int
}

// firstDataRow is the sheet row of the first data entry (row 1 is the header).
const firstDataRow = 2

type entry struct {
	row     Row
	added   bool
	updated bool
}

// Table is the in-memory view of the tracking sheet for one run. Rows are
// keyed by transcript id; the set of rows stays in bijection with the set of
// processed transcript ids (no duplicates, no orphans). Rows are never
// deleted.
type Table struct {
	entries      []entry
	byTranscript map[string]int
	preexisting  int
}

// NewTable builds a table from the rows read out of the tracking sheet.
// When the sheet already contains duplicate transcript ids, the later row
// wins, mirroring the upsert policy.
func NewTable(rows []Row) *Table {
	t := &Table{byTranscript: make(map[string]int, len(rows))}
	for _, r := range rows {
		if i, ok := t.byTranscript[r.TranscriptID]; ok {
			t.entries[i].row = r
			continue
		}
		t.byTranscript[r.TranscriptID] = len(t.entries)
		t.entries = append(t.entries, entry{row: r})
	}
	t.preexisting = len(t.entries)
	return t
}

// Len returns the number of rows in the table.
func (t *Table) Len() int { return len(t.entries) }

// Get returns the row for a transcript id.
func (t *Table) Get(transcriptID string) (Row, bool) {
	i, ok := t.byTranscript[transcriptID]
	if !ok {
		return Row{}, false
	}
	return t.entries[i].row, true
}

// Rows returns every row in sheet order.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.entries))
	for i, e := range t.entries {
		rows[i] = e.row
	}
	return rows
}

// Upsert inserts or replaces the row for its transcript id and returns what
// happened plus the previous row when one existed. Two source records sharing
// a transcript id resolve last-write-wins; the caller decides whether that is
// worth a warning.
func (t *Table) Upsert(r Row) (UpsertResult, Row) {
	i, ok := t.byTranscript[r.TranscriptID]
	if !ok {
		t.byTranscript[r.TranscriptID] = len(t.entries)
		t.entries = append(t.entries, entry{row: r, added: true})
		return Added, Row{}
	}

	prev := t.entries[i].row
	if prev == r {
		return Unchanged, prev
	}

	t.entries[i].row = r
	if !t.entries[i].added {
		t.entries[i].updated = true
	}
	return Updated, prev
}

// Added returns the rows created during this run, in insertion order. They
// are appended to the sheet.
func (t *Table) Added() []Row {
	var rows []Row
	for _, e := range t.entries {
		if e.added {
			rows = append(rows, e.row)
		}
	}
	return rows
}

// Updated returns the preexisting rows modified during this run together
// with their sheet row numbers, for targeted range writes.
func (t *Table) Updated() []Update {
	var updates []Update
	for i, e := range t.entries {
		if e.updated && i < t.preexisting {
			updates = append(updates, Update{Row: e.row, SheetRow: firstDataRow + i})
		}
	}
	return updates
}
