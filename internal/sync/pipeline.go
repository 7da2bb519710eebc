package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brandvmeet/transcriptsync/internal/config"
	"github.com/brandvmeet/transcriptsync/internal/docstore"
	"github.com/brandvmeet/transcriptsync/internal/fireflies"
	"github.com/brandvmeet/transcriptsync/internal/gemini"
	"github.com/brandvmeet/transcriptsync/internal/instrumentation"
	"github.com/brandvmeet/transcriptsync/internal/logging"
	"github.com/brandvmeet/transcriptsync/internal/sheets"
	"github.com/brandvmeet/transcriptsync/internal/tracker"
)

// TranscriptSource pages through the transcription service and returns the
// recent transcripts, newest first.
type TranscriptSource interface {
	FetchAll(ctx context.Context) ([]fireflies.Transcript, error)
}

// DocumentStore manages transcript documents and their deduplication tags.
type DocumentStore interface {
	RefreshIndex(ctx context.Context) error
	FindByTranscriptID(transcriptID string) (*docstore.DocumentRef, bool)
	CreateTranscriptDoc(ctx context.Context, name, body, transcriptID string) (*docstore.DocumentRef, error)
	PlainText(ctx context.Context, documentID string) (string, error)
	MarkAnalyzed(ctx context.Context, documentID string) error
	FindBrief(ctx context.Context, calendarID string) (string, error)
}

// SheetClient reads and writes spreadsheet ranges.
type SheetClient interface {
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	AppendRows(ctx context.Context, spreadsheetID, tableRange string, values [][]any) error
	BatchWrite(ctx context.Context, spreadsheetID string, writes []sheets.RangeValues) error
}

// Analyzer extracts structured metrics from a transcript.
type Analyzer interface {
	Analyze(ctx context.Context, promptTemplate, transcriptText, briefText string) (*gemini.AnalysisResult, error)
}

// Deps are the collaborators of one pipeline run.
type Deps struct {
	Source    TranscriptSource
	Store     DocumentStore
	Sheets    SheetClient
	Inference Analyzer
	Logger    *slog.Logger
	Metrics   *instrumentation.Metrics
}

// Report summarizes what one run did.
type Report struct {
	TranscriptsFetched int
	DocumentsCreated   int
	RowsAppended       int
	RowsUpdated        int
	AnalysesCompleted  int
	AnalysesSkipped    int
}

// Pipeline runs the reconciliation pass.
type Pipeline struct {
	deps Deps
	cfg  config.RunConfig
	log  *slog.Logger
}

// NewPipeline creates a pipeline over the given collaborators.
func NewPipeline(deps Deps, cfg config.RunConfig) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{deps: deps, cfg: cfg, log: logger}
}

// stagedResult pairs a tracking row with its analysis, ready to be written
// into the master sheet.
type stagedResult struct {
	row    tracker.Row
	result *gemini.AnalysisResult
}

// Run executes one reconciliation pass. Transport failures on the source,
// document store, or spreadsheets abort the run; a schema failure on a single
// analysis only skips that transcript. When the inference service becomes
// unavailable mid-phase, results staged so far are still flushed before the
// error is returned.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	var report Report

	start := time.Now()
	transcripts, err := p.deps.Source.FetchAll(ctx)
	p.deps.Metrics.RecordExternalCall(ctx, "fireflies", time.Since(start))
	if err != nil {
		return report, fmt.Errorf("fetch transcripts: %w", err)
	}
	report.TranscriptsFetched = len(transcripts)
	p.deps.Metrics.AddTranscriptsFetched(ctx, len(transcripts))
	p.log.Info("fetched transcripts", slog.Int("count", len(transcripts)))

	if err := p.deps.Store.RefreshIndex(ctx); err != nil {
		return report, fmt.Errorf("refresh document index: %w", err)
	}

	table, err := p.loadTrackingTable(ctx)
	if err != nil {
		return report, err
	}

	refs, err := p.materializeDocuments(ctx, transcripts, table, &report)
	if err != nil {
		return report, err
	}

	if err := p.updateTracking(ctx, transcripts, table, refs, &report); err != nil {
		return report, err
	}

	staged, analyzeErr := p.analyze(ctx, table, &report)
	if err := p.flushResults(ctx, staged, table); err != nil {
		return report, errors.Join(analyzeErr, err)
	}
	if analyzeErr != nil {
		return report, analyzeErr
	}

	return report, nil
}

// loadTrackingTable reads the tracking sheet into the in-memory table.
func (p *Pipeline) loadTrackingTable(ctx context.Context) (*tracker.Table, error) {
	cells, err := p.deps.Sheets.ReadRange(ctx, p.cfg.TrackingSheetID, p.cfg.TrackingTab+"!A2:G")
	if err != nil {
		return nil, fmt.Errorf("read tracking sheet: %w", err)
	}
	return tracker.NewTable(tracker.ParseRows(cells)), nil
}

// materializeDocuments ensures every fetched transcript has a document,
// creating one only when neither the folder index nor the tracking table
// knows it. Returns the transcript id to document mapping for this batch.
func (p *Pipeline) materializeDocuments(ctx context.Context, transcripts []fireflies.Transcript, table *tracker.Table, report *Report) (map[string]*docstore.DocumentRef, error) {
	refs := make(map[string]*docstore.DocumentRef, len(transcripts))
	for _, t := range transcripts {
		if ref, ok := p.deps.Store.FindByTranscriptID(t.ID); ok {
			refs[t.ID] = ref
			continue
		}
		if row, ok := table.Get(t.ID); ok && row.DocURL != "" {
			// Tracked with a document that is no longer in the transcript
			// folder; leave it alone rather than recreating it.
			p.log.Debug("tracked document missing from folder", logging.TranscriptID(t.ID))
			continue
		}

		ref, err := p.deps.Store.CreateTranscriptDoc(ctx, t.Title, t.FormattedText(), t.ID)
		if err != nil {
			return nil, fmt.Errorf("create document for transcript %s: %w", t.ID, err)
		}
		refs[t.ID] = ref
		report.DocumentsCreated++
		p.deps.Metrics.IncDocumentsCreated(ctx)
		p.log.Info("created transcript document",
			logging.TranscriptID(t.ID), logging.DocumentID(ref.ID))
	}
	return refs, nil
}

// updateTracking upserts one row per fetched transcript and flushes the
// additions and in-place updates to the tracking sheet.
func (p *Pipeline) updateTracking(ctx context.Context, transcripts []fireflies.Transcript, table *tracker.Table, refs map[string]*docstore.DocumentRef, report *Report) error {
	seen := make(map[string]bool, len(transcripts))
	for _, t := range transcripts {
		docURL := ""
		if ref, ok := refs[t.ID]; ok {
			docURL = ref.URL
		} else if row, ok := table.Get(t.ID); ok {
			docURL = row.DocURL
		}

		row := tracker.NewRow(t.CalendarID, t.Title, t.ID, docURL, t.DashboardURL(),
			t.DurationSeconds(), t.HasUtterances())
		_, prev := table.Upsert(row)
		if seen[t.ID] {
			p.log.Warn("duplicate transcript id in batch, keeping the later record",
				logging.TranscriptID(t.ID),
				slog.String("previous_title", prev.Title),
				slog.String("title", t.Title))
		}
		seen[t.ID] = true
	}

	return p.flushTracking(ctx, table, report)
}

// flushTracking appends rows added this run and batch-writes the preexisting
// rows that changed.
func (p *Pipeline) flushTracking(ctx context.Context, table *tracker.Table, report *Report) error {
	added := table.Added()
	if len(added) > 0 {
		values := make([][]any, len(added))
		for i, r := range added {
			values[i] = r.Cells()
		}
		if err := p.deps.Sheets.AppendRows(ctx, p.cfg.TrackingSheetID, p.cfg.TrackingTab+"!A:G", values); err != nil {
			return fmt.Errorf("append tracking rows: %w", err)
		}
		report.RowsAppended = len(added)
		p.deps.Metrics.AddTrackingRowsAppended(ctx, len(added))
	}

	updates := table.Updated()
	if len(updates) > 0 {
		writes := make([]sheets.RangeValues, len(updates))
		for i, u := range updates {
			writes[i] = sheets.RangeValues{
				Range:  fmt.Sprintf("%s!A%d:G%d", p.cfg.TrackingTab, u.SheetRow, u.SheetRow),
				Values: [][]any{u.Row.Cells()},
			}
		}
		if err := p.deps.Sheets.BatchWrite(ctx, p.cfg.TrackingSheetID, writes); err != nil {
			return fmt.Errorf("update tracking rows: %w", err)
		}
		report.RowsUpdated = len(updates)
		p.deps.Metrics.AddTrackingRowsUpdated(ctx, len(updates))
	}

	p.log.Info("tracking sheet reconciled",
		slog.Int("rows_appended", report.RowsAppended),
		slog.Int("rows_updated", report.RowsUpdated))
	return nil
}

// loadPrompt reads the analysis prompt template from the prompts sheet.
func (p *Pipeline) loadPrompt(ctx context.Context) (string, error) {
	rows, err := p.deps.Sheets.ReadRange(ctx, p.cfg.PromptSheetID, p.cfg.PromptRange)
	if err != nil {
		return "", fmt.Errorf("read prompt sheet: %w", err)
	}
	for _, row := range rows {
		if len(row) >= 2 && row[0] == p.cfg.PromptName {
			return row[1], nil
		}
	}
	return "", fmt.Errorf("prompt %q not found in %s", p.cfg.PromptName, p.cfg.PromptRange)
}

// analyze runs inference over the unanalyzed documents, newest rows first, up
// to the configured per-run limit. Schema failures skip the transcript and
// leave its document unmarked so a later run with a corrected template
// retries; an unavailable inference service stops the phase but whatever was
// staged is returned for flushing.
func (p *Pipeline) analyze(ctx context.Context, table *tracker.Table, report *Report) ([]stagedResult, error) {
	prompt, err := p.loadPrompt(ctx)
	if err != nil {
		return nil, err
	}

	var staged []stagedResult
	rows := table.Rows()
	attempts := 0
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if row.DocURL == "" {
			continue
		}
		ref, ok := p.deps.Store.FindByTranscriptID(row.TranscriptID)
		if !ok || ref.Analyzed {
			continue
		}
		if attempts >= p.cfg.AnalysisLimit {
			break
		}
		attempts++

		text, err := p.deps.Store.PlainText(ctx, ref.ID)
		if err != nil {
			return staged, fmt.Errorf("read document %s: %w", ref.ID, err)
		}
		brief, err := p.deps.Store.FindBrief(ctx, row.CalendarID)
		if err != nil {
			return staged, fmt.Errorf("find brief for %s: %w", row.CalendarID, err)
		}

		start := time.Now()
		result, err := p.deps.Inference.Analyze(ctx, prompt, text, brief)
		p.deps.Metrics.RecordExternalCall(ctx, "gemini", time.Since(start))

		var schemaErr *gemini.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			p.log.Warn("analysis response rejected, skipping transcript",
				logging.TranscriptID(row.TranscriptID), logging.Err(err))
			report.AnalysesSkipped++
			p.deps.Metrics.IncAnalysesSkipped(ctx, "schema")
			continue
		case err != nil:
			p.log.Warn("inference unavailable, stopping analysis for this run",
				logging.Err(err))
			return staged, fmt.Errorf("analyze transcript %s: %w", row.TranscriptID, err)
		}

		staged = append(staged, stagedResult{row: row, result: result})
		if err := p.deps.Store.MarkAnalyzed(ctx, ref.ID); err != nil {
			return staged, fmt.Errorf("mark document %s analyzed: %w", ref.ID, err)
		}
		report.AnalysesCompleted++
		p.deps.Metrics.IncAnalysesCompleted(ctx)
		p.log.Info("transcript analyzed",
			logging.TranscriptID(row.TranscriptID), logging.DocumentID(ref.ID))
	}
	return staged, nil
}

// flushResults writes the staged analyses into the two master tabs in one
// batch call so their row indices stay aligned to the same transcript. The
// same batch back-fills the doc link and duration (columns I:J) of every
// Meeting_data row whose calendar id matches a tracked transcript and whose
// link column is still empty, independent of what was analyzed this run.
func (p *Pipeline) flushResults(ctx context.Context, staged []stagedResult, table *tracker.Table) error {
	var candidates []tracker.Row
	for _, row := range table.Rows() {
		if row.DocURL != "" {
			candidates = append(candidates, row)
		}
	}
	if len(staged) == 0 && len(candidates) == 0 {
		return nil
	}

	master, err := p.deps.Sheets.ReadRange(ctx, p.cfg.MasterSheetID, p.cfg.MeetingDataTab+"!A:I")
	if err != nil {
		return fmt.Errorf("read master sheet: %w", err)
	}

	startRow := len(master) + 1
	if startRow < 2 {
		startRow = 2 // row 1 is the header
	}

	byCalendar := make(map[string]int)
	linked := make(map[string]bool)
	for i, row := range master {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		if _, ok := byCalendar[row[0]]; !ok {
			byCalendar[row[0]] = i + 1
		}
		if len(row) > 8 && row[8] != "" {
			linked[row[8]] = true
		}
	}

	var writes []sheets.RangeValues
	if len(staged) > 0 {
		meeting := make([][]any, len(staged))
		audit := make([][]any, len(staged))
		for i, s := range staged {
			meeting[i] = meetingRow(s.row, s.result)
			audit[i] = auditRow(s.row, s.result)
		}
		writes = append(writes,
			sheets.RangeValues{Range: fmt.Sprintf("%s!A%d", p.cfg.MeetingDataTab, startRow), Values: meeting},
			sheets.RangeValues{Range: fmt.Sprintf("%s!A%d", p.cfg.AuditTab, startRow), Values: audit},
		)
	}

	written := make(map[int]bool)
	for _, row := range candidates {
		if linked[row.DocURL] {
			continue
		}
		rowNum, ok := byCalendar[row.CalendarID]
		if !ok || written[rowNum] {
			continue
		}
		written[rowNum] = true
		writes = append(writes, sheets.RangeValues{
			Range:  fmt.Sprintf("%s!I%d:J%d", p.cfg.MeetingDataTab, rowNum, rowNum),
			Values: [][]any{{row.DocURL, row.DurationMinutes}},
		})
	}

	if len(writes) == 0 {
		return nil
	}
	if err := p.deps.Sheets.BatchWrite(ctx, p.cfg.MasterSheetID, writes); err != nil {
		return fmt.Errorf("write master sheet: %w", err)
	}

	p.log.Info("master sheet written",
		slog.Int("analyses", len(staged)), slog.Int("links_backfilled", len(written)))
	return nil
}
