package sync

import (
	"fmt"
	"strings"

	"github.com/brandvmeet/transcriptsync/internal/gemini"
	"github.com/brandvmeet/transcriptsync/internal/tracker"
)

// meetingRow lays out one Meeting_data entry. The doc link and the duration
// sit in columns I and J, matching the sheet layout the calendar-id keyed
// back-fill writes into; the Fireflies link goes in the last column.
func meetingRow(row tracker.Row, res *gemini.AnalysisResult) []any {
	b := res.Business
	return []any{
		row.CalendarID,
		row.Title,
		row.TranscriptID,
		b.MeetingSummary,
		b.ClientName,
		b.BrandName,
		b.BrandSize,
		b.Industry,
		row.DocURL,
		row.DurationMinutes,
		b.DealStage,
		b.DealValue,
		yesNo(b.BudgetDiscussed),
		b.BudgetRange,
		b.DecisionTimeline,
		joinList(b.DecisionMakers),
		joinList(b.PainPoints),
		joinList(b.ObjectionsRaised),
		joinList(b.ProductsDiscussed),
		yesNo(b.PricingDiscussed),
		yesNo(b.DiscountRequested),
		formatCompetitors(b.CompetitorsMentioned),
		formatActionItems(b.ActionItems),
		b.NextMeetingDate,
		b.ClientSentiment,
		b.CloseProbability,
		yesNo(b.UpsellOpportunity),
		row.SourceURL,
	}
}

// auditRow lays out one Audit_and_Training entry.
func auditRow(row tracker.Row, res *gemini.AnalysisResult) []any {
	a := res.Audit
	return []any{
		row.CalendarID,
		row.TranscriptID,
		a.MeetingType,
		yesNo(a.AgendaStated),
		a.IntroductionQuality,
		a.DiscoveryQuality,
		a.QuestionsAsked,
		a.TalkListenRatio,
		a.ObjectionHandling,
		yesNo(a.NextStepsSecured),
		a.CallControl,
		a.RapportBuilt,
		yesNo(a.BriefFollowed),
		joinList(a.ComplianceIssues),
		a.FillerWordUsage,
		a.InterruptionsCount,
		a.ScriptAdherence,
		a.CoachingNotes,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

// formatActionItems renders the extracted follow-ups as "owner: task [priority]"
// entries so they stay readable in one cell.
func formatActionItems(items []gemini.ActionItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		if item.Priority != "" {
			parts[i] = fmt.Sprintf("%s: %s [%s]", item.Owner, item.Task, item.Priority)
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", item.Owner, item.Task)
	}
	return strings.Join(parts, "; ")
}

func formatCompetitors(items []gemini.CompetitorInsight) string {
	parts := make([]string, len(items))
	for i, item := range items {
		if item.Perception != "" {
			parts[i] = fmt.Sprintf("%s: %s", item.Name, item.Perception)
			continue
		}
		parts[i] = item.Name
	}
	return strings.Join(parts, "; ")
}
