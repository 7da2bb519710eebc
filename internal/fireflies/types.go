package fireflies

import (
	"fmt"
	"strings"
)

// Sentence is one utterance of a transcript: who said what, and when,
// with timestamps in seconds from the start of the recording.
type Sentence struct {
	Index       int     `json:"index"`
	SpeakerName string  `json:"speaker_name"`
	SpeakerID   string  `json:"speaker_id"`
	Text        string  `json:"text"`
	RawText     string  `json:"raw_text"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
}

// Transcript is one meeting's transcribed utterances plus metadata as returned
// by the Fireflies API. Immutable once fetched.
type Transcript struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	CalendarID    string     `json:"calendar_id"`
	TranscriptURL string     `json:"transcript_url"`
	Sentences     []Sentence `json:"sentences"`
}

// HasUtterances reports whether the transcript carries any sentences.
// Fireflies returns null sentences for meetings that never produced audio.
func (t Transcript) HasUtterances() bool {
	return len(t.Sentences) > 0
}

// DurationSeconds is the meeting duration derived from the first-to-last
// utterance timestamp delta, not a service-reported field. Zero when the
// transcript has no utterances.
func (t Transcript) DurationSeconds() float64 {
	if len(t.Sentences) == 0 {
		return 0
	}
	return t.Sentences[len(t.Sentences)-1].EndTime - t.Sentences[0].StartTime
}

// FormattedText renders the utterances into the timestamped, speaker-labeled
// body stored in the transcript's Google Doc.
func (t Transcript) FormattedText() string {
	if len(t.Sentences) == 0 {
		return " "
	}
	var b strings.Builder
	for _, s := range t.Sentences {
		fmt.Fprintf(&b, "Time (in seconds): %g to %g\n", s.StartTime, s.EndTime)
		fmt.Fprintf(&b, "%s: %s\n\n", s.SpeakerName, s.Text)
	}
	return b.String()
}

// DashboardURL is the Fireflies dashboard link for this transcript.
func (t Transcript) DashboardURL() string {
	return "https://app.fireflies.ai/view/" + t.ID
}
