package gemini

// AnalysisResult is the structured output of one transcript analysis. Every
// field is extracted by the model and validated before anything is written to
// the master sheet: a response that fails validation produces a SchemaError
// and no partially populated result.
type AnalysisResult struct {
	Business BusinessMetrics `json:"business_metrics"`
	Audit    AuditMetrics    `json:"audit_and_training"`
}

// BusinessMetrics feeds the Meeting_data tab of the master sheet.
type BusinessMetrics struct {
	MeetingSummary       string              `json:"meeting_summary" validate:"required"`
	ClientName           string              `json:"client_name" validate:"required"`
	BrandName            string              `json:"brand_name"`
	BrandSize            string              `json:"brand_size" validate:"required,oneof=National Regional City-level"`
	Industry             string              `json:"industry"`
	DealStage            string              `json:"deal_stage" validate:"required"`
	DealValue            string              `json:"deal_value"`
	BudgetDiscussed      bool                `json:"budget_discussed"`
	BudgetRange          string              `json:"budget_range"`
	DecisionTimeline     string              `json:"decision_timeline"`
	DecisionMakers       []string            `json:"decision_makers"`
	PainPoints           []string            `json:"pain_points"`
	ObjectionsRaised     []string            `json:"objections_raised"`
	ProductsDiscussed    []string            `json:"products_discussed"`
	PricingDiscussed     bool                `json:"pricing_discussed"`
	DiscountRequested    bool                `json:"discount_requested"`
	CompetitorsMentioned []CompetitorInsight `json:"competitors_mentioned" validate:"dive"`
	ActionItems          []ActionItem        `json:"action_items" validate:"dive"`
	NextMeetingDate      string              `json:"next_meeting_date"`
	ClientSentiment      string              `json:"client_sentiment" validate:"required"`
	CloseProbability     string              `json:"close_probability"`
	UpsellOpportunity    bool                `json:"upsell_opportunity"`
}

// AuditMetrics feeds the Audit_and_Training tab of the master sheet.
type AuditMetrics struct {
	MeetingType         string   `json:"meeting_type" validate:"required"`
	AgendaStated        bool     `json:"agenda_stated"`
	IntroductionQuality string   `json:"introduction_quality" validate:"required"`
	DiscoveryQuality    string   `json:"discovery_quality"`
	QuestionsAsked      int      `json:"questions_asked"`
	TalkListenRatio     string   `json:"talk_listen_ratio"`
	ObjectionHandling   string   `json:"objection_handling"`
	NextStepsSecured    bool     `json:"next_steps_secured"`
	CallControl         string   `json:"call_control"`
	RapportBuilt        string   `json:"rapport_built"`
	BriefFollowed       bool     `json:"brief_followed"`
	ComplianceIssues    []string `json:"compliance_issues"`
	FillerWordUsage     string   `json:"filler_word_usage"`
	InterruptionsCount  int      `json:"interruptions_count"`
	ScriptAdherence     string   `json:"script_adherence"`
	CoachingNotes       string   `json:"coaching_notes"`
}

// ActionItem is one follow-up commitment extracted from the meeting.
type ActionItem struct {
	Owner    string `json:"owner" validate:"required"`
	Task     string `json:"task" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
}

// CompetitorInsight captures how a competitor was perceived in the meeting.
type CompetitorInsight struct {
	Name       string `json:"name" validate:"required"`
	Perception string `json:"perception"`
}
