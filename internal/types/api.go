package types

// CurrentStatus summarizes where the user stands right now: their visa,
// work authorization, and the next deadline that has not yet passed.
type CurrentStatus struct {
	Visa                  VisaType `json:"visa"`
	WorkAuth              string   `json:"work_auth"`
	DaysUntilNextDeadline *int     `json:"days_until_next_deadline,omitempty"`
	NextDeadline          string   `json:"next_deadline,omitempty"`
}

// TimelineResponse is the full payload returned by the timeline endpoints.
type TimelineResponse struct {
	TimelineEvents []TimelineEvent `json:"timeline_events"`
	RiskAlerts     []RiskAlert     `json:"risk_alerts"`
	CurrentStatus  CurrentStatus   `json:"current_status"`
}

// ChatRequest represents a chat message with optional user context for personalization.
type ChatRequest struct {
	Message     string       `json:"message" validate:"required"`
	UserContext *UserProfile `json:"user_context,omitempty"`
}

// ChatResponse represents the assistant's reply.
type ChatResponse struct {
	Response   string `json:"response"`
	HasSources bool   `json:"has_sources"`
}

// TaxGuideRequest represents the profile used to build personalized tax guidance.
type TaxGuideRequest struct {
	VisaType    VisaType `json:"visa_type" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	HasIncome   bool     `json:"has_income"`
	IncomeTypes []string `json:"income_types"`
	YearsInUS   int      `json:"years_in_us" validate:"gte=0"`
}

// TreatyBenefit describes a country-specific student tax treaty benefit.
type TreatyBenefit struct {
	Country string `json:"country"`
	Benefit string `json:"benefit"`
	Form    string `json:"form"`
}

// TaxGuide is the structured tax guidance payload.
type TaxGuide struct {
	FilingDeadline  string         `json:"filing_deadline"`
	ResidencyStatus string         `json:"residency_status"`
	RequiredForms   []string       `json:"required_forms"`
	TreatyBenefits  *TreatyBenefit `json:"treaty_benefits"`
	FICAExempt      bool           `json:"fica_exempt"`
	Guidance        string         `json:"guidance"`
	Disclaimer      string         `json:"disclaimer"`
}

// AIUsage reports the state of the shared AI request budget.
type AIUsage struct {
	Used       int  `json:"used"`
	Limit      int  `json:"limit"`
	Remaining  int  `json:"remaining"`
	Allowed    bool `json:"allowed"`
	RetryAfter int  `json:"retry_after"`
}
