package types

import "fmt"

// VisaType is the user's current immigration status.
type VisaType string

// Supported visa types
const (
	VisaF1  VisaType = "F-1"
	VisaOPT VisaType = "OPT"
	VisaH1B VisaType = "H-1B"
	VisaH4  VisaType = "H-4"
	VisaJ1  VisaType = "J-1"
	VisaL1  VisaType = "L-1"
)

// CareerGoal describes where the user wants to end up long term.
type CareerGoal string

// Career goals
const (
	GoalStayUSLongTerm CareerGoal = "stay_us_longterm"
	GoalReturnHome     CareerGoal = "return_home"
	GoalUndecided      CareerGoal = "undecided"
)

// OPTStatus tracks how far the user is through the OPT application lifecycle.
type OPTStatus string

// OPT application statuses
const (
	OPTNone    OPTStatus = "none"
	OPTApplied OPTStatus = "applied"
	OPTActive  OPTStatus = "active"
	OPTExpired OPTStatus = "expired"
)

// UserProfile is the single input record for timeline generation and risk
// analysis. Date fields are optional ISO 8601 strings; empty means absent.
// The profile is treated as immutable for the duration of one computation.
type UserProfile struct {
	VisaType           VisaType   `json:"visa_type" validate:"required"`
	DegreeLevel        string     `json:"degree_level"`
	IsSTEM             bool       `json:"is_stem"`
	MajorField         string     `json:"major_field"`
	ProgramStart       string     `json:"program_start"`
	ExpectedGraduation string     `json:"expected_graduation"`
	OriginalGraduation string     `json:"original_graduation"`
	CPTMonthsUsed      int        `json:"cpt_months_used" validate:"gte=0"`
	CurrentlyEmployed  bool       `json:"currently_employed"`
	HasJobOffer        bool       `json:"has_job_offer"`
	CareerGoal         CareerGoal `json:"career_goal"`
	Country            string     `json:"country"`
	OPTStatus          OPTStatus  `json:"opt_status"`
	ProgramExtended    bool       `json:"program_extended"`
	H1BAttempts        int        `json:"h1b_attempts" validate:"gte=0"`
	UnemploymentDays   int        `json:"unemployment_days" validate:"gte=0"`
}

// ApplyDefaults fills the defaulted fields the same way the API request
// schema does: Master's degree, long-term US career goal, Rest of World
// country, and no OPT application yet.
func (p *UserProfile) ApplyDefaults() {
	if p.DegreeLevel == "" {
		p.DegreeLevel = "Master's"
	}
	if p.CareerGoal == "" {
		p.CareerGoal = GoalStayUSLongTerm
	}
	if p.Country == "" {
		p.Country = "Rest of World"
	}
	if p.OPTStatus == "" {
		p.OPTStatus = OPTNone
	}
}

// Validate checks enum fields and counters. It fails fast on unrecognized
// enum values rather than silently defaulting.
func (p *UserProfile) Validate() error {
	switch p.VisaType {
	case VisaF1, VisaOPT, VisaH1B, VisaH4, VisaJ1, VisaL1:
	default:
		return fmt.Errorf("unknown visa_type %q", p.VisaType)
	}
	switch p.CareerGoal {
	case GoalStayUSLongTerm, GoalReturnHome, GoalUndecided:
	default:
		return fmt.Errorf("unknown career_goal %q", p.CareerGoal)
	}
	switch p.OPTStatus {
	case OPTNone, OPTApplied, OPTActive, OPTExpired:
	default:
		return fmt.Errorf("unknown opt_status %q", p.OPTStatus)
	}
	if p.CPTMonthsUsed < 0 {
		return fmt.Errorf("cpt_months_used must be non-negative, got %d", p.CPTMonthsUsed)
	}
	if p.H1BAttempts < 0 {
		return fmt.Errorf("h1b_attempts must be non-negative, got %d", p.H1BAttempts)
	}
	if p.UnemploymentDays < 0 {
		return fmt.Errorf("unemployment_days must be non-negative, got %d", p.UnemploymentDays)
	}
	return nil
}

// OnStudentPath reports whether the profile is on the F-1/OPT track, which
// gates job-search, employer H-1B prep, and several risk checks.
func (p *UserProfile) OnStudentPath() bool {
	return p.VisaType == VisaF1 || p.VisaType == VisaOPT
}

// AdvancedDegree reports whether the degree qualifies for the US advanced
// degree cap in the H-1B lottery.
func (p *UserProfile) AdvancedDegree() bool {
	return p.DegreeLevel == "Master's" || p.DegreeLevel == "PhD"
}
