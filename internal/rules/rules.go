// Package rules holds the regulatory constants the timeline and risk engines
// consume: OPT/STEM OPT/CPT/H-1B/Cap-Gap timing rules, processing times,
// green card backlog data, and the STEM CIP code list. Pure data and
// side-effect-free lookups; nothing here touches I/O.
package rules

// OPTRules captures post-completion OPT timing constants.
type OPTRules struct {
	ApplyBeforeGraduationDays int
	ApplyAfterGraduationDays  int
	DurationMonths            int
	UnemploymentLimitDays     int
	RequiresRelatedEmployment bool
	EADProcessingMonthsMin    int
	EADProcessingMonthsMax    int
}

// OPT is the post-completion OPT rule set.
var OPT = OPTRules{
	ApplyBeforeGraduationDays: 90,
	ApplyAfterGraduationDays:  60,
	DurationMonths:            12,
	UnemploymentLimitDays:     90,
	RequiresRelatedEmployment: true,
	EADProcessingMonthsMin:    3,
	EADProcessingMonthsMax:    5,
}

// STEMOPTRules captures the 24-month STEM OPT extension constants.
type STEMOPTRules struct {
	ExtensionMonths                 int
	TotalDurationMonths             int
	UnemploymentLimitDays           int
	RequiresEVerify                 bool
	RequiresSTEMDegree              bool
	ApplyBeforeOPTExpiresDays       int
	EmployerReportingIntervalMonths int
	SelfEmploymentAllowed           bool
}

// STEMOPT is the STEM OPT extension rule set.
var STEMOPT = STEMOPTRules{
	ExtensionMonths:                 24,
	TotalDurationMonths:             36,
	UnemploymentLimitDays:           150,
	RequiresEVerify:                 true,
	RequiresSTEMDegree:              true,
	ApplyBeforeOPTExpiresDays:       90,
	EmployerReportingIntervalMonths: 6,
	SelfEmploymentAllowed:           false,
}

// CPTRules captures Curricular Practical Training constants.
type CPTRules struct {
	RequiresOneAcademicYear bool
	FullTimeMonthsKillOPT   int
	PartTimeLimitHours      int
	FullTimeLimitHours      int
}

// CPT is the CPT rule set. Twelve or more months of full-time CPT
// permanently removes OPT eligibility.
var CPT = CPTRules{
	RequiresOneAcademicYear: true,
	FullTimeMonthsKillOPT:   12,
	PartTimeLimitHours:      20,
	FullTimeLimitHours:      40,
}

// H1BRules captures H-1B lottery and petition constants.
type H1BRules struct {
	RegularCap                  int
	MastersCap                  int
	RegistrationMonth           int
	RegistrationStartDay        int
	RegistrationEndDay          int
	LotteryResultsMonth         int
	StartDateMonth              int
	StartDateDay                int
	MaxDurationYears            int
	RequiresSpecialtyOccupation bool
	RequiresBachelorOrHigher    bool
	EmployerMustPetition        bool
}

// H1B is the H-1B rule set. Registration runs in March; FY employment
// starts October 1.
var H1B = H1BRules{
	RegularCap:                  65000,
	MastersCap:                  20000,
	RegistrationMonth:           3,
	RegistrationStartDay:        1,
	RegistrationEndDay:          31,
	LotteryResultsMonth:         4,
	StartDateMonth:              10,
	StartDateDay:                1,
	MaxDurationYears:            6,
	RequiresSpecialtyOccupation: true,
	RequiresBachelorOrHigher:    true,
	EmployerMustPetition:        true,
}

// CapGapRules captures the automatic F-1/OPT extension between OPT
// expiration and an approved H-1B start date.
type CapGapRules struct {
	AutoExtendsFromMonth int
	AutoExtendsFromDay   int
	AutoExtendsToMonth   int
	AutoExtendsToDay     int
	RequiresH1BSelection bool
	ExtendsOPTAndEAD     bool
}

// CapGap is the cap-gap extension rule set.
var CapGap = CapGapRules{
	AutoExtendsFromMonth: 4,
	AutoExtendsFromDay:   1,
	AutoExtendsToMonth:   10,
	AutoExtendsToDay:     1,
	RequiresH1BSelection: true,
	ExtendsOPTAndEAD:     true,
}

// F1Rules captures general F-1 status constants.
type F1Rules struct {
	GracePeriodDays              int
	MaxOnCampusHoursDuringSchool int
	TransferRequiresSEVIS        bool
}

// F1 is the general F-1 rule set.
var F1 = F1Rules{
	GracePeriodDays:              60,
	MaxOnCampusHoursDuringSchool: 20,
	TransferRequiresSEVIS:        true,
}

// RiskWarningThresholds holds the unemployment-day counts at which the risk
// analyzer raises an "approaching limit" alert. These differ from the
// timeline generator's warning offset; both tables are authoritative for
// their own engine.
type RiskWarningThresholds struct {
	OPTUnemploymentWarnDays     int
	STEMOPTUnemploymentWarnDays int
}

// RiskThresholds is the risk analyzer's unemployment warning table.
var RiskThresholds = RiskWarningThresholds{
	OPTUnemploymentWarnDays:     60,
	STEMOPTUnemploymentWarnDays: 120,
}

// ProcessingWindow is an approximate USCIS processing time in months.
type ProcessingWindow struct {
	MinMonths float64
	MaxMonths float64
}

// ProcessingTimes maps case types to approximate processing windows.
var ProcessingTimes = map[string]ProcessingWindow{
	"opt_ead":      {MinMonths: 3, MaxMonths: 5},
	"stem_opt_ead": {MinMonths: 3, MaxMonths: 5},
	"h1b_regular":  {MinMonths: 3, MaxMonths: 6},
	"h1b_premium":  {MinMonths: 0.5, MaxMonths: 0.5},
	"i140_regular": {MinMonths: 6, MaxMonths: 12},
	"i140_premium": {MinMonths: 0.5, MaxMonths: 0.5},
	"i485":         {MinMonths: 8, MaxMonths: 24},
}

// VisaTypeInfo describes a visa category for display purposes.
type VisaTypeInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	WorkOptions []string `json:"work_options"`
	NextSteps   []string `json:"next_steps"`
}

// VisaTypes is the visa category catalog.
var VisaTypes = map[string]VisaTypeInfo{
	"F-1": {
		Name:        "F-1 Student Visa",
		Description: "Non-immigrant student visa for academic programs",
		WorkOptions: []string{"CPT", "OPT", "STEM OPT", "On-Campus Employment"},
		NextSteps:   []string{"OPT", "H-1B", "Change of Status"},
	},
	"J-1": {
		Name:        "J-1 Exchange Visitor",
		Description: "Exchange visitor visa for scholars, researchers, students",
		WorkOptions: []string{"Academic Training"},
		NextSteps:   []string{"H-1B (may require 2-year home residency waiver)", "Change of Status"},
	},
	"H-1B": {
		Name:        "H-1B Specialty Occupation",
		Description: "Non-immigrant work visa for specialty occupations",
		WorkOptions: []string{"Employer-sponsored employment"},
		NextSteps:   []string{"Green Card (EB-2/EB-3)", "H-1B Extension", "H-1B Transfer"},
	},
	"H-4": {
		Name:        "H-4 Dependent Visa",
		Description: "Dependent visa for H-1B holders' spouses and children",
		WorkOptions: []string{"H-4 EAD (if spouse has approved I-140)"},
		NextSteps:   []string{"H-4 EAD", "Change of Status"},
	},
	"L-1": {
		Name:        "L-1 Intracompany Transferee",
		Description: "Intracompany transfer visa",
		WorkOptions: []string{"Employer-sponsored employment"},
		NextSteps:   []string{"Green Card (EB-1C)", "L-1 Extension"},
	},
	"OPT": {
		Name:        "Post-Completion OPT",
		Description: "12-month work authorization after degree completion",
		WorkOptions: []string{"Employment related to field of study"},
		NextSteps:   []string{"STEM OPT Extension", "H-1B", "Change of Status"},
	},
}

// DegreeLevels lists the supported degree levels, lowest first.
var DegreeLevels = []string{"Associate", "Bachelor's", "Master's", "PhD"}
