// Package risk implements the risk detection pass: an ordered table of
// independent predicates evaluated against a user profile, producing
// severity-ranked alerts. Pure and synchronous, like the timeline engine.
package risk

import (
	"fmt"
	"time"

	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/rules"
	"github.com/Dileep2896/visapath/internal/types"
)

// checkContext carries the parsed facts one analysis call works from.
type checkContext struct {
	profile       types.UserProfile
	today         time.Time
	graduation    time.Time
	hasGraduation bool
}

// check is one independent risk predicate. Checks run in declared order and
// may fire in any combination; the order is preserved for alerts of equal
// severity.
type check func(*checkContext) []types.RiskAlert

// Analyze evaluates every risk predicate against the profile and returns
// alerts sorted by severity rank. The events argument is accepted for
// contract symmetry with the generator; all current predicates derive from
// the profile and today alone.
func Analyze(profile types.UserProfile, _ []types.TimelineEvent, today time.Time) ([]types.RiskAlert, error) {
	profile.ApplyDefaults()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	ctx := &checkContext{profile: profile, today: dates.Truncate(today)}
	var err error
	if ctx.graduation, ctx.hasGraduation, err = dates.Parse(profile.ExpectedGraduation); err != nil {
		return nil, fmt.Errorf("expected_graduation: %w", err)
	}

	var alerts []types.RiskAlert
	for _, c := range checks() {
		alerts = append(alerts, c(ctx)...)
	}

	types.SortAlertsBySeverity(alerts)
	return alerts, nil
}

func checks() []check {
	return []check{
		checkCPTUsage,
		checkCountryBacklog,
		checkUpcomingDeadlines,
		checkNonSTEMWindow,
		checkUnemployedOnOPT,
		checkLotteryUncertainty,
		checkUnemploymentDays,
		checkProgramExtension,
		checkPriorAttempts,
		checkOPTEndingWithoutOffer,
		checkNonSTEMLongTermOptions,
	}
}

// checkCPTUsage flags full-time CPT usage at or approaching the 12-month
// OPT-killing limit.
func checkCPTUsage(c *checkContext) []types.RiskAlert {
	months := c.profile.CPTMonthsUsed
	switch {
	case months >= rules.CPT.FullTimeMonthsKillOPT:
		return []types.RiskAlert{types.NewRiskAlert(
			"cpt_overuse", types.SeverityCritical,
			"You have used 12+ months of full-time CPT, which makes you INELIGIBLE for OPT. " +
				"You will need to secure H-1B sponsorship or another visa status directly.",
			"Consult with your DSO and an immigration attorney immediately.",
		)}
	case months >= 9:
		return []types.RiskAlert{types.NewRiskAlert(
			"cpt_approaching_limit", types.SeverityWarning,
			fmt.Sprintf("You have used %d months of full-time CPT. Using 12+ months will " +
				"make you ineligible for OPT. Be cautious about additional CPT usage.", months),
			"Plan remaining CPT usage carefully and discuss with your DSO.",
		)}
	default:
		return nil
	}
}

func checkCountryBacklog(c *checkContext) []types.RiskAlert {
	if c.profile.CareerGoal != types.GoalStayUSLongTerm {
		return nil
	}
	countryCat := rules.CountryCategory(c.profile.Country)
	if !rules.BackloggedCountries[countryCat] {
		return nil
	}
	wait := rules.GreenCardWait(c.profile.Country, "EB-2")
	return []types.RiskAlert{types.NewRiskAlert(
		"country_backlog", types.SeverityWarning,
		fmt.Sprintf("As a national of %s, EB-2/EB-3 green card wait times currently " +
			"range from %d-%d years. This means maintaining non-immigrant status for an " +
			"extended period.", countryCat, wait.MinYears, wait.MaxYears),
		"Consider EB-1 eligibility (extraordinary ability), " +
			"explore O-1 visa options, or plan for long-term H-1B extensions. " +
			"Start the green card process as early as possible.",
	)}
}

// checkUpcomingDeadlines fires when the OPT filing deadline or graduation
// itself is within 30 days for an F-1 student.
func checkUpcomingDeadlines(c *checkContext) []types.RiskAlert {
	if c.profile.VisaType != types.VisaF1 || !c.hasGraduation {
		return nil
	}
	var alerts []types.RiskAlert

	optDeadline := c.graduation.AddDate(0, 0, rules.OPT.ApplyAfterGraduationDays)
	if days := dates.DaysBetween(c.today, optDeadline); days > 0 && days <= 30 {
		alerts = append(alerts, types.NewRiskAlert(
			"opt_deadline_approaching", types.SeverityCritical,
			fmt.Sprintf("Your OPT application deadline is only %d days away (%s). " +
				"Missing this deadline means losing OPT eligibility entirely.",
				days, optDeadline.Format(types.DateLayout)),
			"Apply for OPT IMMEDIATELY if you haven't already.",
		))
	}

	if days := dates.DaysBetween(c.today, c.graduation); days > 0 && days <= 30 {
		alerts = append(alerts, types.NewRiskAlert(
			"graduation_approaching", types.SeverityHigh,
			fmt.Sprintf("Graduation is %d days away. Ensure your OPT application is filed.", days),
			"Contact your DSO to confirm OPT application status.",
		))
	}
	return alerts
}

func checkNonSTEMWindow(c *checkContext) []types.RiskAlert {
	if !c.profile.OnStudentPath() || c.profile.IsSTEM {
		return nil
	}
	return []types.RiskAlert{types.NewRiskAlert(
		"non_stem_limited", types.SeverityInfo,
		"As a non-STEM student, you are only eligible for 12 months of OPT " +
			"(no STEM extension). Your window to transition to H-1B is shorter.",
		"Begin employer discussions about H-1B sponsorship early. " +
			"The H-1B lottery happens once per year in March.",
	)}
}

func checkUnemployedOnOPT(c *checkContext) []types.RiskAlert {
	if c.profile.VisaType != types.VisaOPT || c.profile.CurrentlyEmployed {
		return nil
	}
	limit := rules.OPT.UnemploymentLimitDays
	if c.profile.IsSTEM {
		limit = rules.STEMOPT.UnemploymentLimitDays
	}
	return []types.RiskAlert{types.NewRiskAlert(
		"unemployment_tracking", types.SeverityHigh,
		fmt.Sprintf("You are currently unemployed on OPT. You have a maximum of %d days " +
			"of unemployment. Exceeding this will terminate your OPT and F-1 status.", limit),
		"Track your unemployment days carefully and pursue employment actively.",
	)}
}

func checkLotteryUncertainty(c *checkContext) []types.RiskAlert {
	if c.profile.CareerGoal != types.GoalStayUSLongTerm || !c.profile.OnStudentPath() {
		return nil
	}
	return []types.RiskAlert{types.NewRiskAlert(
		"h1b_lottery_risk", types.SeverityInfo,
		"The H-1B lottery selection rate is approximately 25-30%. " +
			"Not being selected is common, and you may need to try multiple years.",
		"Have a backup plan (STEM OPT extension, employer with cap-exempt status, " +
			"O-1 visa, or returning to school for a new program).",
	)}
}

// checkUnemploymentDays applies the analyzer's own unemployment thresholds:
// exceeded is critical; "approaching" fires once used days reach the
// warn-threshold table (120 STEM / 60 non-STEM). These thresholds are
// intentionally distinct from the generator's limit−30 warning offset.
func checkUnemploymentDays(c *checkContext) []types.RiskAlert {
	if c.profile.UnemploymentDays <= 0 || !c.profile.OnStudentPath() {
		return nil
	}
	limit := rules.OPT.UnemploymentLimitDays
	warnAt := rules.RiskThresholds.OPTUnemploymentWarnDays
	if c.profile.IsSTEM {
		limit = rules.STEMOPT.UnemploymentLimitDays
		warnAt = rules.RiskThresholds.STEMOPTUnemploymentWarnDays
	}
	used := c.profile.UnemploymentDays
	remaining := limit - used

	switch {
	case remaining <= 0:
		return []types.RiskAlert{types.NewRiskAlert(
			"unemployment_limit_exceeded", types.SeverityCritical,
			fmt.Sprintf("You have used %d of %d allowed unemployment days. Your OPT and F-1 " +
				"status are at risk of termination.", used, limit),
			"Contact your DSO immediately and consult an immigration attorney.",
		)}
	case used >= warnAt:
		return []types.RiskAlert{types.NewRiskAlert(
			"unemployment_approaching_limit", types.SeverityHigh,
			fmt.Sprintf("You have used %d of %d allowed unemployment days. Only %d days remain " +
				"before your OPT is terminated.", used, limit, remaining),
			"Secure qualifying employment as soon as possible and report it to your DSO.",
		)}
	default:
		return nil
	}
}

func checkProgramExtension(c *checkContext) []types.RiskAlert {
	if !c.profile.ProgramExtended {
		return nil
	}
	return []types.RiskAlert{types.NewRiskAlert(
		"program_extension_i20", types.SeverityHigh,
		"Your program has been extended, which requires an updated I-20 and SEVIS record. " +
			"Working or applying for OPT against an outdated I-20 can jeopardize your status.",
		"Request an updated I-20 from your DSO and confirm your SEVIS record reflects " +
			"the new program end date.",
	)}
}

func checkPriorAttempts(c *checkContext) []types.RiskAlert {
	attempts := c.profile.H1BAttempts
	switch {
	case attempts >= 3:
		return []types.RiskAlert{types.NewRiskAlert(
			"multiple_h1b_failures", types.SeverityWarning,
			fmt.Sprintf("You have %d unsuccessful H-1B lottery attempts. Each lottery is " +
				"independent (~25-30%% selection), but relying on the lottery alone is risky.", attempts),
			"Diversify your strategy: evaluate EB-1A, O-1, L-1, and EB-2 NIW pathways " +
				"with an immigration attorney.",
		)}
	case attempts > 0:
		return []types.RiskAlert{types.NewRiskAlert(
			"h1b_prior_attempts", types.SeverityInfo,
			fmt.Sprintf("You have %d prior H-1B lottery attempt(s). Each year's lottery is " +
				"independent of previous results.", attempts),
			"Keep your employer registration materials ready well before March and " +
				"verify cap-gap eligibility if you are on OPT.",
		)}
	default:
		return nil
	}
}

// checkOPTEndingWithoutOffer escalates as OPT expiration approaches with no
// job offer in hand: high within 120 days, critical within 60.
func checkOPTEndingWithoutOffer(c *checkContext) []types.RiskAlert {
	if c.profile.HasJobOffer || !c.profile.OnStudentPath() || !c.hasGraduation {
		return nil
	}
	optEnd := c.graduation.AddDate(0, 0, 365)
	days := dates.DaysBetween(c.today, optEnd)
	if days <= 0 || days > 120 {
		return nil
	}
	severity := types.SeverityHigh
	if days <= 60 {
		severity = types.SeverityCritical
	}
	return []types.RiskAlert{types.NewRiskAlert(
		"no_job_offer_opt_ending", severity,
		fmt.Sprintf("Your OPT period ends in %d days and you do not have a job offer. " +
			"Without employment or a change of status you will need to depart the US.", days),
		"Intensify your job search now, and discuss fallback options " +
			"(further study, departure planning) with your DSO.",
	)}
}

func checkNonSTEMLongTermOptions(c *checkContext) []types.RiskAlert {
	if c.profile.IsSTEM || !c.profile.OnStudentPath() || c.profile.CareerGoal != types.GoalStayUSLongTerm {
		return nil
	}
	return []types.RiskAlert{types.NewRiskAlert(
		"non_stem_limited_options", types.SeverityWarning,
		"As a non-STEM graduate aiming to stay long term, you have a single 12-month OPT " +
			"window and effectively one H-1B lottery cycle before it ends.",
		"Target employers known to sponsor H-1B, and consider cap-exempt employers " +
			"(universities, non-profits) as a fallback.",
	)}
}
