package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Dileep2896/visapath/internal/rules"
	"github.com/Dileep2896/visapath/internal/types"
)

// RulesContext renders the regulatory constants as plain text for the
// model. The model must not be left to recall these on its own.
func RulesContext() string {
	var b strings.Builder

	fmt.Fprintf(&b, "OPT: apply between %d days before and %d days after graduation; "+
		"%d months of work authorization; %d day unemployment limit; "+
		"EAD processing takes %d-%d months.\n",
		rules.OPT.ApplyBeforeGraduationDays, rules.OPT.ApplyAfterGraduationDays,
		rules.OPT.DurationMonths, rules.OPT.UnemploymentLimitDays,
		rules.OPT.EADProcessingMonthsMin, rules.OPT.EADProcessingMonthsMax)

	fmt.Fprintf(&b, "STEM OPT: %d month extension for STEM degrees (%d months total); "+
		"apply up to %d days before OPT expires; requires an E-Verify employer; "+
		"%d day combined unemployment limit; employer reporting every %d months.\n",
		rules.STEMOPT.ExtensionMonths, rules.STEMOPT.TotalDurationMonths,
		rules.STEMOPT.ApplyBeforeOPTExpiresDays, rules.STEMOPT.UnemploymentLimitDays,
		rules.STEMOPT.EmployerReportingIntervalMonths)

	fmt.Fprintf(&b, "CPT: %d or more months of full-time CPT permanently eliminates OPT eligibility; "+
		"part-time CPT is %d hours per week or fewer.\n",
		rules.CPT.FullTimeMonthsKillOPT, rules.CPT.PartTimeLimitHours)

	fmt.Fprintf(&b, "H-1B: registration opens March %d and closes March %d; "+
		"lottery results in April; approved employment starts October %d; "+
		"regular cap %d plus %d advanced degree exemption; the employer must petition.\n",
		rules.H1B.RegistrationStartDay, rules.H1B.RegistrationEndDay,
		rules.H1B.StartDateDay, rules.H1B.RegularCap, rules.H1B.MastersCap)

	years := make([]string, 0, len(rules.H1BLotteryStats))
	for year := range rules.H1BLotteryStats {
		years = append(years, year)
	}
	sort.Strings(years)
	for _, year := range years {
		s := rules.H1BLotteryStats[year]
		fmt.Fprintf(&b, "H-1B lottery %s: %d registrations, %d selected (%.1f%% selection rate).\n",
			year, s.Registrations, s.Selected, s.SelectionRate)
	}

	fmt.Fprintf(&b, "Cap-gap: an H-1B selection automatically extends F-1/OPT status "+
		"from April 1 until the October 1 start date.\n")

	fmt.Fprintf(&b, "F-1: %d day grace period after program completion; "+
		"on-campus work capped at %d hours per week during the school year.\n",
		rules.F1.GracePeriodDays, rules.F1.MaxOnCampusHoursDuringSchool)

	cases := make([]string, 0, len(rules.ProcessingTimes))
	for name := range rules.ProcessingTimes {
		cases = append(cases, name)
	}
	sort.Strings(cases)
	b.WriteString("Processing times (months):")
	for i, name := range cases {
		w := rules.ProcessingTimes[name]
		sep := " "
		if i > 0 {
			sep = "; "
		}
		fmt.Fprintf(&b, "%s%s %g-%g", sep, name, w.MinMonths, w.MaxMonths)
	}
	b.WriteString(".\n")

	return b.String()
}

// BacklogContext renders the green card outlook for a country of
// citizenship.
func BacklogContext(country string) string {
	category := rules.CountryCategory(country)
	var b strings.Builder
	fmt.Fprintf(&b, "Visa bulletin category: %s.\n", category)
	for _, pref := range []string{"EB-1", "EB-2", "EB-3"} {
		wait := rules.GreenCardWait(country, pref)
		fmt.Fprintf(&b, "%s: %d-%d year wait (%s).\n", pref, wait.MinYears, wait.MaxYears, wait.Status)
	}
	return b.String()
}

// TimelineSystem returns the system instruction for AI timeline generation.
func TimelineSystem() string {
	return MustGet("timeline.json", "system")
}

// Timeline builds the AI timeline generation prompt from a validated
// profile, today's date, and the response schema the model must match.
func Timeline(profile *types.UserProfile, today, schema string) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize profile: %w", err)
	}

	tmpl, err := Get("timeline.json", "generate")
	if err != nil {
		return "", err
	}

	return Format(tmpl, map[string]string{
		"Today":   today,
		"Profile": string(profileJSON),
		"Rules":   RulesContext(),
		"Backlog": BacklogContext(profile.Country),
		"Schema":  schema,
	}), nil
}

// ChatSystem returns the system instruction for knowledge base chat.
func ChatSystem() string {
	return MustGet("chat.json", "system")
}

// Chat builds the chat prompt. When retrieved source excerpts exist the
// model is told to ground its answer in them; otherwise it answers from
// general knowledge and is asked to flag uncertainty.
func Chat(message string, profile *types.UserProfile, sources []string) (string, error) {
	var profileSection string
	if profile != nil {
		profileJSON, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to serialize profile: %w", err)
		}
		tmpl, err := Get("chat.json", "profile_section")
		if err != nil {
			return "", err
		}
		profileSection = Format(tmpl, map[string]string{"Profile": string(profileJSON)})
	}

	data := map[string]string{
		"Question":       message,
		"ProfileSection": profileSection,
	}

	if len(sources) == 0 {
		tmpl, err := Get("chat.json", "no_sources")
		if err != nil {
			return "", err
		}
		return Format(tmpl, data), nil
	}

	var b strings.Builder
	for i, src := range sources {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, strings.TrimSpace(src))
	}
	data["Sources"] = strings.TrimSpace(b.String())

	tmpl, err := Get("chat.json", "with_sources")
	if err != nil {
		return "", err
	}
	return Format(tmpl, data), nil
}

// TaxGuidanceSystem returns the system instruction for tax guidance prose.
func TaxGuidanceSystem() string {
	return MustGet("taxguide.json", "system")
}

// TaxGuidance builds the prompt that turns a deterministic tax guide into
// a readable guidance paragraph.
func TaxGuidance(req types.TaxGuideRequest, guide types.TaxGuide) (string, error) {
	reqJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	treaties := "none"
	if guide.TreatyBenefits != nil {
		treaties = fmt.Sprintf("%s (%s, file %s)",
			guide.TreatyBenefits.Benefit, guide.TreatyBenefits.Country, guide.TreatyBenefits.Form)
	}

	tmpl, err := Get("taxguide.json", "guidance")
	if err != nil {
		return "", err
	}

	return Format(tmpl, map[string]string{
		"Request":    string(reqJSON),
		"Residency":  guide.ResidencyStatus,
		"Deadline":   guide.FilingDeadline,
		"Forms":      strings.Join(guide.RequiredForms, ", "),
		"FICAExempt": fmt.Sprintf("%t", guide.FICAExempt),
		"Treaties":   treaties,
	}), nil
}
