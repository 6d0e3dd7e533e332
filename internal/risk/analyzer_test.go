package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/types"
)

var fixedToday = dates.MustParse("2026-01-15")

func baseProfile() types.UserProfile {
	return types.UserProfile{
		VisaType:    types.VisaF1,
		DegreeLevel: "Master's",
		CareerGoal:  types.GoalStayUSLongTerm,
		Country:     "Rest of World",
		OPTStatus:   types.OPTNone,
	}
}

func findAlert(t *testing.T, alerts []types.RiskAlert, id string) types.RiskAlert {
	t.Helper()
	for _, a := range alerts {
		if a.Type == id {
			return a
		}
	}
	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.Type
	}
	t.Fatalf("alert %q not found in %v", id, ids)
	return types.RiskAlert{}
}

func hasAlert(alerts []types.RiskAlert, id string) bool {
	for _, a := range alerts {
		if a.Type == id {
			return true
		}
	}
	return false
}

func TestAnalyze_UnemployedNonSTEMOnOPT(t *testing.T) {
	profile := baseProfile()
	profile.VisaType = types.VisaOPT
	profile.OPTStatus = types.OPTActive
	profile.CurrentlyEmployed = false

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)

	tracking := findAlert(t, alerts, "unemployment_tracking")
	assert.Equal(t, types.SeverityHigh, tracking.Severity)
	assert.Contains(t, tracking.Message, "90 days")

	assert.Equal(t, types.SeverityInfo, findAlert(t, alerts, "non_stem_limited").Severity)
	assert.Equal(t, types.SeverityInfo, findAlert(t, alerts, "h1b_lottery_risk").Severity)
}

func TestAnalyze_IndiaBacklog(t *testing.T) {
	profile := baseProfile()
	profile.Country = "India"

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)

	backlog := findAlert(t, alerts, "country_backlog")
	assert.Equal(t, types.SeverityWarning, backlog.Severity)
	assert.Contains(t, backlog.Message, "India")
	assert.Contains(t, backlog.Message, "10-30 years")
}

func TestAnalyze_BacklogSkippedWhenReturningHome(t *testing.T) {
	profile := baseProfile()
	profile.Country = "India"
	profile.CareerGoal = types.GoalReturnHome

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.False(t, hasAlert(alerts, "country_backlog"))
	assert.False(t, hasAlert(alerts, "h1b_lottery_risk"))
	assert.False(t, hasAlert(alerts, "non_stem_limited_options"))
}

func TestAnalyze_CPTOveruse(t *testing.T) {
	profile := baseProfile()
	profile.CPTMonthsUsed = 12

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.Equal(t, types.SeverityCritical, findAlert(t, alerts, "cpt_overuse").Severity)
	assert.False(t, hasAlert(alerts, "cpt_approaching_limit"))
}

func TestAnalyze_CPTApproachingLimit(t *testing.T) {
	profile := baseProfile()
	profile.CPTMonthsUsed = 10

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)

	approaching := findAlert(t, alerts, "cpt_approaching_limit")
	assert.Equal(t, types.SeverityWarning, approaching.Severity)
	assert.Contains(t, approaching.Message, "10 months")
	assert.False(t, hasAlert(alerts, "cpt_overuse"))
}

func TestAnalyze_DeadlinesWithin30Days(t *testing.T) {
	// Graduation 20 days out: both graduation and the OPT filing deadline
	// (graduation+60) checks are evaluated; only graduation is inside 30.
	profile := baseProfile()
	profile.ExpectedGraduation = fixedToday.AddDate(0, 0, 20).Format(types.DateLayout)

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)

	grad := findAlert(t, alerts, "graduation_approaching")
	assert.Equal(t, types.SeverityHigh, grad.Severity)
	assert.Contains(t, grad.Message, "20 days")
	assert.False(t, hasAlert(alerts, "opt_deadline_approaching"))
}

func TestAnalyze_OPTFilingDeadlineApproaching(t *testing.T) {
	// Graduation 35 days in the past puts the filing deadline 25 days out.
	profile := baseProfile()
	profile.ExpectedGraduation = fixedToday.AddDate(0, 0, -35).Format(types.DateLayout)

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)

	deadline := findAlert(t, alerts, "opt_deadline_approaching")
	assert.Equal(t, types.SeverityCritical, deadline.Severity)
	assert.Contains(t, deadline.Message, "25 days")
	assert.False(t, hasAlert(alerts, "graduation_approaching"))
}

func TestAnalyze_UnemploymentThresholds(t *testing.T) {
	tests := []struct {
		name   string
		isSTEM bool
		days   int
		wantID string
	}{
		{"non-STEM below warn threshold", false, 59, ""},
		{"non-STEM at warn threshold", false, 60, "unemployment_approaching_limit"},
		{"non-STEM exceeded", false, 90, "unemployment_limit_exceeded"},
		{"STEM below warn threshold", true, 119, ""},
		{"STEM at warn threshold", true, 120, "unemployment_approaching_limit"},
		{"STEM exceeded", true, 150, "unemployment_limit_exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := baseProfile()
			profile.VisaType = types.VisaOPT
			profile.IsSTEM = tt.isSTEM
			profile.CurrentlyEmployed = true
			profile.UnemploymentDays = tt.days

			alerts, err := Analyze(profile, nil, fixedToday)
			require.NoError(t, err)

			if tt.wantID == "" {
				assert.False(t, hasAlert(alerts, "unemployment_approaching_limit"))
				assert.False(t, hasAlert(alerts, "unemployment_limit_exceeded"))
				return
			}
			findAlert(t, alerts, tt.wantID)
		})
	}
}

func TestAnalyze_ProgramExtension(t *testing.T) {
	profile := baseProfile()
	profile.ProgramExtended = true

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.Equal(t, types.SeverityHigh, findAlert(t, alerts, "program_extension_i20").Severity)
}

func TestAnalyze_PriorAttempts(t *testing.T) {
	profile := baseProfile()
	profile.H1BAttempts = 1

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.Equal(t, types.SeverityInfo, findAlert(t, alerts, "h1b_prior_attempts").Severity)
	assert.False(t, hasAlert(alerts, "multiple_h1b_failures"))

	profile.H1BAttempts = 3
	alerts, err = Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	failures := findAlert(t, alerts, "multiple_h1b_failures")
	assert.Equal(t, types.SeverityWarning, failures.Severity)
	assert.Contains(t, failures.Message, "3 unsuccessful")
	assert.False(t, hasAlert(alerts, "h1b_prior_attempts"))
}

func TestAnalyze_OPTEndingWithoutOffer(t *testing.T) {
	// OPT end (graduation+365) 50 days out and no offer: critical.
	profile := baseProfile()
	profile.VisaType = types.VisaOPT
	profile.ExpectedGraduation = fixedToday.AddDate(0, 0, 50-365).Format(types.DateLayout)

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.Equal(t, types.SeverityCritical, findAlert(t, alerts, "no_job_offer_opt_ending").Severity)

	// 100 days out: high.
	profile.ExpectedGraduation = fixedToday.AddDate(0, 0, 100-365).Format(types.DateLayout)
	alerts, err = Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.Equal(t, types.SeverityHigh, findAlert(t, alerts, "no_job_offer_opt_ending").Severity)

	// A job offer silences the check entirely.
	profile.HasJobOffer = true
	alerts, err = Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.False(t, hasAlert(alerts, "no_job_offer_opt_ending"))
}

func TestAnalyze_SortedBySeverity(t *testing.T) {
	profile := baseProfile()
	profile.Country = "India"
	profile.CPTMonthsUsed = 12
	profile.H1BAttempts = 1

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	require.NotEmpty(t, alerts)

	for i := 1; i < len(alerts); i++ {
		assert.LessOrEqual(t,
			types.SeverityRank(alerts[i-1].Severity), types.SeverityRank(alerts[i].Severity),
			"alerts must be ordered most severe first")
	}
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
}

func TestAnalyze_H1BVisaSkipsStudentChecks(t *testing.T) {
	profile := baseProfile()
	profile.VisaType = types.VisaH1B

	alerts, err := Analyze(profile, nil, fixedToday)
	require.NoError(t, err)
	assert.False(t, hasAlert(alerts, "non_stem_limited"))
	assert.False(t, hasAlert(alerts, "h1b_lottery_risk"))
	assert.False(t, hasAlert(alerts, "unemployment_tracking"))
	assert.False(t, hasAlert(alerts, "non_stem_limited_options"))
}

func TestAnalyze_InvalidProfile(t *testing.T) {
	profile := baseProfile()
	profile.UnemploymentDays = -1

	_, err := Analyze(profile, nil, fixedToday)
	require.Error(t, err)
}

func TestAnalyze_MalformedGraduation(t *testing.T) {
	profile := baseProfile()
	profile.ExpectedGraduation = "soon"

	_, err := Analyze(profile, nil, fixedToday)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected_graduation")
}
