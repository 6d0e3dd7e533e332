// Package timeline implements the deterministic immigration timeline engine.
// Given a user profile and an explicit "today", it derives the dated
// deadlines, milestones, and risk events for the applicable visa lifecycle.
// The computation is pure: no I/O, no shared state, same output for the same
// inputs.
package timeline

import (
	"fmt"
	"time"

	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/types"
)

// genContext carries the parsed profile facts through one generation call.
type genContext struct {
	profile types.UserProfile
	today   time.Time

	graduation     time.Time
	hasGraduation  bool
	programStart   time.Time
	hasStart       bool
	originalGrad   time.Time
	hasOriginal    bool
	fieldLabel     string // " (Major)" suffix for personalized titles, or ""
}

// rule is one guarded step of the generation cascade. Rules run in declared
// order; each appends zero or more events to the accumulator.
type rule struct {
	name    string
	applies func(*genContext) bool
	events  func(*genContext) []types.TimelineEvent
}

// generationRules is the fixed, ordered cascade: the visa-branch rules
// first, then the cross-cutting rules that apply regardless of branch.
// Output order within this list does not matter for callers, since the
// final pass sorts by date, but it is kept stable so equal-date events keep a
// deterministic order.
func generationRules() []rule {
	return []rule{
		{
			name:    "f1_branch",
			applies: func(c *genContext) bool { return c.profile.VisaType == types.VisaF1 },
			events:  f1BranchEvents,
		},
		{
			name:    "opt_branch",
			applies: func(c *genContext) bool { return c.profile.VisaType == types.VisaOPT },
			events:  optBranchEvents,
		},
		{
			name:    "h1b_branch",
			applies: func(c *genContext) bool { return c.profile.VisaType == types.VisaH1B },
			events:  h1bBranchEvents,
		},
		{
			name:    "program_extension",
			applies: func(c *genContext) bool { return c.profile.ProgramExtended },
			events:  programExtensionEvents,
		},
		{
			name:    "program_start",
			applies: func(c *genContext) bool { return c.hasStart && c.programStart.After(c.today) },
			events:  programStartEvents,
		},
		{
			name:    "graduation",
			applies: func(c *genContext) bool { return c.hasGraduation },
			events:  graduationEvents,
		},
		{
			name: "job_search",
			applies: func(c *genContext) bool {
				return !c.profile.HasJobOffer && c.profile.OnStudentPath() && c.hasGraduation
			},
			events: jobSearchEvents,
		},
		{
			name: "employer_h1b_prep",
			applies: func(c *genContext) bool {
				return c.profile.HasJobOffer && c.profile.OnStudentPath()
			},
			events: employerPrepEvents,
		},
		{
			name:    "green_card",
			applies: func(c *genContext) bool { return c.profile.CareerGoal == types.GoalStayUSLongTerm },
			events:  greenCardEvents,
		},
	}
}

// Generate produces the sorted timeline for a profile. The caller supplies
// today so repeated calls within one request share a consistent clock.
// It fails on malformed required input (bad enum, bad date string) and
// never substitutes data silently; absent optional dates simply skip the
// branches that depend on them.
func Generate(profile types.UserProfile, today time.Time) ([]types.TimelineEvent, error) {
	profile.ApplyDefaults()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	ctx, err := newGenContext(profile, today)
	if err != nil {
		return nil, err
	}

	// CPT absorption: 12+ months of full-time CPT removes OPT eligibility
	// entirely. The timeline collapses to the one critical risk event.
	if profile.VisaType == types.VisaF1 && profile.CPTMonthsUsed >= cptFullTimeLimitMonths {
		events := []types.TimelineEvent{cptLimitEvent(ctx)}
		finalize(events, ctx.today)
		return events, nil
	}

	var events []types.TimelineEvent
	for _, r := range generationRules() {
		if !r.applies(ctx) {
			continue
		}
		events = append(events, r.events(ctx)...)
	}

	finalize(events, ctx.today)
	return events, nil
}

func newGenContext(profile types.UserProfile, today time.Time) (*genContext, error) {
	ctx := &genContext{
		profile: profile,
		today:   dates.Truncate(today),
	}

	var err error
	if ctx.graduation, ctx.hasGraduation, err = dates.Parse(profile.ExpectedGraduation); err != nil {
		return nil, fmt.Errorf("expected_graduation: %w", err)
	}
	if ctx.programStart, ctx.hasStart, err = dates.Parse(profile.ProgramStart); err != nil {
		return nil, fmt.Errorf("program_start: %w", err)
	}
	if ctx.originalGrad, ctx.hasOriginal, err = dates.Parse(profile.OriginalGraduation); err != nil {
		return nil, fmt.Errorf("original_graduation: %w", err)
	}

	if profile.MajorField != "" {
		ctx.fieldLabel = fmt.Sprintf(" (%s)", profile.MajorField)
	}
	return ctx, nil
}

// finalize sorts events ascending by date and recomputes is_past from
// today for every event, regardless of any urgency label set upstream.
func finalize(events []types.TimelineEvent, today time.Time) {
	types.SortEventsByDate(events)
	todayISO := today.Format(types.DateLayout)
	for i := range events {
		events[i].IsPast = events[i].Date < todayISO
	}
}
