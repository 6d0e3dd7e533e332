package timeline

import (
	"fmt"
	"time"

	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/rules"
	"github.com/Dileep2896/visapath/internal/types"
)

// cptFullTimeLimitMonths is the full-time CPT usage at which OPT
// eligibility is permanently lost.
const cptFullTimeLimitMonths = 12

// unemploymentCriticalWithinDays is the remaining-days threshold at which
// the generator escalates unemployment tracking to critical.
const unemploymentCriticalWithinDays = 30

// cptLimitEvent is the single event an F-1 timeline collapses to once the
// full-time CPT limit is reached.
func cptLimitEvent(c *genContext) types.TimelineEvent {
	return types.NewTimelineEvent(
		"cpt_warning", "CPT Full-Time Limit Reached", c.today,
		types.EventRisk, types.UrgencyCritical,
		fmt.Sprintf("You have used %d+ months of full-time CPT. This makes you INELIGIBLE for OPT. " +
			"Consult your DSO immediately about alternative options.", cptFullTimeLimitMonths),
		[]string{"Contact DSO to discuss options", "Consider H-1B sponsorship directly"},
	)
}

// f1BranchEvents produces the F-1 lifecycle: OPT application steps (unless
// already applied or active), the OPT period itself, and the H-1B lottery
// when the user intends to stay. Requires a graduation date; without one
// the branch emits nothing.
func f1BranchEvents(c *genContext) []types.TimelineEvent {
	if !c.hasGraduation {
		return nil
	}

	var events []types.TimelineEvent
	switch c.profile.OPTStatus {
	case types.OPTApplied:
		events = append(events, optPendingEvent(c))
	case types.OPTActive:
		events = append(events, unemploymentTrackingEvents(c)...)
	default:
		events = append(events, optApplicationEvents(c)...)
	}

	events = append(events, optPeriodEvents(c)...)

	if c.profile.CareerGoal == types.GoalStayUSLongTerm || c.profile.CareerGoal == types.GoalUndecided {
		events = append(events, h1bLotteryEvents(c)...)
	}
	return events
}

// optBranchEvents produces the timeline for someone already on OPT. It
// mirrors the F-1 OPT-period steps without re-emitting application-window
// events, running unemployment tracking first when OPT is active. The
// lottery does not depend on a graduation date: without one the period
// events are skipped but lottery cycles still appear.
func optBranchEvents(c *genContext) []types.TimelineEvent {
	var events []types.TimelineEvent
	if c.profile.OPTStatus == types.OPTActive {
		events = append(events, unemploymentTrackingEvents(c)...)
	}
	if c.hasGraduation {
		events = append(events, optPeriodEvents(c)...)
	}
	if c.profile.CareerGoal == types.GoalStayUSLongTerm || c.profile.CareerGoal == types.GoalUndecided {
		events = append(events, h1bLotteryEvents(c)...)
	}
	return events
}

// h1bBranchEvents produces the timeline for someone already on H-1B.
func h1bBranchEvents(c *genContext) []types.TimelineEvent {
	if c.profile.CareerGoal != types.GoalStayUSLongTerm {
		return nil
	}
	return []types.TimelineEvent{types.NewTimelineEvent(
		"i140_filing", "Consider Filing I-140 (Green Card)"+c.fieldLabel,
		c.today.AddDate(0, 0, 30),
		types.EventMilestone, types.UrgencyMedium,
		"Ask your employer to begin the green card process by filing PERM labor certification, " +
			"followed by I-140 petition.",
		[]string{
			"Discuss green card sponsorship with employer",
			"Start PERM labor certification process",
			"Gather required documents (education evaluations, experience letters)",
		},
	)}
}

// optPendingEvent marks a submitted OPT application awaiting adjudication.
func optPendingEvent(c *genContext) types.TimelineEvent {
	return types.NewTimelineEvent(
		"opt_pending", "OPT Application Pending", c.today,
		types.EventMilestone, types.UrgencyMedium,
		fmt.Sprintf("Your OPT application has been submitted. Processing typically takes %d-%d months. " +
			"You can track your case at uscis.gov/casestatus.",
			rules.OPT.EADProcessingMonthsMin, rules.OPT.EADProcessingMonthsMax),
		[]string{
			"Check case status regularly at uscis.gov",
			"Keep receipt notice (I-797C) safe",
			"Do not travel outside the US without valid EAD",
		},
	)
}

// optApplicationEvents covers the application window: it opens 90 days
// before graduation and closes 60 days after.
func optApplicationEvents(c *genContext) []types.TimelineEvent {
	windowOpen := c.graduation.AddDate(0, 0, -rules.OPT.ApplyBeforeGraduationDays)
	deadline := c.graduation.AddDate(0, 0, rules.OPT.ApplyAfterGraduationDays)

	return []types.TimelineEvent{
		types.NewTimelineEvent(
			"opt_apply_window_open", "OPT Application Window Opens"+c.fieldLabel, windowOpen,
			types.EventDeadline, dates.Urgency(c.today, windowOpen),
			fmt.Sprintf("You can start applying for post-completion OPT%s. Apply as early as possible — " +
				"processing takes %d-%d months.",
				c.extensionNote(), rules.OPT.EADProcessingMonthsMin, rules.OPT.EADProcessingMonthsMax),
			[]string{
				"Request OPT recommendation from DSO",
				"Prepare Form I-765",
				"Get passport-style photos taken (2x2 inches)",
				"Download I-94 from i94.cbp.dhs.gov",
				"Make copies of passport, visa, and all previous I-20s",
			},
		),
		types.NewTimelineEvent(
			"opt_apply_deadline", "OPT Application Deadline", deadline,
			types.EventDeadline, types.UrgencyCritical,
			fmt.Sprintf("Last day to apply for OPT (%d days post-graduation). " +
				"Missing this means losing OPT eligibility entirely.", rules.OPT.ApplyAfterGraduationDays),
			[]string{"Submit I-765 if not already done"},
		),
	}
}

// optPeriodEvents covers the OPT period shared by the F-1 and OPT branches:
// the estimated start, unemployment limit events, expiration, and the STEM
// extension when the degree qualifies.
func optPeriodEvents(c *genContext) []types.TimelineEvent {
	optStart := c.graduation.AddDate(0, 0, 1)
	optEnd := c.graduation.AddDate(0, 0, 365)

	extendedNote := ""
	if c.profile.ProgramExtended {
		extendedNote = " Your OPT duration is not reduced by the program extension."
	}

	events := []types.TimelineEvent{types.NewTimelineEvent(
		"opt_start", "OPT Period Begins (Estimated)", optStart,
		types.EventMilestone, types.UrgencyNone,
		fmt.Sprintf("Your full %d-month OPT period starts%s. You have %d days to find employment. " +
			"Track your unemployment days carefully.%s",
			rules.OPT.DurationMonths, c.extensionNote(), rules.OPT.UnemploymentLimitDays, extendedNote),
		[]string{
			"Begin job search if not already employed",
			fmt.Sprintf("Track unemployment days (max %d days)", rules.OPT.UnemploymentLimitDays),
			"Report employment to DSO within 10 days of starting",
		},
	)}

	// Self-reported unemployment before OPT is marked active: the active
	// path runs full tracking instead.
	if c.profile.UnemploymentDays > 0 && c.profile.OPTStatus != types.OPTActive {
		remaining := rules.OPT.UnemploymentLimitDays - c.profile.UnemploymentDays
		if remaining <= unemploymentCriticalWithinDays {
			events = append(events, types.NewTimelineEvent(
				"unemployment_critical", "Unemployment Limit Critical", c.today,
				types.EventRisk, types.UrgencyCritical,
				fmt.Sprintf("You have used %d of %d unemployment days. Only %d days remaining. " +
					"Your OPT and F-1 status will be terminated if you exceed the limit.",
					c.profile.UnemploymentDays, rules.OPT.UnemploymentLimitDays, remaining),
				[]string{
					"Secure employment immediately",
					"Contact DSO about emergency options",
					"Consider volunteer work reporting (must be in field of study)",
				},
			))
		}
	}

	warningDate := optStart.AddDate(0, 0, rules.OPT.UnemploymentLimitDays-unemploymentCriticalWithinDays)
	events = append(events, types.NewTimelineEvent(
		"opt_unemployment_warning", "OPT Unemployment Limit Approaching", warningDate,
		types.EventRisk, types.UrgencyHigh,
		fmt.Sprintf("You are approaching the %d-day unemployment limit. " +
			"If exceeded, your OPT and F-1 status will be terminated.", rules.OPT.UnemploymentLimitDays),
		[]string{"Secure employment immediately", "Contact DSO about options"},
	))

	expirationAction := "Secure H-1B sponsorship or other status"
	if c.profile.IsSTEM {
		expirationAction = "Apply for STEM OPT extension (if eligible)"
	}
	events = append(events, types.NewTimelineEvent(
		"opt_expiration", "OPT Expires", optEnd,
		types.EventDeadline, types.UrgencyCritical,
		fmt.Sprintf("Your %d-month OPT period ends%s.", rules.OPT.DurationMonths, c.extensionNote()),
		[]string{expirationAction},
	))

	if c.profile.IsSTEM {
		events = append(events, stemExtensionEvents(c, optEnd)...)
	}
	return events
}

// stemExtensionEvents adds the STEM OPT apply-by deadline and the 36-month
// total expiration. Only called for STEM-designated degrees.
func stemExtensionEvents(c *genContext, optEnd time.Time) []types.TimelineEvent {
	applyBy := optEnd.AddDate(0, 0, -rules.STEMOPT.ApplyBeforeOPTExpiresDays)
	stemEnd := optEnd.AddDate(0, 0, 730)

	return []types.TimelineEvent{
		types.NewTimelineEvent(
			"stem_opt_apply", "STEM OPT Extension — Apply By This Date"+c.fieldLabel, applyBy,
			types.EventDeadline, dates.Urgency(c.today, applyBy),
			fmt.Sprintf("Apply for %d-month STEM OPT extension. Your employer MUST be E-Verify registered.",
				rules.STEMOPT.ExtensionMonths),
			[]string{
				"Confirm employer is E-Verify registered",
				"Complete Form I-983 (Training Plan) with employer",
				"Request updated I-20 from DSO with STEM OPT recommendation",
				"File I-765 for STEM OPT extension",
			},
		),
		types.NewTimelineEvent(
			"stem_opt_expiration", "STEM OPT Extension Expires", stemEnd,
			types.EventDeadline, types.UrgencyCritical,
			fmt.Sprintf("Your STEM OPT extension ends (%d months total). " +
				"You must transition to another status (H-1B, etc.).", rules.STEMOPT.TotalDurationMonths),
			[]string{"Ensure H-1B or other visa status is secured"},
		),
	}
}

// unemploymentTrackingEvents runs the active-OPT unemployment day check.
// The limit is 150 days on STEM OPT, 90 otherwise; tiers escalate as the
// remaining allowance shrinks.
func unemploymentTrackingEvents(c *genContext) []types.TimelineEvent {
	limit := rules.OPT.UnemploymentLimitDays
	if c.profile.IsSTEM {
		limit = rules.STEMOPT.UnemploymentLimitDays
	}
	used := c.profile.UnemploymentDays
	remaining := limit - used

	switch {
	case remaining <= 0:
		return []types.TimelineEvent{types.NewTimelineEvent(
			"unemployment_exceeded", "Unemployment Limit EXCEEDED", c.today,
			types.EventRisk, types.UrgencyCritical,
			fmt.Sprintf("You have used %d of %d unemployment days. " +
				"Your OPT status may be terminated. Contact your DSO immediately.", used, limit),
			[]string{
				"Contact DSO immediately",
				"Consult an immigration attorney",
				"Secure employment as soon as possible",
			},
		)}
	case remaining <= unemploymentCriticalWithinDays:
		return []types.TimelineEvent{types.NewTimelineEvent(
			"unemployment_critical", "Unemployment Limit Critical", c.today,
			types.EventRisk, types.UrgencyCritical,
			fmt.Sprintf("You have used %d of %d unemployment days. " +
				"Only %d days remaining before your OPT is terminated.", used, limit, remaining),
			[]string{
				"Secure employment immediately",
				"Contact DSO about emergency options",
			},
		)}
	case remaining <= 2*unemploymentCriticalWithinDays:
		return []types.TimelineEvent{types.NewTimelineEvent(
			"unemployment_warning", "Unemployment Days Running Low", c.today,
			types.EventRisk, types.UrgencyHigh,
			fmt.Sprintf("You have used %d of %d unemployment days. %d days remaining.", used, limit, remaining),
			[]string{
				"Intensify job search",
				"Consider broadening job search to more employers",
				"Contact DSO to discuss options",
			},
		)}
	default:
		return nil
	}
}

// extensionNote annotates OPT descriptions when deadlines derive from an
// extended graduation date.
func (c *genContext) extensionNote() string {
	if c.profile.ProgramExtended {
		return " (based on your extended graduation date)"
	}
	return ""
}
