package timeline

import (
	"fmt"

	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/rules"
	"github.com/Dileep2896/visapath/internal/types"
)

// jobSearchLeadDays: start searching six months before graduation.
const jobSearchLeadDays = 180

// programExtensionEvents flags the I-20 update an extension requires and
// keeps the superseded graduation date visible as an informational marker.
func programExtensionEvents(c *genContext) []types.TimelineEvent {
	gradNote := ""
	if c.hasGraduation {
		gradNote = fmt.Sprintf(" New graduation date: %s.", c.graduation.Format(types.DateLayout))
	}

	events := []types.TimelineEvent{types.NewTimelineEvent(
		"program_extension_notice",
		fmt.Sprintf("Program Extended%s — Update Required", c.fieldLabel),
		c.today,
		types.EventDeadline, types.UrgencyHigh,
		"Your program has been extended. You need an updated I-20 reflecting " +
			"the new program end date. Your SEVIS record must also be updated by your DSO. " +
			"Important: Your OPT eligibility and duration are NOT reduced by the extension — " +
			"you will still receive the full 12-month OPT (plus STEM extension if eligible) " +
			"calculated from your new graduation date."+gradNote,
		[]string{
			"Request updated I-20 from DSO with new program end date",
			"Confirm SEVIS record has been updated",
			"Keep copies of both original and updated I-20",
			"Note: All OPT deadlines will be based on your NEW graduation date",
		},
	)}

	if c.hasOriginal && c.hasGraduation {
		events = append(events, types.NewTimelineEvent(
			"original_graduation", "Original Graduation Date (Before Extension)", c.originalGrad,
			types.EventMilestone, types.UrgencyNone,
			fmt.Sprintf("Your original program end date before extension. " +
				"This date is no longer used for OPT or deadline calculations. " +
				"All deadlines now use your new graduation date: %s.", c.graduation.Format(types.DateLayout)),
			nil,
		))
	}
	return events
}

func programStartEvents(c *genContext) []types.TimelineEvent {
	return []types.TimelineEvent{types.NewTimelineEvent(
		"program_start", "Program Start Date"+c.fieldLabel, c.programStart,
		types.EventMilestone, types.UrgencyNone,
		"Your academic program begins.",
		nil,
	)}
}

// graduationEvents emits the graduation milestone with an extension-aware
// title; every downstream deadline is calculated from this date.
func graduationEvents(c *genContext) []types.TimelineEvent {
	title := "Expected Graduation" + c.fieldLabel
	desc := "Your program completion date. Key deadlines are calculated from this date."
	if c.profile.ProgramExtended {
		title = "New Expected Graduation (Extended)" + c.fieldLabel
		stemNote := ""
		if c.profile.IsSTEM {
			stemNote = " (plus 24-month STEM extension)"
		}
		desc = "Your updated program completion date after the extension. " +
			"All OPT deadlines and work authorization dates are calculated from THIS date. " +
			"You will still receive the full 12-month OPT period" + stemNote +
			" starting from this graduation date."
	}

	return []types.TimelineEvent{types.NewTimelineEvent(
		"graduation", title, c.graduation,
		types.EventMilestone, dates.Urgency(c.today, c.graduation),
		desc,
		nil,
	)}
}

// jobSearchEvents nudges users without an offer: a near-term check-in once
// an OPT application is in flight, otherwise an early-search milestone six
// months before graduation.
func jobSearchEvents(c *genContext) []types.TimelineEvent {
	if c.profile.OPTStatus == types.OPTApplied || c.profile.OPTStatus == types.OPTActive {
		return []types.TimelineEvent{types.NewTimelineEvent(
			"job_search_milestone", "Job Search Milestone Check", c.today.AddDate(0, 0, 30),
			types.EventMilestone, types.UrgencyMedium,
			"You don't have a job offer yet. Set concrete weekly targets for applications " +
				"and networking to stay on track before unemployment limits approach.",
			[]string{
				"Apply to at least 10 positions per week",
				"Attend 2+ networking events or career fairs per month",
				"Update LinkedIn and resume for target roles",
				"Connect with your university career services",
			},
		)}
	}

	searchStart := c.graduation.AddDate(0, 0, -jobSearchLeadDays)
	if !searchStart.After(c.today) {
		return nil
	}
	return []types.TimelineEvent{types.NewTimelineEvent(
		"begin_job_search", "Begin Job Search (6 Months Before Graduation)", searchStart,
		types.EventMilestone, types.UrgencyMedium,
		"Start your job search early. Many employers have long hiring cycles, " +
			"especially for positions requiring H-1B sponsorship.",
		[]string{
			"Research employers known to sponsor H-1B visas",
			"Attend career fairs and networking events",
			"Update resume and LinkedIn profile",
			"Practice for technical/behavioral interviews",
		},
	)}
}

func employerPrepEvents(c *genContext) []types.TimelineEvent {
	return []types.TimelineEvent{types.NewTimelineEvent(
		"employer_h1b_prep", "Employer H-1B Preparation", c.today.AddDate(0, 0, 14),
		types.EventMilestone, types.UrgencyMedium,
		"Begin coordinating with your employer on H-1B sponsorship. " +
			"Your employer's immigration attorney should start LCA filing preparation.",
		[]string{
			"Confirm employer will sponsor H-1B",
			"Connect with employer's immigration attorney",
			"Prepare documents for LCA (Labor Condition Application) filing",
			"Verify job title and wage level meet H-1B requirements",
		},
	)}
}

// greenCardEvents emits one informational milestone at the estimated start
// of the employer-sponsored green card process, carrying the wait estimate
// for the user's country category.
func greenCardEvents(c *genContext) []types.TimelineEvent {
	var processStart = c.today.AddDate(1, 0, 0)
	if c.hasGraduation {
		processStart = c.graduation.AddDate(2, 0, 0)
	}
	if !processStart.After(c.today) {
		return nil
	}

	countryCat := rules.CountryCategory(c.profile.Country)
	wait := rules.GreenCardWait(c.profile.Country, "EB-2")

	// Backlogged categories get a medium urgency marker.
	urgency := types.UrgencyNone
	if wait.Status != rules.BacklogCurrent {
		urgency = types.UrgencyMedium
	}

	return []types.TimelineEvent{types.NewTimelineEvent(
		"green_card_info", "Green Card Process (Estimated Start)", processStart,
		types.EventMilestone, urgency,
		fmt.Sprintf("Typical timeline to begin green card process through employer sponsorship. " +
			"Estimated EB-2 wait time for %s: %d-%d years.", countryCat, wait.MinYears, wait.MaxYears),
		[]string{
			"Discuss green card sponsorship with employer early",
			"Start gathering education and experience documentation",
			"Consider EB-1 eligibility if you have extraordinary ability or publications",
		},
	)}
}
