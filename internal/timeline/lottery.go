package timeline

import (
	"fmt"
	"time"

	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/rules"
	"github.com/Dileep2896/visapath/internal/types"
)

// lotterySuppressBeyondDays: no lottery events while graduation is more
// than six months out, which is too early to plan a cycle.
const lotterySuppressBeyondDays = 180

// repeatAttemptThreshold is the attempt count at which alternative visa
// pathways get their own milestone.
const repeatAttemptThreshold = 3

// h1bLotteryEvents emits the next upcoming lottery cycle: registration
// open, results, the cap-gap window, and the October start. Exactly one
// cycle per call: the fiscal-year scan breaks after the first registration
// date still ahead of today.
func h1bLotteryEvents(c *genContext) []types.TimelineEvent {
	if c.hasGraduation && dates.DaysBetween(c.today, c.graduation) > lotterySuppressBeyondDays {
		return nil
	}

	var events []types.TimelineEvent
	attempts := c.profile.H1BAttempts

	attemptNote := ""
	switch {
	case attempts >= repeatAttemptThreshold:
		attemptNote = fmt.Sprintf(" You have had %d prior attempts. Each lottery is independent (~30%% chance). " +
			"Consider alternative pathways: EB-1 (extraordinary ability), O-1 (individuals with extraordinary " +
			"achievement), or L-1 (intracompany transfer) visas.", attempts)
	case attempts > 0:
		attemptNote = fmt.Sprintf(" This will be attempt #%d. Each lottery is independent with ~30%% selection rate.", attempts+1)
	}

	currentYear := c.today.Year()
	for year := currentYear; year < currentYear+3; year++ {
		regOpen := time.Date(year, time.Month(rules.H1B.RegistrationMonth), rules.H1B.RegistrationStartDay, 0, 0, 0, 0, time.UTC)
		results := time.Date(year, 4, 1, 0, 0, 0, 0, time.UTC) // approximate
		start := time.Date(year, time.Month(rules.H1B.StartDateMonth), rules.H1B.StartDateDay, 0, 0, 0, 0, time.UTC)

		if regOpen.Before(c.today) {
			continue
		}

		yearLabel := fmt.Sprintf("FY%d", year+1)

		preGradNote := ""
		if c.hasGraduation && regOpen.Before(c.graduation) {
			preGradNote = fmt.Sprintf(" Note: Registration occurs before your graduation (%s). " +
				"Your employer CAN register you now — if selected, you would graduate, start OPT, " +
				"and transition to H-1B on Oct 1 via cap-gap extension.", c.graduation.Format(types.DateLayout))
		}

		capNote := fmt.Sprintf("Regular cap: %d slots.", rules.H1B.RegularCap)
		if c.profile.AdvancedDegree() {
			capNote = "US Master's cap gives you two chances in the lottery."
		}

		actionItems := []string{
			"Confirm employer will sponsor H-1B",
			"Provide passport and immigration documents to employer/attorney",
			"Employer completes electronic registration on USCIS portal",
		}
		if attempts > 0 {
			actionItems = append(actionItems, "Verify cap-gap extension eligibility if currently on OPT")
		}

		events = append(events,
			types.NewTimelineEvent(
				fmt.Sprintf("h1b_registration_%d", year),
				fmt.Sprintf("H-1B Registration Opens (%s)", yearLabel), regOpen,
				types.EventDeadline, dates.Urgency(c.today, regOpen),
				fmt.Sprintf("H-1B electronic registration period for %s. Your employer must register you. %s%s%s",
					yearLabel, capNote, attemptNote, preGradNote),
				actionItems,
			),
			types.NewTimelineEvent(
				fmt.Sprintf("h1b_results_%d", year),
				fmt.Sprintf("H-1B Lottery Results (%s)", yearLabel), results,
				types.EventMilestone, types.UrgencyMedium,
				"H-1B lottery selection results are typically announced. " +
					"If selected, your employer has 90 days to file the full petition.",
				nil,
			),
			types.NewTimelineEvent(
				fmt.Sprintf("h1b_capgap_%d", year),
				fmt.Sprintf("Cap-Gap Extension Period (%s)", yearLabel),
				time.Date(year, time.Month(rules.CapGap.AutoExtendsFromMonth), rules.CapGap.AutoExtendsFromDay, 0, 0, 0, 0, time.UTC),
				types.EventMilestone, types.UrgencyNone,
				"If your OPT is expiring and you're selected in the H-1B lottery, " +
					"your status is automatically extended from April 1 to October 1 (cap-gap).",
				nil,
			),
			types.NewTimelineEvent(
				fmt.Sprintf("h1b_start_%d", year),
				fmt.Sprintf("H-1B Start Date (%s)", yearLabel), start,
				types.EventMilestone, types.UrgencyNone,
				fmt.Sprintf("H-1B employment begins for %s if selected and petition approved.", yearLabel),
				nil,
			),
		)

		break // only the next cycle
	}

	if attempts >= repeatAttemptThreshold {
		events = append(events, types.NewTimelineEvent(
			"h1b_alternatives", "Consider Alternative Visa Pathways", c.today.AddDate(0, 0, 7),
			types.EventMilestone, types.UrgencyHigh,
			fmt.Sprintf("After %d H-1B lottery attempts, consider alternative visa categories. " +
				"Each H-1B lottery is independent (~30%% chance), but diversifying your strategy is recommended.", attempts),
			[]string{
				"Evaluate EB-1A eligibility (extraordinary ability) — no employer sponsorship needed",
				"Explore O-1 visa for individuals with extraordinary achievement in your field",
				"Check if your employer has offices abroad for L-1 intracompany transfer",
				"Consider EB-2 NIW (National Interest Waiver) if your work benefits the US",
				"Consult an immigration attorney about all available options",
			},
		))
	}

	return events
}
