package rules

import "strings"

// BacklogStatus describes how congested an EB category is for a country.
type BacklogStatus string

// Backlog statuses
const (
	BacklogCurrent  BacklogStatus = "current"
	Backlogged      BacklogStatus = "backlogged"
	SeverelyBacklog BacklogStatus = "severely_backlogged"
)

// Country categories used by the visa bulletin. All countries without a
// dedicated backlog fall under Rest of World.
const (
	CategoryIndia       = "India"
	CategoryChina       = "China"
	CategoryRestOfWorld = "Rest of World"
)

// WaitEstimate is an approximate employment-based green card wait.
type WaitEstimate struct {
	MinYears int           `json:"wait_years_min"`
	MaxYears int           `json:"wait_years_max"`
	Status   BacklogStatus `json:"status"`
}

// EBWaitTimes holds approximate wait times per country category and EB
// preference, based on visa bulletin data.
var EBWaitTimes = map[string]map[string]WaitEstimate{
	CategoryIndia: {
		"EB-1": {MinYears: 2, MaxYears: 4, Status: Backlogged},
		"EB-2": {MinYears: 10, MaxYears: 30, Status: SeverelyBacklog},
		"EB-3": {MinYears: 10, MaxYears: 25, Status: SeverelyBacklog},
	},
	CategoryChina: {
		"EB-1": {MinYears: 1, MaxYears: 3, Status: Backlogged},
		"EB-2": {MinYears: 4, MaxYears: 8, Status: Backlogged},
		"EB-3": {MinYears: 4, MaxYears: 8, Status: Backlogged},
	},
	CategoryRestOfWorld: {
		"EB-1": {MinYears: 0, MaxYears: 1, Status: BacklogCurrent},
		"EB-2": {MinYears: 0, MaxYears: 2, Status: BacklogCurrent},
		"EB-3": {MinYears: 0, MaxYears: 2, Status: BacklogCurrent},
	},
}

// BackloggedCountries lists the categories with country-specific backlogs.
var BackloggedCountries = map[string]bool{
	CategoryIndia: true,
	CategoryChina: true,
}

// CountryCategory maps a free-text country name to its backlog category.
// Matching is case-insensitive and never fails; anything unrecognized is
// Rest of World.
func CountryCategory(country string) string {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "india":
		return CategoryIndia
	case "china", "mainland china", "prc":
		return CategoryChina
	default:
		return CategoryRestOfWorld
	}
}

// GreenCardWait returns the wait estimate for a country and EB preference
// category. Unknown countries resolve to Rest of World; unknown EB
// categories fall back to the Rest of World EB-2 estimate.
func GreenCardWait(country, category string) WaitEstimate {
	table, ok := EBWaitTimes[CountryCategory(country)]
	if !ok {
		table = EBWaitTimes[CategoryRestOfWorld]
	}
	if wait, ok := table[category]; ok {
		return wait
	}
	return EBWaitTimes[CategoryRestOfWorld]["EB-2"]
}

// H1BLotteryStats holds recent lottery outcomes by registration year.
var H1BLotteryStats = map[string]struct {
	Registrations int
	Selected      int
	SelectionRate float64
}{
	"2024": {Registrations: 758994, Selected: 188400, SelectionRate: 24.8},
	"2025": {Registrations: 470000, Selected: 120000, SelectionRate: 25.5},
}
