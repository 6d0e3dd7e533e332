// Package taxguide makes the deterministic tax determinations for
// international students: residency status, FICA exemption, required
// forms, filing deadline, and treaty benefits. The model only writes the
// guidance prose; every determination here overrides whatever the model
// says.
package taxguide

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dileep2896/visapath/internal/types"
)

// Disclaimer accompanies every tax guide.
const Disclaimer = "This is general guidance, not legal or tax advice. " +
	"Consult a qualified tax professional for advice specific to your situation."

// Residency status strings used on the wire.
const (
	Nonresident = "Nonresident Alien"
	Resident    = "Resident Alien"
)

// IsNonresident applies the substantial presence exemption: F-1 students
// are exempt individuals for five calendar years, other visa holders for
// two.
func IsNonresident(visa types.VisaType, yearsInUS int) bool {
	if visa == types.VisaF1 {
		return yearsInUS <= 5
	}
	return yearsInUS <= 2
}

// FilingDeadline returns the next April 15 on or after today, formatted
// for display.
func FilingDeadline(today time.Time) string {
	deadline := time.Date(today.Year(), time.April, 15, 0, 0, 0, 0, time.UTC)
	if today.After(deadline) {
		deadline = deadline.AddDate(1, 0, 0)
	}
	return deadline.Format("January 2, 2006")
}

// RequiredForms lists the federal forms for a filer. Every nonresident
// files Form 8843 regardless of income.
func RequiredForms(nonresident, hasIncome bool) []string {
	var forms []string
	if nonresident {
		forms = append(forms, "Form 8843")
		if hasIncome {
			forms = append(forms, "Form 1040-NR")
		}
		return forms
	}
	if hasIncome {
		forms = append(forms, "Form 1040")
	}
	return forms
}

// treatyTable holds the common student tax treaty benefits by country.
// Countries without a known student benefit resolve to nil.
var treatyTable = map[string]types.TreatyBenefit{
	"india": {
		Country: "India",
		Benefit: "Standard deduction allowed for students under Article 21(2)",
		Form:    "Form 1040-NR",
	},
	"china": {
		Country: "China",
		Benefit: "Up to $5,000 of wages exempt under Article 20(c)",
		Form:    "Form 8233",
	},
	"south korea": {
		Country: "South Korea",
		Benefit: "Limited personal exemption for students under Article 21",
		Form:    "Form 8233",
	},
	"canada": {
		Country: "Canada",
		Benefit: "Dependent personal services exemption under Article XV",
		Form:    "Form 8233",
	},
	"germany": {
		Country: "Germany",
		Benefit: "Up to $9,000 of dependent services income exempt under Article 20(4)",
		Form:    "Form 8233",
	},
	"france": {
		Country: "France",
		Benefit: "Up to $5,000 of personal services income exempt under Article 21",
		Form:    "Form 8233",
	},
}

// Treaty returns the student treaty benefit for a country, or nil when
// none is known. Matching is case-insensitive.
func Treaty(country string) *types.TreatyBenefit {
	if benefit, ok := treatyTable[strings.ToLower(strings.TrimSpace(country))]; ok {
		b := benefit
		return &b
	}
	return nil
}

// Determine builds the deterministic baseline guide for a request. The
// Guidance field is left empty for the model to fill.
func Determine(req types.TaxGuideRequest, today time.Time) types.TaxGuide {
	nonresident := IsNonresident(req.VisaType, req.YearsInUS)

	status := Resident
	var treaty *types.TreatyBenefit
	if nonresident {
		status = Nonresident
		treaty = Treaty(req.Country)
	}

	return types.TaxGuide{
		FilingDeadline:  FilingDeadline(today),
		ResidencyStatus: status,
		RequiredForms:   RequiredForms(nonresident, req.HasIncome),
		TreatyBenefits:  treaty,
		FICAExempt:      nonresident,
		Disclaimer:      Disclaimer,
	}
}

// RAGQuery builds the knowledge base query for a tax guide request.
func RAGQuery(req types.TaxGuideRequest) string {
	income := "none specified"
	if len(req.IncomeTypes) > 0 {
		income = strings.Join(req.IncomeTypes, ", ")
	}
	return fmt.Sprintf(
		"Tax filing requirements for %s visa holder from %s with %d years in US. Income types: %s.",
		req.VisaType, req.Country, req.YearsInUS, income)
}
