package taxguide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/types"
)

func TestIsNonresident(t *testing.T) {
	assert.True(t, IsNonresident(types.VisaF1, 5))
	assert.False(t, IsNonresident(types.VisaF1, 6))
	assert.True(t, IsNonresident(types.VisaJ1, 2))
	assert.False(t, IsNonresident(types.VisaJ1, 3))
	assert.False(t, IsNonresident(types.VisaH1B, 3))
}

func TestFilingDeadline(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "April 15, 2026", FilingDeadline(jan))

	onDay := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "April 15, 2026", FilingDeadline(onDay))

	summer := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "April 15, 2027", FilingDeadline(summer))
}

func TestRequiredForms(t *testing.T) {
	assert.Equal(t, []string{"Form 8843", "Form 1040-NR"}, RequiredForms(true, true))
	assert.Equal(t, []string{"Form 8843"}, RequiredForms(true, false))
	assert.Equal(t, []string{"Form 1040"}, RequiredForms(false, true))
	assert.Empty(t, RequiredForms(false, false))
}

func TestTreaty(t *testing.T) {
	india := Treaty("india")
	require.NotNil(t, india)
	assert.Equal(t, "India", india.Country)
	assert.Contains(t, india.Benefit, "Standard deduction")

	assert.NotNil(t, Treaty("  China "))
	assert.Nil(t, Treaty("Brazil"))
	assert.Nil(t, Treaty(""))
}

func TestDetermine_NonresidentStudent(t *testing.T) {
	req := types.TaxGuideRequest{
		VisaType:  types.VisaF1,
		Country:   "India",
		HasIncome: true,
		YearsInUS: 2,
	}
	guide := Determine(req, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, Nonresident, guide.ResidencyStatus)
	assert.True(t, guide.FICAExempt)
	assert.Equal(t, []string{"Form 8843", "Form 1040-NR"}, guide.RequiredForms)
	require.NotNil(t, guide.TreatyBenefits)
	assert.Equal(t, "India", guide.TreatyBenefits.Country)
	assert.Equal(t, "April 15, 2026", guide.FilingDeadline)
	assert.Equal(t, Disclaimer, guide.Disclaimer)
	assert.Empty(t, guide.Guidance)
}

func TestDetermine_ResidentIgnoresTreaty(t *testing.T) {
	req := types.TaxGuideRequest{
		VisaType:  types.VisaF1,
		Country:   "India",
		HasIncome: true,
		YearsInUS: 7,
	}
	guide := Determine(req, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, Resident, guide.ResidencyStatus)
	assert.False(t, guide.FICAExempt)
	assert.Equal(t, []string{"Form 1040"}, guide.RequiredForms)
	assert.Nil(t, guide.TreatyBenefits)
}

func TestRAGQuery(t *testing.T) {
	req := types.TaxGuideRequest{
		VisaType:    types.VisaF1,
		Country:     "India",
		YearsInUS:   2,
		IncomeTypes: []string{"wages", "scholarship"},
	}
	q := RAGQuery(req)
	assert.Equal(t, "Tax filing requirements for F-1 visa holder from India with 2 years in US. Income types: wages, scholarship.", q)

	req.IncomeTypes = nil
	assert.Contains(t, RAGQuery(req), "none specified")
}
