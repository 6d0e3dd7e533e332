package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryCategory(t *testing.T) {
	tests := []struct {
		country string
		want    string
	}{
		{"India", CategoryIndia},
		{"india", CategoryIndia},
		{"INDIA", CategoryIndia},
		{"China", CategoryChina},
		{"mainland china", CategoryChina},
		{"PRC", CategoryChina},
		{"Brazil", CategoryRestOfWorld},
		{"Germany", CategoryRestOfWorld},
		{"", CategoryRestOfWorld},
		{"  India  ", CategoryIndia},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountryCategory(tt.country), "country %q", tt.country)
	}
}

func TestGreenCardWait_IndiaEB2(t *testing.T) {
	wait := GreenCardWait("India", "EB-2")
	assert.Equal(t, 10, wait.MinYears)
	assert.Equal(t, 30, wait.MaxYears)
	assert.Equal(t, SeverelyBacklog, wait.Status)
}

func TestGreenCardWait_RestOfWorldIsCurrent(t *testing.T) {
	wait := GreenCardWait("Brazil", "EB-2")
	assert.Equal(t, 0, wait.MinYears)
	assert.Equal(t, 2, wait.MaxYears)
	assert.Equal(t, BacklogCurrent, wait.Status)
}

func TestGreenCardWait_UnknownCategoryFallsBack(t *testing.T) {
	// An unrecognized EB category falls back to the Rest of World EB-2 entry.
	wait := GreenCardWait("India", "EB-9")
	assert.Equal(t, EBWaitTimes[CategoryRestOfWorld]["EB-2"], wait)
}

func TestBackloggedCountries(t *testing.T) {
	assert.True(t, BackloggedCountries[CategoryIndia])
	assert.True(t, BackloggedCountries[CategoryChina])
	assert.False(t, BackloggedCountries[CategoryRestOfWorld])
}

func TestIsSTEMProgram(t *testing.T) {
	assert.True(t, IsSTEMProgram("11.0701")) // Computer Science
	assert.False(t, IsSTEMProgram("09.0101"))
	assert.Equal(t, "Computer Science", ProgramName("11.0701"))
	assert.Empty(t, ProgramName("09.0101"))
}
