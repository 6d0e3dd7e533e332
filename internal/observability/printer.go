// Package observability provides the logger and metrics constructors and
// formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dileep2896/visapath/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCurrentStatus outputs the visa and next-deadline summary.
func (p *Printer) PrintCurrentStatus(status types.CurrentStatus) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Visa:       %s\n", status.Visa))
	sb.WriteString(fmt.Sprintf("Work auth:  %s", status.WorkAuth))
	if status.NextDeadline != "" && status.DaysUntilNextDeadline != nil {
		sb.WriteString(fmt.Sprintf("\nNext:       %s", status.NextDeadline))
		sb.WriteString(fmt.Sprintf("\n            in %d days", *status.DaysUntilNextDeadline))
	}
	p.printBox("CURRENT STATUS", sb.String())
}

// PrintTimeline outputs the upcoming timeline events with urgency markers.
func (p *Printer) PrintTimeline(events []types.TimelineEvent) {
	if len(events) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total events: %d\n\n", len(events)))

	shown := 0
	for _, e := range events {
		if e.IsPast {
			continue
		}
		if shown == maxItemsToShow {
			break
		}
		shown++
		sb.WriteString(fmt.Sprintf("%s  %s %s\n", e.Date, urgencyMarker(e.Urgency), e.Title))
	}

	upcoming := 0
	for _, e := range events {
		if !e.IsPast {
			upcoming++
		}
	}
	if upcoming > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more events", upcoming-maxItemsToShow))
	}

	p.printBox("IMMIGRATION TIMELINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRiskAlerts outputs the risk list ordered by severity.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRiskAlerts(alerts []types.RiskAlert) {
	if len(alerts) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO RISKS DETECTED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d risks:\n\n", len(alerts)))

	for i, a := range alerts {
		message := a.Message
		if len(message) > 50 {
			message = message[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", severityMarker(a.Severity), a.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", message))
		if i < len(alerts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RISK ALERTS", strings.TrimSuffix(sb.String(), "\n"))
}

func urgencyMarker(u types.Urgency) string {
	switch u {
	case types.UrgencyCritical:
		return "!!"
	case types.UrgencyHigh:
		return " !"
	default:
		return "  "
	}
}

func severityMarker(s types.Severity) string {
	switch s {
	case types.SeverityCritical, types.SeverityHigh:
		return "⚠"
	default:
		return "•"
	}
}
