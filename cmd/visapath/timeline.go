package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/observability"
	"github.com/Dileep2896/visapath/internal/risk"
	"github.com/Dileep2896/visapath/internal/server"
	"github.com/Dileep2896/visapath/internal/timeline"
	"github.com/Dileep2896/visapath/internal/types"
)

var (
	timelineProfile string
	timelineToday   string
	timelineVerbose bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Generate a timeline for a profile file, without the server",
	Long: `Run the deterministic timeline generator and risk analyzer against a
profile JSON file and print the result. No database, API key, or network
access is needed.`,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineProfile, "profile", "", "Path to the profile JSON file (required)")
	timelineCmd.Flags().StringVar(&timelineToday, "today", "", "Override today's date (YYYY-MM-DD)")
	timelineCmd.Flags().BoolVarP(&timelineVerbose, "verbose", "v", false, "Print formatted boxes instead of JSON")
	_ = timelineCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(timelineProfile)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}
	profile.ApplyDefaults()

	today := time.Now().UTC()
	if timelineToday != "" {
		d, ok, err := dates.Parse(timelineToday)
		if err != nil || !ok {
			return fmt.Errorf("invalid --today value: %q", timelineToday)
		}
		today = d
	}

	events, err := timeline.Generate(profile, today)
	if err != nil {
		return err
	}
	alerts, err := risk.Analyze(profile, events, today)
	if err != nil {
		return err
	}

	resp := types.TimelineResponse{
		TimelineEvents: events,
		RiskAlerts:     alerts,
		CurrentStatus:  server.BuildCurrentStatus(profile.VisaType, events, today),
	}

	if timelineVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintCurrentStatus(resp.CurrentStatus)
		printer.PrintTimeline(resp.TimelineEvents)
		printer.PrintRiskAlerts(resp.RiskAlerts)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
