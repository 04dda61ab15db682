package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/config"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/logs"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/session"
)

var sessionsDays int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Print a session summary for the last N days",
	Long: `Reconstruct player sessions from the archived and live logs and print
a summary: session count, average and longest duration, and the most
recent sessions.

Examples:
  craftwatch sessions --stats-path /data/world/stats --days 7`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsDays, "days", 30, "analysis window in days")

	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	scanner := logs.NewScanner(cfg.LogsDir())
	stats := session.NewAnalyzer(scanner).SessionStats(sessionsDays)

	if outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Sessions (last %d days): %d\n", sessionsDays, stats.TotalSessions)
	fmt.Printf("Average duration: %s\n", stats.AverageSessionFormatted)
	if stats.LongestSession != nil {
		fmt.Printf("Longest: %s (%s)\n", stats.LongestSession.PlayerName, stats.LongestSession.DurationFormatted)
	}

	if len(stats.RecentSessions) > 0 {
		fmt.Println("\nRecent sessions:")
		for _, s := range stats.RecentSessions {
			leave := "online"
			if s.LeaveTime != nil {
				leave = *s.LeaveTime
			}
			fmt.Printf("  %-16s %s → %s  %s\n", s.PlayerName, s.JoinTime, leave, s.DurationFormatted)
		}
	}
	return nil
}
