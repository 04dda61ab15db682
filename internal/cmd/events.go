package cmd

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/config"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/logs"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/output"
)

var (
	eventsDays  int
	eventsLimit int
	eventsChat  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Dump recent or historical events to the terminal",
	Long: `Print classified log events. Without --days only the live log is read;
with --days the rotated gzip archives inside the window are scanned too.

Examples:
  craftwatch events --stats-path /data/world/stats
  craftwatch events --days 7 --limit 200
  craftwatch events --chat --output json`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsDays, "days", 0, "scan archives from the last N days (0 = live log only)")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "maximum number of events to print")
	eventsCmd.Flags().BoolVar(&eventsChat, "chat", false, "only chat messages")

	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	scanner := logs.NewScanner(cfg.LogsDir())

	var renderer output.Renderer
	switch strings.ToLower(outputFmt) {
	case "json":
		renderer = output.NewJSONRenderer()
	default:
		renderer = output.NewTextRenderer()
	}

	for _, ev := range selectEvents(scanner, eventsChat, eventsDays, eventsLimit) {
		if err := renderer.Render(ev); err != nil {
			log.Error().Err(err).Msg("render failed")
		}
	}
	return nil
}

func selectEvents(scanner *logs.Scanner, chat bool, days, limit int) []model.LogEvent {
	switch {
	case chat && days > 0:
		return scanner.HistoricalChat(days, limit)
	case chat:
		return scanner.RecentChat(limit)
	case days > 0:
		return scanner.HistoricalEvents(days, limit)
	default:
		return scanner.RecentEvents(limit)
	}
}
