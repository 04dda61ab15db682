package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/activity"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/broadcast"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/config"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/logs"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/server"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/session"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/stats"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/status"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/tailer"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/watcher"
)

const (
	statusInterval = 30 * time.Second
	statsInterval  = 5 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analytics web service",
	Long: `Serve the HTTP API and WebSocket stream. Watches the live console log
for new events, refreshes the server status over RCON on a fixed cadence,
and exposes sessions, activity, and leaderboard endpoints.

Examples:
  craftwatch serve --stats-path /data/world/stats
  craftwatch serve --port 9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP listen port")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
	}()

	scanner := logs.NewScanner(cfg.LogsDir())
	sessions := session.NewAnalyzer(scanner)
	act := activity.NewAnalyzer(scanner)
	resolver := status.NewResolver(cfg, scanner)
	statsSvc := stats.NewService(cfg)

	hub := broadcast.New(liveLines(ctx, cfg))
	go hub.Start(ctx)

	// Scheduled pushes to WebSocket subscribers.
	go pushEvery(ctx, statusInterval, func() model.LiveUpdate {
		return model.LiveUpdate{Type: "STATUS", Data: resolver.Refresh()}
	}, hub)
	go pushEvery(ctx, statsInterval, func() model.LiveUpdate {
		return model.LiveUpdate{Type: "STATS", Data: statsSvc.ServerStats()}
	}, hub)

	srv := server.New(scanner, sessions, act, resolver, statsSvc, hub, cfg.Port)

	log.Info().
		Str("port", cfg.Port).
		Str("logs", cfg.LogsDir()).
		Str("server", cfg.ServerName).
		Msg("craftwatch serving")

	return srv.Start()
}

// liveLines wires watcher and tailer over the live console log and returns
// the line channel feeding the hub. If the log cannot be watched the
// service still runs, without the live stream.
func liveLines(ctx context.Context, cfg config.Config) <-chan model.RawLine {
	w, err := watcher.New(cfg.LatestLogPath())
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.LatestLogPath()).Msg("live log unavailable, websocket stream disabled")
		return make(chan model.RawLine)
	}

	ckpt, err := tailer.NewCheckpoint(filepath.Join(".", ".craftwatch-state.json"))
	if err != nil {
		log.Warn().Err(err).Msg("checkpoint unavailable, starting from end of log")
	}

	t := tailer.New(w, ckpt)
	go w.Start(ctx)
	go t.Start(ctx)
	return t.Lines()
}

func pushEvery(ctx context.Context, interval time.Duration, build func() model.LiveUpdate, hub *broadcast.Hub) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hub.Publish(build())
		}
	}
}
