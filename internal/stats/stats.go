// Package stats loads the per-player statistics files the server writes
// under world/stats and aggregates them into leaderboards and totals.
package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/config"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
)

const leaderboardSize = 5

// Counter keys inside the minecraft:custom category.
const (
	customDeaths    = "minecraft:deaths"
	customPlayTime  = "minecraft:play_time"
	customWalkOneCm = "minecraft:walk_one_cm"
	customJump      = "minecraft:jump"
)

// Service reads statistics files fresh on every call; corrupt or missing
// files are skipped, never fatal.
type Service struct {
	cfg config.Config
}

func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// ServerStats aggregates every player's statistics file into leaderboards
// and server-wide totals.
func (s *Service) ServerStats() model.ServerStats {
	players := s.loadAllPlayers()

	return model.ServerStats{
		TotalPlayers: len(players),
		Players:      players,
		Leaderboards: buildLeaderboards(players),
		ServerTotals: buildTotals(players),
		LastUpdated:  time.Now().In(model.ServerZone()).Format(time.RFC3339),
	}
}

// PlayerStats loads one player's statistics by uuid.
func (s *Service) PlayerStats(uuid string) (model.PlayerStats, bool) {
	path := filepath.Join(s.cfg.StatsPath, uuid+".json")
	names := s.loadUserCache()
	p, err := loadPlayer(path, uuid, names)
	if err != nil {
		log.Warn().Str("uuid", uuid).Err(err).Msg("cannot load player stats")
		return model.PlayerStats{}, false
	}
	return p, true
}

func (s *Service) loadAllPlayers() []model.PlayerStats {
	matches, err := doublestar.FilepathGlob(filepath.Join(s.cfg.StatsPath, "*.json"))
	if err != nil {
		log.Warn().Str("dir", s.cfg.StatsPath).Err(err).Msg("cannot list stats files")
		return nil
	}

	names := s.loadUserCache()

	var players []model.PlayerStats
	for _, m := range matches {
		uuid := strings.TrimSuffix(filepath.Base(m), ".json")
		p, err := loadPlayer(m, uuid, names)
		if err != nil {
			log.Warn().Str("file", m).Err(err).Msg("skipping unreadable stats file")
			continue
		}
		players = append(players, p)
	}

	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players
}

func loadPlayer(path, uuid string, names map[string]string) (model.PlayerStats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.PlayerStats{}, err
	}

	var file model.StatsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return model.PlayerStats{}, fmt.Errorf("decode: %w", err)
	}

	name := names[uuid]
	if name == "" {
		// No cache entry; fall back to a short uuid prefix.
		name = uuid
		if len(name) > 8 {
			name = name[:8]
		}
	}

	return model.PlayerStats{
		UUID:    uuid,
		Name:    name,
		Stats:   file.Stats,
		Summary: summarize(file.Stats),
	}, nil
}

// loadUserCache maps uuids to player names via usercache.json.
func (s *Service) loadUserCache() map[string]string {
	names := make(map[string]string)

	raw, err := os.ReadFile(s.cfg.UserCachePath())
	if err != nil {
		log.Debug().Err(err).Msg("usercache.json not readable")
		return names
	}

	var entries []model.PlayerCacheEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Warn().Err(err).Msg("usercache.json not parseable")
		return names
	}

	for _, e := range entries {
		names[e.UUID] = e.Name
	}
	return names
}

func summarize(c model.StatsCategories) model.PlayerStatsSummary {
	playTime := c.Custom[customPlayTime]
	distance := c.Custom[customWalkOneCm]

	return model.PlayerStatsSummary{
		TotalBlocksMined:        sumCounters(c.Mined),
		TotalItemsCrafted:       sumCounters(c.Crafted),
		TotalMobsKilled:         sumCounters(c.Killed),
		TotalDeaths:             c.Custom[customDeaths],
		PlayTimeTicks:           playTime,
		PlayTimeFormatted:       FormatPlayTime(playTime),
		DistanceWalkedCm:        distance,
		DistanceWalkedFormatted: FormatDistance(distance),
		Jumps:                   c.Custom[customJump],
	}
}

func sumCounters(counters map[string]int64) int64 {
	var total int64
	for _, v := range counters {
		total += v
	}
	return total
}

// FormatPlayTime renders game ticks (20 per second) as hours and minutes.
func FormatPlayTime(ticks int64) string {
	minutes := ticks / 20 / 60
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatDistance renders centimeters as km or m.
func FormatDistance(cm int64) string {
	meters := cm / 100
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", float64(meters)/1000)
	}
	return fmt.Sprintf("%d m", meters)
}

func buildLeaderboards(players []model.PlayerStats) model.Leaderboards {
	return model.Leaderboards{
		MostBlocksMined: topBy(players,
			func(p model.PlayerStats) int64 { return p.Summary.TotalBlocksMined },
			func(v int64) string { return fmt.Sprintf("%d blocks", v) }),
		MostMobsKilled: topBy(players,
			func(p model.PlayerStats) int64 { return p.Summary.TotalMobsKilled },
			func(v int64) string { return fmt.Sprintf("%d mobs", v) }),
		MostPlayTime: topBy(players,
			func(p model.PlayerStats) int64 { return p.Summary.PlayTimeTicks },
			FormatPlayTime),
		MostDeaths: topBy(players,
			func(p model.PlayerStats) int64 { return p.Summary.TotalDeaths },
			func(v int64) string { return fmt.Sprintf("%d deaths", v) }),
		MostDistanceWalked: topBy(players,
			func(p model.PlayerStats) int64 { return p.Summary.DistanceWalkedCm },
			FormatDistance),
	}
}

// topBy ranks players descending by the metric and keeps the leaders.
func topBy(players []model.PlayerStats, metric func(model.PlayerStats) int64, format func(int64) string) []model.LeaderboardEntry {
	ranked := make([]model.PlayerStats, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric(ranked[i]) > metric(ranked[j])
	})

	var entries []model.LeaderboardEntry
	for i, p := range ranked {
		if i >= leaderboardSize || metric(p) == 0 {
			break
		}
		entries = append(entries, model.LeaderboardEntry{
			Rank:           i + 1,
			PlayerName:     p.Name,
			PlayerUUID:     p.UUID,
			Value:          metric(p),
			FormattedValue: format(metric(p)),
		})
	}
	return entries
}

func buildTotals(players []model.PlayerStats) model.ServerTotals {
	var t model.ServerTotals
	for _, p := range players {
		t.TotalBlocksMined += p.Summary.TotalBlocksMined
		t.TotalItemsCrafted += p.Summary.TotalItemsCrafted
		t.TotalMobsKilled += p.Summary.TotalMobsKilled
		t.TotalDeaths += p.Summary.TotalDeaths
		t.TotalPlayTimeTicks += p.Summary.PlayTimeTicks
	}
	t.TotalPlayTimeFormatted = FormatPlayTime(t.TotalPlayTimeTicks)
	return t
}
