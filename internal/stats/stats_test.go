package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/config"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func fixtureService(t *testing.T) (*Service, string) {
	t.Helper()
	base := t.TempDir()
	cfg := config.Config{StatsPath: filepath.Join(base, "world", "stats")}
	return NewService(cfg), base
}

const aliceStats = `{
  "stats": {
    "minecraft:mined": {"minecraft:stone": 100, "minecraft:dirt": 50},
    "minecraft:crafted": {"minecraft:stick": 20},
    "minecraft:killed": {"minecraft:zombie": 7},
    "minecraft:custom": {
      "minecraft:deaths": 3,
      "minecraft:play_time": 1440000,
      "minecraft:walk_one_cm": 250000,
      "minecraft:jump": 500
    }
  },
  "DataVersion": 3700
}`

const bobStats = `{
  "stats": {
    "minecraft:mined": {"minecraft:stone": 10},
    "minecraft:custom": {"minecraft:deaths": 9}
  },
  "DataVersion": 3700
}`

func TestServerStatsAggregation(t *testing.T) {
	svc, base := fixtureService(t)
	writeFixture(t, filepath.Join(base, "world", "stats", "uuid-alice.json"), aliceStats)
	writeFixture(t, filepath.Join(base, "world", "stats", "uuid-bob.json"), bobStats)
	writeFixture(t, filepath.Join(base, "usercache.json"),
		`[{"uuid":"uuid-alice","name":"Alice"},{"uuid":"uuid-bob","name":"Bob"}]`)

	stats := svc.ServerStats()

	if stats.TotalPlayers != 2 {
		t.Fatalf("expected 2 players, got %d", stats.TotalPlayers)
	}
	if stats.ServerTotals.TotalBlocksMined != 160 {
		t.Errorf("expected 160 blocks mined total, got %d", stats.ServerTotals.TotalBlocksMined)
	}
	if stats.ServerTotals.TotalDeaths != 12 {
		t.Errorf("expected 12 deaths total, got %d", stats.ServerTotals.TotalDeaths)
	}

	mined := stats.Leaderboards.MostBlocksMined
	if len(mined) != 2 || mined[0].PlayerName != "Alice" || mined[0].Value != 150 {
		t.Errorf("unexpected mined leaderboard %+v", mined)
	}
	if mined[0].Rank != 1 || mined[1].Rank != 2 {
		t.Errorf("expected ranks 1 and 2, got %d and %d", mined[0].Rank, mined[1].Rank)
	}

	// Bob has no kills; zero-valued players stay off that leaderboard.
	if len(stats.Leaderboards.MostMobsKilled) != 1 {
		t.Errorf("expected only Alice on the kills board, got %+v", stats.Leaderboards.MostMobsKilled)
	}
}

func TestPlayerStatsSummary(t *testing.T) {
	svc, base := fixtureService(t)
	writeFixture(t, filepath.Join(base, "world", "stats", "uuid-alice.json"), aliceStats)
	writeFixture(t, filepath.Join(base, "usercache.json"),
		`[{"uuid":"uuid-alice","name":"Alice"}]`)

	p, ok := svc.PlayerStats("uuid-alice")
	if !ok {
		t.Fatal("expected player found")
	}
	if p.Name != "Alice" {
		t.Errorf("expected name Alice, got %q", p.Name)
	}
	if p.Summary.TotalBlocksMined != 150 {
		t.Errorf("expected 150 blocks mined, got %d", p.Summary.TotalBlocksMined)
	}
	// 1440000 ticks = 72000 s = 20 h.
	if p.Summary.PlayTimeFormatted != "20h 0m" {
		t.Errorf("unexpected play time %q", p.Summary.PlayTimeFormatted)
	}
	// 250000 cm = 2500 m = 2.5 km.
	if p.Summary.DistanceWalkedFormatted != "2.5 km" {
		t.Errorf("unexpected distance %q", p.Summary.DistanceWalkedFormatted)
	}
}

func TestPlayerStatsMissing(t *testing.T) {
	svc, _ := fixtureService(t)

	if _, ok := svc.PlayerStats("nobody"); ok {
		t.Error("expected missing player to report not found")
	}
}

func TestCorruptStatsFileSkipped(t *testing.T) {
	svc, base := fixtureService(t)
	writeFixture(t, filepath.Join(base, "world", "stats", "uuid-alice.json"), aliceStats)
	writeFixture(t, filepath.Join(base, "world", "stats", "broken.json"), "{not json")

	stats := svc.ServerStats()
	if stats.TotalPlayers != 1 {
		t.Errorf("expected corrupt file skipped, got %d players", stats.TotalPlayers)
	}
}

func TestNameFallsBackToUUIDPrefix(t *testing.T) {
	svc, base := fixtureService(t)
	writeFixture(t, filepath.Join(base, "world", "stats", "0123456789abcdef.json"), bobStats)

	stats := svc.ServerStats()
	if stats.TotalPlayers != 1 || stats.Players[0].Name != "01234567" {
		t.Errorf("expected uuid prefix name, got %+v", stats.Players)
	}
}
