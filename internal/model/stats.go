package model

// StatsFile is the root of a per-player statistics JSON file written by the
// server under world/stats/<uuid>.json.
type StatsFile struct {
	Stats       StatsCategories `json:"stats"`
	DataVersion int             `json:"DataVersion"`
}

// StatsCategories holds the counter maps the server tracks per player.
// Keys inside each map are namespaced item/block/entity ids.
type StatsCategories struct {
	Mined    map[string]int64 `json:"minecraft:mined"`
	Broken   map[string]int64 `json:"minecraft:broken"`
	Crafted  map[string]int64 `json:"minecraft:crafted"`
	Used     map[string]int64 `json:"minecraft:used"`
	PickedUp map[string]int64 `json:"minecraft:picked_up"`
	Dropped  map[string]int64 `json:"minecraft:dropped"`
	Killed   map[string]int64 `json:"minecraft:killed"`
	KilledBy map[string]int64 `json:"minecraft:killed_by"`
	Custom   map[string]int64 `json:"minecraft:custom"`
}

// PlayerCacheEntry is one record of usercache.json, mapping uuid to name.
type PlayerCacheEntry struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	ExpiresOn string `json:"expiresOn,omitempty"`
}

// PlayerStats pairs a player's raw counters with a display summary.
type PlayerStats struct {
	UUID    string             `json:"uuid"`
	Name    string             `json:"name"`
	Stats   StatsCategories    `json:"stats"`
	Summary PlayerStatsSummary `json:"summary"`
}

type PlayerStatsSummary struct {
	TotalBlocksMined        int64  `json:"totalBlocksMined"`
	TotalItemsCrafted       int64  `json:"totalItemsCrafted"`
	TotalMobsKilled         int64  `json:"totalMobsKilled"`
	TotalDeaths             int64  `json:"totalDeaths"`
	PlayTimeTicks           int64  `json:"playTimeTicks"`
	PlayTimeFormatted       string `json:"playTimeFormatted"`
	DistanceWalkedCm        int64  `json:"distanceWalkedCm"`
	DistanceWalkedFormatted string `json:"distanceWalkedFormatted"`
	Jumps                   int64  `json:"jumps"`
}

// ServerStats is the server-wide aggregation across every known player.
type ServerStats struct {
	TotalPlayers int           `json:"totalPlayers"`
	Players      []PlayerStats `json:"players"`
	Leaderboards Leaderboards  `json:"leaderboards"`
	ServerTotals ServerTotals  `json:"serverTotals"`
	LastUpdated  string        `json:"lastUpdated"`
}

type Leaderboards struct {
	MostBlocksMined    []LeaderboardEntry `json:"mostBlocksMined"`
	MostMobsKilled     []LeaderboardEntry `json:"mostMobsKilled"`
	MostPlayTime       []LeaderboardEntry `json:"mostPlayTime"`
	MostDeaths         []LeaderboardEntry `json:"mostDeaths"`
	MostDistanceWalked []LeaderboardEntry `json:"mostDistanceWalked"`
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	PlayerName     string `json:"playerName"`
	PlayerUUID     string `json:"playerUuid"`
	Value          int64  `json:"value"`
	FormattedValue string `json:"formattedValue"`
}

type ServerTotals struct {
	TotalBlocksMined       int64  `json:"totalBlocksMined"`
	TotalItemsCrafted      int64  `json:"totalItemsCrafted"`
	TotalMobsKilled        int64  `json:"totalMobsKilled"`
	TotalDeaths            int64  `json:"totalDeaths"`
	TotalPlayTimeTicks     int64  `json:"totalPlayTimeTicks"`
	TotalPlayTimeFormatted string `json:"totalPlayTimeFormatted"`
}
