// Package status resolves the live server state: the online roster via RCON
// when a password is available, falling back to log-derived reconstruction,
// plus server metadata read off the data directory.
package status

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/config"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/rcon"
)

// The RCON endpoint is a fixed in-cluster address; only the password varies
// and is discovered from the server's env file each cycle.
const (
	rconHost = "minecraft.minecraft.svc.cluster.local"
	rconPort = 25575
)

var (
	rosterRe   = regexp.MustCompile(`online: (.+)$`)
	passwordRe = regexp.MustCompile(`RCON_PASSWORD=(.+)`)
	versionRe  = regexp.MustCompile(`"version"\s*:\s*"([^"]+)"`)
)

// LogSource supplies the recent live-file tail for roster fallback.
type LogSource interface {
	RecentLogs(maxLines int) []model.LogEvent
}

// executeFunc runs one RCON command; swapped out in tests.
type executeFunc func(host string, port int, password, command string) (string, error)

// Resolver composes the RCON client with the log-derived fallback and keeps
// the last computed status for cheap reads between refreshes.
type Resolver struct {
	cfg     config.Config
	logs    LogSource
	execute executeFunc

	mu     sync.RWMutex
	cached *model.ServerStatus
}

func NewResolver(cfg config.Config, logs LogSource) *Resolver {
	return &Resolver{
		cfg:  cfg,
		logs: logs,
		execute: func(host string, port int, password, command string) (string, error) {
			return rcon.NewClient(host, port, password).ExecuteCommand(command)
		},
	}
}

// Status returns the last refreshed status, refreshing first if none exists.
func (r *Resolver) Status() model.ServerStatus {
	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()

	if cached != nil {
		return *cached
	}
	return r.Refresh()
}

// Refresh recomputes the server status and caches it.
func (r *Resolver) Refresh() model.ServerStatus {
	players := r.OnlineRoster()
	props := r.serverProperties()

	maxPlayers := 20
	if v, err := strconv.Atoi(props["max-players"]); err == nil {
		maxPlayers = v
	}

	status := model.ServerStatus{
		Online:        true,
		PlayerCount:   len(players),
		MaxPlayers:    maxPlayers,
		OnlinePlayers: players,
		MOTD:          props["motd"],
		Version:       r.serverVersion(),
		LastUpdated:   time.Now().UnixMilli(),
	}

	r.mu.Lock()
	r.cached = &status
	r.mu.Unlock()

	return status
}

// OnlineRoster queries the authoritative roster over RCON. Without a
// password, or when the protocol call fails, it falls back to the
// approximate log-derived roster.
func (r *Resolver) OnlineRoster() []model.OnlinePlayer {
	password, ok := r.rconPassword()
	if !ok {
		return r.rosterFromLogs()
	}

	response, err := r.execute(rconHost, rconPort, password, "list")
	if err != nil {
		log.Warn().Err(err).Msg("rcon roster query failed, using log fallback")
		return r.rosterFromLogs()
	}

	players := make([]model.OnlinePlayer, 0)
	for _, name := range ParseRoster(response) {
		players = append(players, model.OnlinePlayer{Name: name})
	}
	return players
}

// ParseRoster extracts player names from a `list` command response such as
// "There are 2 of a max of 10 players online: Alice, Bob". A response with
// no online clause means an empty roster.
func ParseRoster(response string) []string {
	m := rosterRe.FindStringSubmatch(response)
	if m == nil {
		return nil
	}

	var names []string
	for _, part := range strings.Split(m[1], ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// rosterFromLogs rebuilds an approximate roster from the live tail: the last
// seen join per player, erased by a matching leave. It does not reconcile
// with historical sessions.
func (r *Resolver) rosterFromLogs() []model.OnlinePlayer {
	online := make(map[string]model.OnlinePlayer)
	var order []string

	for _, ev := range r.logs.RecentLogs(200) {
		switch ev.Kind {
		case model.KindJoin:
			if ev.PlayerName == "" {
				continue
			}
			joinedAt := ev.Timestamp
			if _, seen := online[ev.PlayerName]; !seen {
				order = append(order, ev.PlayerName)
			}
			online[ev.PlayerName] = model.OnlinePlayer{Name: ev.PlayerName, JoinedAt: &joinedAt}
		case model.KindLeave:
			if _, seen := online[ev.PlayerName]; seen {
				delete(online, ev.PlayerName)
				order = deleteName(order, ev.PlayerName)
			}
		}
	}

	players := make([]model.OnlinePlayer, 0, len(online))
	for _, name := range order {
		players = append(players, online[name])
	}
	return players
}

// rconPassword reads the password from the server's env file. An absent or
// unreadable file disables the protocol for this cycle.
func (r *Resolver) rconPassword() (string, bool) {
	raw, err := os.ReadFile(r.cfg.RconEnvPath())
	if err != nil {
		return "", false
	}
	m := passwordRe.FindStringSubmatch(string(raw))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// serverProperties parses the server.properties key=value file. Missing
// file yields an empty map.
func (r *Resolver) serverProperties() map[string]string {
	props := make(map[string]string)

	f, err := os.Open(r.cfg.ServerPropertiesPath())
	if err != nil {
		log.Warn().Err(err).Msg("server.properties not readable")
		return props
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, found := strings.Cut(line, "="); found {
			props[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return props
}

// serverVersion sniffs the Fabric loader manifest for a version string.
func (r *Resolver) serverVersion() string {
	raw, err := os.ReadFile(r.cfg.FabricManifestPath())
	if err != nil {
		return "Unknown"
	}
	m := versionRe.FindStringSubmatch(string(raw))
	if m == nil {
		return "Unknown"
	}
	return "Fabric " + m[1]
}

func deleteName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
