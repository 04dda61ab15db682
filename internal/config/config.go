package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// statsSuffix is the fixed tail of the stats path inside the server data
// directory. Every other server file is located by replacing it.
const statsSuffix = "/world/stats"

// Config holds the runtime settings for craftwatch. All server-side file
// locations are derived from StatsPath by fixed path substitution.
type Config struct {
	StatsPath  string
	ServerName string
	Port       string
}

// Load reads settings from viper (config file, environment, flags).
func Load() Config {
	return Config{
		StatsPath:  viper.GetString("stats_path"),
		ServerName: viper.GetString("server_name"),
		Port:       viper.GetString("port"),
	}
}

// SetDefaults registers the default configuration values.
func SetDefaults() {
	viper.SetDefault("stats_path", "/data/world/stats")
	viper.SetDefault("server_name", "Minecraft Server")
	viper.SetDefault("port", "8080")
}

// BasePath returns the server data directory that StatsPath lives under.
func (c Config) BasePath() string {
	if strings.HasSuffix(c.StatsPath, statsSuffix) {
		return strings.TrimSuffix(c.StatsPath, statsSuffix)
	}
	// Unconventional layout: walk two levels up from .../world/stats.
	return filepath.Dir(filepath.Dir(c.StatsPath))
}

// LogsDir returns the directory holding latest.log and rotated archives.
func (c Config) LogsDir() string {
	return filepath.Join(c.BasePath(), "logs")
}

// LatestLogPath returns the live console log file.
func (c Config) LatestLogPath() string {
	return filepath.Join(c.LogsDir(), "latest.log")
}

// UserCachePath returns the uuid-to-name cache maintained by the server.
func (c Config) UserCachePath() string {
	return filepath.Join(c.BasePath(), "usercache.json")
}

// ServerPropertiesPath returns the server.properties file.
func (c Config) ServerPropertiesPath() string {
	return filepath.Join(c.BasePath(), "server.properties")
}

// FabricManifestPath returns the Fabric loader manifest, used for version
// detection on modded servers.
func (c Config) FabricManifestPath() string {
	return filepath.Join(c.BasePath(), ".fabric-manifest.json")
}

// RconEnvPath returns the env file the server drops its RCON password into.
func (c Config) RconEnvPath() string {
	return filepath.Join(c.BasePath(), ".rcon-cli.env")
}
