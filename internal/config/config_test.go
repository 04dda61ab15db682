package config

import "testing"

func TestPathDerivation(t *testing.T) {
	c := Config{StatsPath: "/data/world/stats"}

	if got := c.BasePath(); got != "/data" {
		t.Errorf("expected base /data, got %q", got)
	}
	if got := c.LogsDir(); got != "/data/logs" {
		t.Errorf("expected logs dir /data/logs, got %q", got)
	}
	if got := c.LatestLogPath(); got != "/data/logs/latest.log" {
		t.Errorf("expected latest log path, got %q", got)
	}
	if got := c.ServerPropertiesPath(); got != "/data/server.properties" {
		t.Errorf("expected server.properties path, got %q", got)
	}
	if got := c.RconEnvPath(); got != "/data/.rcon-cli.env" {
		t.Errorf("expected rcon env path, got %q", got)
	}
	if got := c.UserCachePath(); got != "/data/usercache.json" {
		t.Errorf("expected usercache path, got %q", got)
	}
}

func TestPathDerivationUnconventionalLayout(t *testing.T) {
	// Without the /world/stats suffix, fall back to walking up two levels.
	c := Config{StatsPath: "/srv/minecraft/stats"}

	if got := c.BasePath(); got != "/srv" {
		t.Errorf("expected base /srv, got %q", got)
	}
}
