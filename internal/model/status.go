package model

// OnlinePlayer is one entry of the current roster. UUID and JoinedAt are
// only known when the roster was reconstructed from log events.
type OnlinePlayer struct {
	Name     string  `json:"name"`
	UUID     *string `json:"uuid"`
	JoinedAt *string `json:"joinedAt"`
}

// ServerStatus is a point-in-time view of the running server.
type ServerStatus struct {
	Online        bool           `json:"online"`
	PlayerCount   int            `json:"playerCount"`
	MaxPlayers    int            `json:"maxPlayers"`
	OnlinePlayers []OnlinePlayer `json:"onlinePlayers"`
	MOTD          string         `json:"motd"`
	Version       string         `json:"version"`
	LastUpdated   int64          `json:"lastUpdated"`
}
