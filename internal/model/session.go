package model

// PlayerSession is one connected interval for a player, reconstructed from
// join/leave events. Leave fields are nil when the session is still open or
// when the true leave time is unknown (a session force-closed by a new join).
type PlayerSession struct {
	PlayerName        string  `json:"playerName"`
	PlayerUUID        *string `json:"playerUuid"`
	JoinTime          string  `json:"joinTime"`
	JoinTimestamp     int64   `json:"joinTimestamp"`
	LeaveTime         *string `json:"leaveTime"`
	LeaveTimestamp    *int64  `json:"leaveTimestamp"`
	DurationMinutes   *int64  `json:"durationMinutes"`
	DurationFormatted string  `json:"durationFormatted"`
}

// SessionStats summarizes the sessions reconstructed from one log window.
type SessionStats struct {
	TotalSessions           int                        `json:"totalSessions"`
	AverageSessionMinutes   int64                      `json:"averageSessionMinutes"`
	AverageSessionFormatted string                     `json:"averageSessionFormatted"`
	LongestSession          *PlayerSession             `json:"longestSession"`
	RecentSessions          []PlayerSession            `json:"recentSessions"`
	SessionsByPlayer        map[string][]PlayerSession `json:"sessionsByPlayer"`
}

// ActivityStats holds histograms and peaks derived from historical events.
// PeakPlayers counts distinct joiners on a single calendar day; it is not a
// maximum-concurrent-online figure.
type ActivityStats struct {
	HourlyActivity  map[int]int    `json:"hourlyActivity"`
	DailyActivity   map[string]int `json:"dailyActivity"`
	WeekdayActivity map[string]int `json:"weekdayActivity"`
	MostActiveHour  int            `json:"mostActiveHour"`
	MostActiveDay   string         `json:"mostActiveDay"`
	PeakPlayers     int            `json:"peakPlayers"`
	PeakPlayersDate string         `json:"peakPlayersDate"`
}
