package model

// EventKind classifies a parsed log line.
type EventKind string

const (
	KindChat        EventKind = "CHAT"
	KindJoin        EventKind = "JOIN"
	KindLeave       EventKind = "LEAVE"
	KindDeath       EventKind = "DEATH"
	KindAdvancement EventKind = "ADVANCEMENT"
	KindOther       EventKind = "OTHER"
)

// Layouts for the date/time strings carried by LogEvent.
const (
	ClockLayout    = "15:04:05"
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04:05"
)

// LogEvent is a single classified line from the server console.
// Timestamp is the clock time printed by the server; FullDateTime and Date
// are reconstructed from the source file's date context, since the console
// only prints the time of day.
type LogEvent struct {
	Timestamp    string    `json:"timestamp"`
	FullDateTime string    `json:"fullDateTime"`
	Date         string    `json:"date"`
	Kind         EventKind `json:"type"`
	PlayerName   string    `json:"playerName,omitempty"`
	Message      string    `json:"message"`
	RawLine      string    `json:"rawLine"`
}

// RawLine is an unparsed line read from the live log, tagged with its source path.
type RawLine struct {
	Text   string
	Source string
}

// LiveUpdate is the envelope pushed to WebSocket subscribers.
type LiveUpdate struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
