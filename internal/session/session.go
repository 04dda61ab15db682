// Package session reconstructs player sessions from the ordered event
// stream by pairing joins with leaves.
package session

import (
	"fmt"
	"time"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
)

// historicalCap bounds the event window one analysis call reads.
const historicalCap = 5000

// recentCount is how many sessions the summary reports, newest first.
const recentCount = 20

// EventSource supplies the ordered event window to analyze.
type EventSource interface {
	HistoricalEvents(days, maxEvents int) []model.LogEvent
}

// Analyzer derives session summaries from a log event source.
type Analyzer struct {
	source EventSource
}

func NewAnalyzer(source EventSource) *Analyzer {
	return &Analyzer{source: source}
}

// SessionStats reconstructs and summarizes the sessions of the last days days.
func (a *Analyzer) SessionStats(days int) model.SessionStats {
	return Reduce(a.source.HistoricalEvents(days, historicalCap))
}

// Reduce runs the join/leave pairing state machine over an ordered event
// sequence and summarizes the resulting sessions.
//
// A Join for a player who already has an open Join force-closes the previous
// session: the new Join's time bounds the duration, but the leave fields stay
// nil because the true leave time is unknown. A Leave without an open Join is
// dropped. Players still joined at the end of the stream come out as open
// sessions labeled "online".
func Reduce(events []model.LogEvent) model.SessionStats {
	var sessions []model.PlayerSession

	openJoins := make(map[string]model.LogEvent)
	var openOrder []string

	for _, ev := range events {
		switch ev.Kind {
		case model.KindJoin:
			if ev.PlayerName == "" {
				continue
			}
			if prev, ok := openJoins[ev.PlayerName]; ok {
				sessions = append(sessions, closedSession(prev, ev, true))
			} else {
				openOrder = append(openOrder, ev.PlayerName)
			}
			openJoins[ev.PlayerName] = ev

		case model.KindLeave:
			if prev, ok := openJoins[ev.PlayerName]; ok {
				sessions = append(sessions, closedSession(prev, ev, false))
				delete(openJoins, ev.PlayerName)
				openOrder = removeName(openOrder, ev.PlayerName)
			}
		}
	}

	for _, name := range openOrder {
		join := openJoins[name]
		sessions = append(sessions, model.PlayerSession{
			PlayerName:        name,
			JoinTime:          join.FullDateTime,
			JoinTimestamp:     parseStamp(join.FullDateTime),
			DurationFormatted: "online",
		})
	}

	return summarize(sessions)
}

// closedSession builds a session from a join and the event that ended it.
// When the end was a new join for the same player, the real leave time is
// unknown: the duration is still computed but the leave fields stay nil.
func closedSession(join, end model.LogEvent, byNewJoin bool) model.PlayerSession {
	joinStamp := parseStamp(join.FullDateTime)
	endStamp := parseStamp(end.FullDateTime)

	minutes := int64(0)
	if endStamp > joinStamp {
		minutes = (endStamp - joinStamp) / 60000
	}

	s := model.PlayerSession{
		PlayerName:        join.PlayerName,
		JoinTime:          join.FullDateTime,
		JoinTimestamp:     joinStamp,
		DurationMinutes:   &minutes,
		DurationFormatted: FormatDuration(minutes),
	}
	if !byNewJoin {
		leaveTime := end.FullDateTime
		s.LeaveTime = &leaveTime
		s.LeaveTimestamp = &endStamp
	}
	return s
}

func summarize(sessions []model.PlayerSession) model.SessionStats {
	var completed []model.PlayerSession
	for _, s := range sessions {
		if s.DurationMinutes != nil && *s.DurationMinutes > 0 {
			completed = append(completed, s)
		}
	}

	var avg int64
	if len(completed) > 0 {
		var sum int64
		for _, s := range completed {
			sum += *s.DurationMinutes
		}
		avg = sum / int64(len(completed))
	}

	var longest *model.PlayerSession
	for i := range completed {
		if longest == nil || *completed[i].DurationMinutes > *longest.DurationMinutes {
			longest = &completed[i]
		}
	}

	recent := make([]model.PlayerSession, 0, recentCount)
	for i := len(sessions) - 1; i >= 0 && len(recent) < recentCount; i-- {
		recent = append(recent, sessions[i])
	}

	byPlayer := make(map[string][]model.PlayerSession)
	for _, s := range sessions {
		byPlayer[s.PlayerName] = append(byPlayer[s.PlayerName], s)
	}

	return model.SessionStats{
		TotalSessions:           len(sessions),
		AverageSessionMinutes:   avg,
		AverageSessionFormatted: FormatDuration(avg),
		LongestSession:          longest,
		RecentSessions:          recent,
		SessionsByPlayer:        byPlayer,
	}
}

// parseStamp converts a stored fullDateTime back to epoch millis. A string
// that fails to re-parse falls back to the current time.
func parseStamp(fullDateTime string) int64 {
	t, err := time.ParseInLocation(model.DateTimeLayout, fullDateTime, model.ServerZone())
	if err != nil {
		return time.Now().UnixMilli()
	}
	return t.UnixMilli()
}

// FormatDuration renders a minute count for display.
func FormatDuration(minutes int64) string {
	switch {
	case minutes < 1:
		return "< 1 min"
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	default:
		hours := minutes / 60
		mins := minutes % 60
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
