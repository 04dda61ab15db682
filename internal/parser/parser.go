package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
)

// Line carries one raw console line together with the calendar date it
// belongs to. The server only prints a clock time per line, so the date has
// to come from outside: "today" for the live file, the filename date for a
// rotated archive.
type Line struct {
	Raw   string
	Clock string // "15:04:05", extracted from the leading bracket
	Date  time.Time
}

// Matcher recognizes one line shape and produces a typed event for it.
type Matcher interface {
	Match(line Line) (model.LogEvent, bool)
}

// Classifier tries an ordered set of matchers against each line; the first
// match wins. Lines without a clock-timestamp bracket yield no event.
type Classifier struct {
	matchers []Matcher
}

// New returns a Classifier with the standard matcher cascade:
// chat, join, leave, death, advancement, in that priority.
func New() *Classifier {
	return &Classifier{
		matchers: []Matcher{
			ChatMatcher{},
			JoinMatcher{},
			LeaveMatcher{},
			DeathMatcher{},
			AdvancementMatcher{},
		},
	}
}

var timestampRe = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2})\]`)

// Classify parses one raw line under the given date context. The boolean is
// false when the line carries no recognizable timestamp; every timestamped
// line produces an event, falling back to kind OTHER.
func (c *Classifier) Classify(raw string, date time.Time) (model.LogEvent, bool) {
	m := timestampRe.FindStringSubmatch(raw)
	if m == nil {
		return model.LogEvent{}, false
	}

	line := Line{Raw: raw, Clock: m[1], Date: date}

	for _, matcher := range c.matchers {
		if ev, ok := matcher.Match(line); ok {
			return ev, true
		}
	}

	// Timestamped but no specific shape: keep the trailing message text.
	return newEvent(line, model.KindOther, "", trailingMessage(raw)), true
}

// newEvent fills the time fields shared by every event kind.
func newEvent(line Line, kind model.EventKind, player, message string) model.LogEvent {
	date := line.Date.Format(model.DateLayout)
	return model.LogEvent{
		Timestamp:    line.Clock,
		FullDateTime: date + " " + line.Clock,
		Date:         date,
		Kind:         kind,
		PlayerName:   player,
		Message:      message,
		RawLine:      line.Raw,
	}
}

// trailingMessage strips the log prefix up to and including "INFO]: ".
// Lines from other thread contexts are kept whole.
func trailingMessage(raw string) string {
	if _, after, found := strings.Cut(raw, "INFO]: "); found {
		return after
	}
	return raw
}

// ---------------------------------------------------------------------------
// Chat
// ---------------------------------------------------------------------------

// ChatMatcher recognizes player chat. Servers with chat signing disabled
// prefix messages with "[Not Secure]"; both forms are accepted.
type ChatMatcher struct{}

var chatRe = regexp.MustCompile(`\[Server thread/INFO\]: (?:\[Not Secure\] )?<(\w+)> (.+)`)

func (ChatMatcher) Match(line Line) (model.LogEvent, bool) {
	m := chatRe.FindStringSubmatch(line.Raw)
	if m == nil {
		return model.LogEvent{}, false
	}
	return newEvent(line, model.KindChat, m[1], m[2]), true
}

// ---------------------------------------------------------------------------
// Join / Leave
// ---------------------------------------------------------------------------

// JoinMatcher recognizes "name[/addr] logged in" connection lines.
type JoinMatcher struct{}

var joinRe = regexp.MustCompile(`\[Server thread/INFO\]: (\w+)\[.+\] logged in`)

func (JoinMatcher) Match(line Line) (model.LogEvent, bool) {
	m := joinRe.FindStringSubmatch(line.Raw)
	if m == nil {
		return model.LogEvent{}, false
	}
	return newEvent(line, model.KindJoin, m[1], fmt.Sprintf("%s joined the server", m[1])), true
}

// LeaveMatcher recognizes "name left the game" disconnection lines.
type LeaveMatcher struct{}

var leaveRe = regexp.MustCompile(`\[Server thread/INFO\]: (\w+) left the game`)

func (LeaveMatcher) Match(line Line) (model.LogEvent, bool) {
	m := leaveRe.FindStringSubmatch(line.Raw)
	if m == nil {
		return model.LogEvent{}, false
	}
	return newEvent(line, model.KindLeave, m[1], fmt.Sprintf("%s left the server", m[1])), true
}

// ---------------------------------------------------------------------------
// Death
// ---------------------------------------------------------------------------

// DeathMatcher recognizes death messages by the fixed phrase list the server
// uses. The original console text is kept as the message.
type DeathMatcher struct{}

var deathRe = regexp.MustCompile(`\[Server thread/INFO\]: (\w+) (was slain|was killed|drowned|fell|burned|starved|died|blew up|hit the ground|went up in flames|walked into|tried to swim|was shot|was pummeled|was fireballed|was impaled|was squashed|was skewered|was pricked|suffocated|experienced kinetic|was blown up|was struck|withered)`)

func (DeathMatcher) Match(line Line) (model.LogEvent, bool) {
	m := deathRe.FindStringSubmatch(line.Raw)
	if m == nil {
		return model.LogEvent{}, false
	}
	return newEvent(line, model.KindDeath, m[1], trailingMessage(line.Raw)), true
}

// ---------------------------------------------------------------------------
// Advancement
// ---------------------------------------------------------------------------

// AdvancementMatcher recognizes advancement, challenge and goal lines.
type AdvancementMatcher struct{}

var advancementRe = regexp.MustCompile(`\[Server thread/INFO\]: (\w+) has (made the advancement|completed the challenge|reached the goal) \[(.+)\]`)

func (AdvancementMatcher) Match(line Line) (model.LogEvent, bool) {
	m := advancementRe.FindStringSubmatch(line.Raw)
	if m == nil {
		return model.LogEvent{}, false
	}
	return newEvent(line, model.KindAdvancement, m[1], fmt.Sprintf("%s earned [%s]", m[1], m[3])), true
}
