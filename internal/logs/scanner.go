// Package logs reads the server console: the live latest.log tail and the
// rotated gzip archives next to it, turning raw lines into classified events.
package logs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/parser"
)

// The live file's lines belong to "today" in the server's reference zone.
var serverZone = model.ServerZone()

// archiveNameRe matches rotated archives like 2024-01-05-1.log.gz. The first
// group is the calendar date the archive's lines belong to.
var archiveNameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-\d+\.log\.gz$`)

// Scanner reads the live log and its archives under a single logs directory.
// Every operation is a fresh filesystem scan; no state survives between calls.
type Scanner struct {
	dir        string
	classifier *parser.Classifier
	now        func() time.Time
}

// NewScanner creates a Scanner over the given logs directory.
func NewScanner(dir string) *Scanner {
	return &Scanner{
		dir:        dir,
		classifier: parser.New(),
		now:        time.Now,
	}
}

func (s *Scanner) today() time.Time {
	return s.now().In(serverZone)
}

// RecentLogs classifies the last maxLines lines of the live file. Missing
// file yields an empty slice.
func (s *Scanner) RecentLogs(maxLines int) []model.LogEvent {
	path := filepath.Join(s.dir, "latest.log")

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("latest log not readable")
		return nil
	}
	defer f.Close()

	return takeLast(s.classifyLines(f, s.today()), maxLines)
}

// RecentEvents returns the last maxEvents classified events (chat, joins,
// leaves, deaths, advancements) from the live file tail.
func (s *Scanner) RecentEvents(maxEvents int) []model.LogEvent {
	return takeLast(withoutKind(s.RecentLogs(500), model.KindOther), maxEvents)
}

// RecentChat returns the last maxMessages chat messages from the live file.
func (s *Scanner) RecentChat(maxMessages int) []model.LogEvent {
	return takeLast(onlyKind(s.RecentLogs(500), model.KindChat), maxMessages)
}

// HistoricalEvents scans the archives of the last days days plus the live
// file, oldest first, and returns the newest maxEvents events.
func (s *Scanner) HistoricalEvents(days, maxEvents int) []model.LogEvent {
	return takeLast(withoutKind(s.scanWindow(days), model.KindOther), maxEvents)
}

// HistoricalChat is HistoricalEvents restricted to chat messages.
func (s *Scanner) HistoricalChat(days, maxMessages int) []model.LogEvent {
	return takeLast(onlyKind(s.scanWindow(days), model.KindChat), maxMessages)
}

// scanWindow reads qualifying archives in ascending date order, then the
// live file with today's date context. Events come out in file order, which
// keeps the combined sequence time-ordered across the rotation boundaries.
func (s *Scanner) scanWindow(days int) []model.LogEvent {
	var events []model.LogEvent

	for _, arc := range s.archivesSince(days) {
		events = append(events, s.readArchive(arc.path, arc.date)...)
	}

	path := filepath.Join(s.dir, "latest.log")
	if f, err := os.Open(path); err == nil {
		events = append(events, s.classifyLines(f, s.today())...)
		f.Close()
	} else {
		log.Warn().Str("path", path).Err(err).Msg("latest log not readable")
	}

	return events
}

type archiveFile struct {
	path string
	date time.Time
}

// archivesSince lists rotated archives whose filename date falls on or after
// today minus days. Files that don't match the rotation naming are skipped.
func (s *Scanner) archivesSince(days int) []archiveFile {
	matches, err := doublestar.FilepathGlob(filepath.Join(s.dir, "*.log.gz"))
	if err != nil {
		log.Warn().Str("dir", s.dir).Err(err).Msg("cannot list log archives")
		return nil
	}

	today := s.today()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, serverZone).
		AddDate(0, 0, -days)

	var archives []archiveFile
	for _, m := range matches {
		name := filepath.Base(m)
		g := archiveNameRe.FindStringSubmatch(name)
		if g == nil {
			log.Debug().Str("file", name).Msg("skipping archive with unrecognized name")
			continue
		}
		date, err := time.ParseInLocation("2006-01-02", g[1], serverZone)
		if err != nil {
			log.Debug().Str("file", name).Msg("skipping archive with unparseable date")
			continue
		}
		if date.Before(cutoff) {
			continue
		}
		archives = append(archives, archiveFile{path: m, date: date})
	}

	// Ascending filename order doubles as ascending date order because the
	// rotation scheme puts the date first.
	sort.Slice(archives, func(i, j int) bool {
		return filepath.Base(archives[i].path) < filepath.Base(archives[j].path)
	})

	return archives
}

// readArchive decompresses one rotated archive and classifies its lines
// under the archive's own date context. A corrupt archive is skipped.
func (s *Scanner) readArchive(path string, date time.Time) []model.LogEvent {
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("cannot open archive")
		return nil
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("corrupt archive, skipping")
		return nil
	}
	defer gz.Close()

	return s.classifyLines(gz, date)
}

// classifyLines runs the classifier over every line of r with the given
// date context. Lines without a timestamp produce nothing.
func (s *Scanner) classifyLines(r io.Reader, date time.Time) []model.LogEvent {
	var events []model.LogEvent

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ev, ok := s.classifier.Classify(scanner.Text(), date); ok {
			events = append(events, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("read error while scanning log lines")
	}

	return events
}

func takeLast(events []model.LogEvent, n int) []model.LogEvent {
	if n <= 0 || len(events) <= n {
		return events
	}
	return events[len(events)-n:]
}

func onlyKind(events []model.LogEvent, kind model.EventKind) []model.LogEvent {
	var out []model.LogEvent
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func withoutKind(events []model.LogEvent, kind model.EventKind) []model.LogEvent {
	var out []model.LogEvent
	for _, ev := range events {
		if ev.Kind != kind {
			out = append(out, ev)
		}
	}
	return out
}
