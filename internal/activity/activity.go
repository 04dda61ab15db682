// Package activity derives hourly, daily and weekday histograms plus peak
// statistics from the historical event stream.
package activity

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
)

// historicalCap bounds the event window one analysis call reads.
const historicalCap = 10000

// weekdays is the fixed label set, Monday first.
var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// EventSource supplies the ordered event window to analyze.
type EventSource interface {
	HistoricalEvents(days, maxEvents int) []model.LogEvent
}

// Analyzer derives activity histograms from a log event source.
type Analyzer struct {
	source EventSource
}

func NewAnalyzer(source EventSource) *Analyzer {
	return &Analyzer{source: source}
}

// ActivityStats computes the histograms over the last days days.
func (a *Analyzer) ActivityStats(days int) model.ActivityStats {
	return Compute(a.source.HistoricalEvents(days, historicalCap))
}

// Compute buckets every event by hour, date and weekday, and finds the
// calendar date with the most distinct joiners. That per-date joiner count
// is the contracted meaning of peakPlayers; it does not measure how many
// players were online at the same moment.
func Compute(events []model.LogEvent) model.ActivityStats {
	hourly := make(map[int]int, 24)
	for h := 0; h < 24; h++ {
		hourly[h] = 0
	}
	daily := make(map[string]int)
	weekday := make(map[string]int, len(weekdays))
	for _, d := range weekdays {
		weekday[d] = 0
	}

	joinersByDate := make(map[string]map[string]struct{})

	for _, ev := range events {
		dt, err := time.ParseInLocation(model.DateTimeLayout, ev.FullDateTime, model.ServerZone())
		if err != nil {
			log.Debug().Str("fullDateTime", ev.FullDateTime).Msg("skipping event with unparseable datetime")
			continue
		}

		hourly[dt.Hour()]++
		daily[ev.Date]++
		weekday[weekdayLabel(dt.Weekday())]++

		if ev.Kind == model.KindJoin && ev.PlayerName != "" {
			set, ok := joinersByDate[ev.Date]
			if !ok {
				set = make(map[string]struct{})
				joinersByDate[ev.Date] = set
			}
			set[ev.PlayerName] = struct{}{}
		}
	}

	mostActiveHour := 0
	for h := 1; h < 24; h++ {
		if hourly[h] > hourly[mostActiveHour] {
			mostActiveHour = h
		}
	}

	mostActiveDay := weekdays[0]
	for _, d := range weekdays[1:] {
		if weekday[d] > weekday[mostActiveDay] {
			mostActiveDay = d
		}
	}

	peakPlayers := 0
	peakDate := "N/A"
	for date, joiners := range joinersByDate {
		if len(joiners) > peakPlayers || (len(joiners) == peakPlayers && date < peakDate) {
			peakPlayers = len(joiners)
			peakDate = date
		}
	}

	return model.ActivityStats{
		HourlyActivity:  hourly,
		DailyActivity:   daily,
		WeekdayActivity: weekday,
		MostActiveHour:  mostActiveHour,
		MostActiveDay:   mostActiveDay,
		PeakPlayers:     peakPlayers,
		PeakPlayersDate: peakDate,
	}
}

func weekdayLabel(d time.Weekday) string {
	if d == time.Sunday {
		return weekdays[6]
	}
	return weekdays[int(d)-1]
}
