// Package board reduces normalized departures to the subset a departure
// board actually shows: matching destination and line, leaving far enough
// in the future, annotated with minutes until departure.
package board

import (
	"time"

	"github.com/mvgsensor/mvg-go/internal/models"
)

// Options configures the filter. A destination or line list that is empty
// or starts with "" disables that filter.
type Options struct {
	// Destinations keeps only departures towards one of these headsigns.
	Destinations []string
	// Lines keeps only departures of these line labels.
	Lines []string
	// TimeOffset drops departures leaving in fewer than this many minutes
	// (e.g. the walking time to the station).
	TimeOffset int
}

// MinutesUntil returns the whole minutes between now and a unix-second
// departure time. The division truncates toward zero, so a departure 90
// seconds in the past yields -1, not -2.
func MinutesUntil(departure int64, now time.Time) int {
	return int((departure - now.Unix()) / 60)
}

// Filter reduces departures to board entries against opts, evaluating
// minutes-until-departure at now. Input order is preserved; no entries are
// deduplicated and no cap beyond the upstream request limit is applied.
func Filter(departures []models.Departure, opts Options, now time.Time) []models.BoardEntry {
	entries := make([]models.BoardEntry, 0, len(departures))
	for _, dep := range departures {
		if filterActive(opts.Destinations) && !contains(opts.Destinations, dep.Destination) {
			continue
		}
		if filterActive(opts.Lines) && !contains(opts.Lines, dep.Line) {
			continue
		}

		mins := MinutesUntil(dep.Time, now)
		if mins < opts.TimeOffset {
			continue
		}

		entries = append(entries, models.BoardEntry{
			Destination: dep.Destination,
			Line:        dep.Line,
			Type:        dep.Type,
			Cancelled:   dep.Cancelled,
			Icon:        dep.Icon,
			Platform:    dep.Platform,
			TimeInMins:  mins,
		})
	}
	return entries
}

func filterActive(values []string) bool {
	return len(values) > 0 && values[0] != ""
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
