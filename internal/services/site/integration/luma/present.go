package luma

import (
	"sort"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"
)

const (
	// DefaultTimezone is used when an event carries no timezone.
	DefaultTimezone = "Europe/Helsinki"
	// DescriptionLimit is the teaser length used on event cards.
	DescriptionLimit = 200

	dateLayout   = "Mon, Jan 2, 2006"
	timeLayout   = "3:04 PM"
	dateFallback = "Date TBA"
	timeFallback = "Time TBA"
)

// Split partitions entries around now. Upcoming events (start >= now) are
// sorted soonest first; past events most recent first. Entries without a
// parseable start are dropped.
func Split(entries []Entry, now time.Time) (upcoming []Entry, past []Entry) {
	for _, entry := range entries {
		start, ok := entry.Start()
		if !ok {
			continue
		}
		if start.Before(now) {
			past = append(past, entry)
			continue
		}
		upcoming = append(upcoming, entry)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		a, _ := upcoming[i].Start()
		b, _ := upcoming[j].Start()
		return a.Before(b)
	})
	sort.SliceStable(past, func(i, j int) bool {
		a, _ := past[i].Start()
		b, _ := past[j].Start()
		return a.After(b)
	})
	return upcoming, past
}

// FormatDate renders the event start date, e.g. "Thu, Jan 15, 2026".
func FormatDate(entry Entry) string {
	local, ok := localStart(entry)
	if !ok {
		return dateFallback
	}
	return local.Format(dateLayout)
}

// FormatTime renders the event start time, e.g. "6:30 PM".
func FormatTime(entry Entry) string {
	local, ok := localStart(entry)
	if !ok {
		return timeFallback
	}
	return local.Format(timeLayout)
}

func localStart(entry Entry) (time.Time, bool) {
	start, ok := entry.Start()
	if !ok {
		return time.Time{}, false
	}
	zone := strings.TrimSpace(entry.Event.Timezone)
	if zone == "" {
		zone = DefaultTimezone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, false
	}
	return start.In(loc), true
}

// Truncate shortens description to at most limit characters, cutting at the
// last space inside the limit when there is one, and appends "...". It
// reports whether anything was cut.
func Truncate(description string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(description) <= limit {
		return description, false
	}
	runes := []rune(description)
	head := string(runes[:limit])
	cut := strings.LastIndex(head, " ")
	if cut <= 0 {
		return head + "...", true
	}
	return head[:cut] + "...", true
}
