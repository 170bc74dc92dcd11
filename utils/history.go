// utils/history.go
package utils

import (
	"regexp"
	"strings"
	"time"
)

// HistorySeparator joins sample history entries, newest first.
const HistorySeparator = " ||| "

var historyEntryPattern = regexp.MustCompile(`(?s)^【(.*?)】(.*)$`)

type HistoryEntry struct {
	Date time.Time
	Text string
}

// EncodeHistory renders entries as "【2006-01-02】text" joined by the
// separator, in the order given.
func EncodeHistory(entries []HistoryEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, "【"+e.Date.Format(DateLayout)+"】"+e.Text)
	}
	return strings.Join(parts, HistorySeparator)
}

// PrependHistory adds a new entry at the head of an encoded log (the log is
// kept newest-first).
func PrependHistory(log string, date time.Time, text string) string {
	entry := "【" + date.Format(DateLayout) + "】" + text
	if log == "" {
		return entry
	}
	return entry + HistorySeparator + log
}

// ParseHistory decodes an encoded log. An entry without the bracket-date
// prefix is kept whole as text and dated today; empty segments are skipped.
func ParseHistory(log string) []HistoryEntry {
	if strings.TrimSpace(log) == "" {
		return nil
	}
	var entries []HistoryEntry
	for _, segment := range strings.Split(log, HistorySeparator) {
		if segment == "" {
			continue
		}
		m := historyEntryPattern.FindStringSubmatch(segment)
		if m == nil {
			entries = append(entries, HistoryEntry{Date: BeginningOfDay(time.Now()), Text: segment})
			continue
		}
		date, ok := ParseDate(m[1])
		if !ok {
			date = BeginningOfDay(time.Now())
		}
		entries = append(entries, HistoryEntry{Date: date, Text: m[2]})
	}
	return entries
}
