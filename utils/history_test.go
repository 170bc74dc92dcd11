package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEncodeParse(t *testing.T) {
	entries := []HistoryEntry{
		{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Text: "feedback received"},
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Text: "shipped 2kg"},
	}
	encoded := EncodeHistory(entries)
	assert.Equal(t, "【2024-03-05】feedback received ||| 【2024-02-01】shipped 2kg", encoded)

	parsed := ParseHistory(encoded)
	require.Len(t, parsed, 2)
	assert.Equal(t, "feedback received", parsed[0].Text)
	assert.True(t, parsed[0].Date.Equal(entries[0].Date))
	assert.Equal(t, "shipped 2kg", parsed[1].Text)
}

func TestPrependHistoryKeepsNewestFirst(t *testing.T) {
	log := PrependHistory("", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "first")
	log = PrependHistory(log, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), "second")

	parsed := ParseHistory(log)
	require.Len(t, parsed, 2)
	assert.Equal(t, "second", parsed[0].Text)
	assert.Equal(t, "first", parsed[1].Text)
}

func TestParseHistoryFallbacks(t *testing.T) {
	// no bracket prefix: whole segment is text, dated today
	parsed := ParseHistory("legacy note without a date")
	require.Len(t, parsed, 1)
	assert.Equal(t, "legacy note without a date", parsed[0].Text)
	assert.Equal(t, BeginningOfDay(time.Now()), parsed[0].Date)

	// unparseable bracket date also falls back to today
	parsed = ParseHistory("【not a date】still kept")
	require.Len(t, parsed, 1)
	assert.Equal(t, "still kept", parsed[0].Text)

	assert.Nil(t, ParseHistory(""))
	assert.Nil(t, ParseHistory("   "))
}
