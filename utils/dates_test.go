package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 50, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 10, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(start, end))
	assert.Equal(t, -1, DaysBetween(end, start))
	assert.Equal(t, 0, DaysBetween(start, start))
}

func TestParseDateSpellings(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-03-05", "2024/03/05", "2024.03.05", "2024-3-5", " 2024-03-05 "} {
		got, ok := ParseDate(s)
		assert.True(t, ok, "input %q", s)
		assert.True(t, got.Equal(want), "input %q", s)
	}

	for _, s := range []string{"", "not a date", "03/05/2024"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, "input %q", s)
	}
}
