package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func daysFromNow(n int) *time.Time {
	t := BeginningOfDay(time.Now()).AddDate(0, 0, n)
	return &t
}

func TestClassifyDeadlineBoundaries(t *testing.T) {
	assert.Equal(t, UrgencyUrgent, ClassifyDeadline(daysFromNow(6)))
	assert.Equal(t, UrgencyWarning, ClassifyDeadline(daysFromNow(7)))
	assert.Equal(t, UrgencyWarning, ClassifyDeadline(daysFromNow(14)))
	assert.Equal(t, UrgencySafe, ClassifyDeadline(daysFromNow(15)))
	// overdue is urgent, not a separate state
	assert.Equal(t, UrgencyUrgent, ClassifyDeadline(daysFromNow(-3)))
}

func TestClassifyDeadlineMissingDate(t *testing.T) {
	assert.Equal(t, UrgencyNone, ClassifyDeadline(nil))
	zero := time.Time{}
	assert.Equal(t, UrgencyNone, ClassifyDeadline(&zero))
}

func TestClassifyAgingBoundaries(t *testing.T) {
	assert.Equal(t, AgingFresh, ClassifyAging(daysFromNow(-6)))
	assert.Equal(t, AgingStale, ClassifyAging(daysFromNow(-7)))
	// aging uses 30, not 14: the threshold sets are different on purpose
	assert.Equal(t, AgingStale, ClassifyAging(daysFromNow(-30)))
	assert.Equal(t, AgingVeryStale, ClassifyAging(daysFromNow(-31)))
}

func TestClassifyAgingMissingDate(t *testing.T) {
	assert.Equal(t, AgingNone, ClassifyAging(nil))
}
