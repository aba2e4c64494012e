package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingQuarterlyVatDueDates(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)

	deadlines := Upcoming(now, 200*24*time.Hour)

	var quarterly []time.Time
	for _, d := range deadlines {
		if d.Kind == KindVatPreregistration {
			quarterly = append(quarterly, d.DueDate)
		}
	}
	require.NotEmpty(t, quarterly)

	// Q4/2023 due Jan 10, Q1/2024 due Apr 10, Q2/2024 due Jul 10
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), quarterly[0])
	assert.Equal(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), quarterly[1])
	assert.Equal(t, time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC), quarterly[2])
}

func TestUpcomingMarksOverdue(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)

	deadlines := Upcoming(now, 200*24*time.Hour)

	var jan10 *int
	for i, d := range deadlines {
		if d.Kind == KindVatPreregistration && d.DueDate.Month() == time.January {
			jan10 = &i
			break
		}
	}
	require.NotNil(t, jan10)
	assert.True(t, deadlines[*jan10].Overdue)
	assert.Negative(t, deadlines[*jan10].RemainingDays)
}

func TestUpcomingYearlyReturns(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	deadlines := Upcoming(now, 365*24*time.Hour)

	var vatYearly, incomeTax int
	for _, d := range deadlines {
		switch d.Kind {
		case KindVatYearly:
			vatYearly++
			assert.Equal(t, time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC), d.DueDate)
		case KindIncomeTax:
			incomeTax++
		}
	}
	// the 2023 returns, due July 31 2024, are the only yearly ones in range
	assert.Equal(t, 1, vatYearly)
	assert.Equal(t, 1, incomeTax)
}

func TestUpcomingSortedByDueDate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	deadlines := Upcoming(now, 400*24*time.Hour)
	require.Greater(t, len(deadlines), 2)

	for i := 1; i < len(deadlines); i++ {
		assert.False(t, deadlines[i].DueDate.Before(deadlines[i-1].DueDate))
	}
}

func TestRemainingDaysCountsWholeDays(t *testing.T) {
	now := time.Date(2024, time.April, 8, 23, 30, 0, 0, time.UTC)
	due := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)

	// the late hour must not shave a day off
	assert.Equal(t, 2, remainingDays(now, due))
}
