package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dates(ss ...string) []time.Time {
	out := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		out = append(out, date(s))
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	today := date("2026-03-10")

	tests := []struct {
		name    string
		dates   []time.Time
		current int
		longest int
	}{
		{
			name: "no activity",
		},
		{
			name:    "single day today",
			dates:   dates("2026-03-10"),
			current: 1,
			longest: 1,
		},
		{
			name:    "single day yesterday keeps streak alive",
			dates:   dates("2026-03-09"),
			current: 1,
			longest: 1,
		},
		{
			name:    "two day old activity breaks current streak",
			dates:   dates("2026-03-08"),
			current: 0,
			longest: 1,
		},
		{
			name:    "consecutive run ending today",
			dates:   dates("2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10"),
			current: 4,
			longest: 4,
		},
		{
			name:    "gap resets current but not longest",
			dates:   dates("2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-09", "2026-03-10"),
			current: 2,
			longest: 4,
		},
		{
			name:    "historical run with stale tail",
			dates:   dates("2026-02-20", "2026-02-21", "2026-02-22"),
			current: 0,
			longest: 3,
		},
		{
			name:    "duplicate timestamps collapse to one day",
			dates:   dates("2026-03-09", "2026-03-09", "2026-03-10", "2026-03-10"),
			current: 2,
			longest: 2,
		},
		{
			name:    "unsorted input",
			dates:   dates("2026-03-10", "2026-03-08", "2026-03-09"),
			current: 3,
			longest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(tt.dates, today)
			assert.Equal(t, tt.current, got.Current, "current streak")
			assert.Equal(t, tt.longest, got.Longest, "longest streak")
		})
	}
}

func TestComputeStreakIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 3, 9, 23, 58, 0, 0, time.UTC)
	earlyToday := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)

	got := ComputeStreak([]time.Time{late, earlyToday}, earlyToday)
	assert.Equal(t, 2, got.Current)
	assert.Equal(t, 2, got.Longest)
}

func TestComputeStreakLongestNeverBelowCurrent(t *testing.T) {
	got := ComputeStreak(dates("2026-03-09", "2026-03-10"), date("2026-03-10"))
	assert.GreaterOrEqual(t, got.Longest, got.Current)
}
