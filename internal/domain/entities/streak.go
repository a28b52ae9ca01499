package entities

import (
	"sort"
	"time"
)

// Streak is the derived consecutive-day activity result.
type Streak struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// ComputeStreak derives the current and longest consecutive-day streaks from
// the set of dates that have recorded activity.
//
// The current streak tolerates a one-day gap against today so an entry made
// late yesterday does not zero the streak before the user logs anything
// today. The longest streak is purely historical and has no such tolerance.
func ComputeStreak(activityDates []time.Time, today time.Time) Streak {
	if len(activityDates) == 0 {
		return Streak{}
	}

	days := distinctDayOrdinals(activityDates)
	todayOrd := dayOrdinal(today)

	current := 0
	mostRecent := days[len(days)-1]
	if todayOrd-mostRecent <= 1 {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if days[i+1]-days[i] != 1 {
				break
			}
			current++
		}
	}

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	if current > longest {
		longest = current
	}

	return Streak{Current: current, Longest: longest}
}

// distinctDayOrdinals maps dates to sorted, de-duplicated whole-day counts.
func distinctDayOrdinals(dates []time.Time) []int {
	seen := make(map[int]struct{}, len(dates))
	days := make([]int, 0, len(dates))
	for _, d := range dates {
		ord := dayOrdinal(d)
		if _, ok := seen[ord]; ok {
			continue
		}
		seen[ord] = struct{}{}
		days = append(days, ord)
	}
	sort.Ints(days)
	return days
}

func dayOrdinal(t time.Time) int {
	return int(DateOf(t).Unix() / 86400)
}
