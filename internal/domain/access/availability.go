package access

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"course-platform/internal/domain/course"
)

// SubscriptionLookaheadWeeks caps how far ahead of the current week a
// subscriber can see released content: the current week plus three more.
const SubscriptionLookaheadWeeks = 4

// WeekMeta tells the UI when a visible subscription week was released.
type WeekMeta struct {
	WeekNumber int       `json:"week_number"`
	ReleaseAt  time.Time `json:"release_at"`
}

// Window is the set of content weeks a user can open on a course right now.
// "No access" and "nothing released yet" are valid windows with an empty
// AvailableWeeks, never errors.
type Window struct {
	AvailableWeeks   []int      `json:"available_weeks"`
	TotalWeeks       int        `json:"total_weeks"`
	CurrentWeekIndex int        `json:"current_week_index"`
	WeeksMeta        []WeekMeta `json:"weeks_meta,omitempty"`
}

func emptyWindow(totalWeeks int) Window {
	return Window{AvailableWeeks: []int{}, TotalWeeks: totalWeeks}
}

// FixedCourseWindow computes availability for courses whose content exists
// in full from day one; only elapsed weeks and the expiry matter.
//
// Courses are defined in whole Monday-aligned weeks. A mid-week enrollment
// gets one extra week slot so the user's partial first week does not eat
// into the duration they paid for.
func FixedCourseWindow(nowAt, startDate time.Time, durationWeeks int, expiresAt *time.Time) Window {
	totalWeeks := durationWeeks
	if startDate.Weekday() != time.Monday {
		totalWeeks++
	}

	if expiresAt != nil && nowAt.After(*expiresAt) {
		return emptyWindow(totalWeeks)
	}

	allowed := totalWeeks
	if expiresAt != nil {
		if expiresAt.Before(startDate) {
			allowed = 0
		} else {
			allowed = min(totalWeeks, WeeksBetween(startDate, *expiresAt)+1)
		}
	}

	available := make([]int, 0, allowed)
	for week := 1; week <= allowed; week++ {
		available = append(available, week)
	}

	current := WeeksBetween(startDate, nowAt) + 1
	current = max(1, min(current, totalWeeks))
	// Never point the UI at a week that is not unlocked.
	if current > len(available) {
		current = len(available)
	}

	return Window{
		AvailableWeeks:   available,
		TotalWeeks:       totalWeeks,
		CurrentWeekIndex: current,
	}
}

// SubscriptionWindow computes availability for drip-released courses:
// released weeks that fall inside a rolling lookahead window, clamped to
// the purchase week and to the expiry week.
func SubscriptionWindow(nowAt, startDate time.Time, durationWeeks int, expiresAt *time.Time, schedule []course.ReleaseWeek) Window {
	if expiresAt != nil && nowAt.After(*expiresAt) {
		return emptyWindow(durationWeeks)
	}

	released := lo.Filter(schedule, func(rw course.ReleaseWeek, _ int) bool {
		return !rw.ReleaseAt.After(nowAt)
	})
	if len(released) == 0 {
		return emptyWindow(durationWeeks)
	}

	purchaseWeekStart := MondayOf(startDate)
	currentWeekStart := MondayOf(nowAt)

	windowStart := currentWeekStart
	windowEnd := currentWeekStart.AddDate(0, 0, (SubscriptionLookaheadWeeks-1)*7)
	if expiresAt != nil {
		if expiryWeekEnd := SundayOf(*expiresAt); expiryWeekEnd.Before(windowEnd) {
			windowEnd = expiryWeekEnd
		}
		if windowEnd.Before(windowStart) {
			return emptyWindow(durationWeeks)
		}
	}

	// A week released before the purchase week stays hidden even when the
	// schedule says it is out.
	visible := lo.Filter(released, func(rw course.ReleaseWeek, _ int) bool {
		weekStart := MondayOf(rw.ReleaseAt)
		return !weekStart.Before(windowStart) &&
			!weekStart.Before(purchaseWeekStart) &&
			!weekStart.After(windowEnd)
	})
	if len(visible) == 0 {
		return emptyWindow(durationWeeks)
	}

	sort.Slice(visible, func(i, j int) bool {
		return visible[i].WeekNumber < visible[j].WeekNumber
	})

	current := visible[0].WeekNumber
	if thisWeek, ok := lo.Find(visible, func(rw course.ReleaseWeek) bool {
		return MondayOf(rw.ReleaseAt).Equal(currentWeekStart)
	}); ok {
		current = thisWeek.WeekNumber
	}

	return Window{
		AvailableWeeks: lo.Map(visible, func(rw course.ReleaseWeek, _ int) int {
			return rw.WeekNumber
		}),
		TotalWeeks:       durationWeeks,
		CurrentWeekIndex: current,
		WeeksMeta: lo.Map(visible, func(rw course.ReleaseWeek, _ int) WeekMeta {
			return WeekMeta{WeekNumber: rw.WeekNumber, ReleaseAt: rw.ReleaseAt}
		}),
	}
}
