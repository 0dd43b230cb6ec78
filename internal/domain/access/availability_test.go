package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"course-platform/internal/domain/course"
)

func TestMondayOf(t *testing.T) {
	monday := date(t, "2024-06-03T00:00:00Z")

	assert.True(t, MondayOf(date(t, "2024-06-03T09:30:00Z")).Equal(monday))
	assert.True(t, MondayOf(date(t, "2024-06-05T00:00:00Z")).Equal(monday))
	assert.True(t, MondayOf(date(t, "2024-06-09T23:59:59Z")).Equal(monday), "Sunday belongs to the Monday-started week")
}

func TestWeeksBetween(t *testing.T) {
	assert.Equal(t, 0, WeeksBetween(date(t, "2024-06-03T00:00:00Z"), date(t, "2024-06-09T00:00:00Z")))
	assert.Equal(t, 1, WeeksBetween(date(t, "2024-06-05T00:00:00Z"), date(t, "2024-06-10T00:00:00Z")))
	assert.Equal(t, 2, WeeksBetween(date(t, "2024-06-03T00:00:00Z"), date(t, "2024-06-19T00:00:00Z")))
}

func TestFixedCourseWeekCountParity(t *testing.T) {
	now := date(t, "2024-06-04T12:00:00Z")

	onMonday := FixedCourseWindow(now, date(t, "2024-06-03T00:00:00Z"), 4, nil)
	assert.Equal(t, 4, onMonday.TotalWeeks)
	assert.Equal(t, []int{1, 2, 3, 4}, onMonday.AvailableWeeks)

	// Mid-week enrollment gets an extra week slot.
	onWednesday := FixedCourseWindow(now, date(t, "2024-06-05T00:00:00Z"), 4, nil)
	assert.Equal(t, 5, onWednesday.TotalWeeks)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, onWednesday.AvailableWeeks)
}

func TestFixedCourseCurrentWeekTracksElapsedWeeks(t *testing.T) {
	start := date(t, "2024-06-03T00:00:00Z")

	w := FixedCourseWindow(date(t, "2024-06-19T08:00:00Z"), start, 4, nil)
	assert.Equal(t, 3, w.CurrentWeekIndex)

	// Far past the course end the pointer stays on the last week.
	w = FixedCourseWindow(date(t, "2025-06-19T08:00:00Z"), start, 4, nil)
	assert.Equal(t, 4, w.CurrentWeekIndex)
}

func TestFixedCourseExpiryShortensAvailableWeeks(t *testing.T) {
	start := date(t, "2024-06-03T00:00:00Z")
	expires := date(t, "2024-06-12T00:00:00Z")

	w := FixedCourseWindow(date(t, "2024-06-05T08:00:00Z"), start, 4, &expires)
	assert.Equal(t, 4, w.TotalWeeks, "TotalWeeks stays untouched by the admin shortening access")
	assert.Equal(t, []int{1, 2}, w.AvailableWeeks)
	assert.Equal(t, 1, w.CurrentWeekIndex)
}

func TestFixedCourseLockedAfterExpiry(t *testing.T) {
	start := date(t, "2024-06-05T00:00:00Z")
	expires := date(t, "2024-06-18T00:00:00Z")

	w := FixedCourseWindow(date(t, "2024-06-19T00:00:00Z"), start, 4, &expires)
	assert.Empty(t, w.AvailableWeeks)
	assert.Equal(t, 5, w.TotalWeeks, "week count still reported for the UI")
}

func TestFixedCourseExpiryBeforeStart(t *testing.T) {
	start := date(t, "2024-06-10T00:00:00Z")
	expires := date(t, "2024-06-05T00:00:00Z")

	w := FixedCourseWindow(date(t, "2024-06-04T00:00:00Z"), start, 4, &expires)
	assert.Empty(t, w.AvailableWeeks)
	assert.Equal(t, 0, w.CurrentWeekIndex)
}

func releaseOn(week int, s string, t *testing.T) course.ReleaseWeek {
	return course.ReleaseWeek{CourseID: "c1", WeekNumber: week, ReleaseAt: date(t, s)}
}

func TestSubscriptionReleaseOnCurrentMonday(t *testing.T) {
	today := date(t, "2024-06-03T10:00:00Z")
	schedule := []course.ReleaseWeek{releaseOn(1, "2024-06-03T00:00:00Z", t)}

	w := SubscriptionWindow(today, date(t, "2024-06-03T00:00:00Z"), 12, nil, schedule)
	assert.Equal(t, []int{1}, w.AvailableWeeks)
	assert.Equal(t, 1, w.CurrentWeekIndex)
	assert.Len(t, w.WeeksMeta, 1)
	assert.Equal(t, 1, w.WeeksMeta[0].WeekNumber)
}

func TestSubscriptionWindowNeverExceedsLookahead(t *testing.T) {
	today := date(t, "2024-06-03T12:00:00Z")
	// Four weeks dropped at once this Monday, on top of earlier releases.
	schedule := []course.ReleaseWeek{
		releaseOn(1, "2024-04-01T00:00:00Z", t),
		releaseOn(2, "2024-04-08T00:00:00Z", t),
		releaseOn(5, "2024-06-03T00:00:00Z", t),
		releaseOn(6, "2024-06-03T00:00:00Z", t),
		releaseOn(7, "2024-06-03T00:00:00Z", t),
		releaseOn(8, "2024-06-03T00:00:00Z", t),
	}

	w := SubscriptionWindow(today, date(t, "2024-04-01T00:00:00Z"), 12, nil, schedule)
	assert.LessOrEqual(t, len(w.AvailableWeeks), SubscriptionLookaheadWeeks)
	assert.Equal(t, []int{5, 6, 7, 8}, w.AvailableWeeks)
	assert.Equal(t, 5, w.CurrentWeekIndex)
}

func TestSubscriptionHidesWeeksReleasedBeforePurchase(t *testing.T) {
	today := date(t, "2024-06-03T10:00:00Z")
	schedule := []course.ReleaseWeek{releaseOn(1, "2024-06-03T00:00:00Z", t)}

	// Enrollment starts next week; this week's release stays hidden even
	// though the server-side schedule already released it.
	w := SubscriptionWindow(today, date(t, "2024-06-10T00:00:00Z"), 12, nil, schedule)
	assert.Empty(t, w.AvailableWeeks)
}

func TestSubscriptionOldReleasesFallOutOfTheWindow(t *testing.T) {
	today := date(t, "2024-06-03T10:00:00Z")
	schedule := []course.ReleaseWeek{
		releaseOn(1, "2024-04-01T00:00:00Z", t),
		releaseOn(2, "2024-04-08T00:00:00Z", t),
	}

	w := SubscriptionWindow(today, date(t, "2024-04-01T00:00:00Z"), 12, nil, schedule)
	assert.Empty(t, w.AvailableWeeks)
}

func TestSubscriptionNothingReleasedYet(t *testing.T) {
	today := date(t, "2024-06-03T10:00:00Z")
	schedule := []course.ReleaseWeek{releaseOn(1, "2024-06-10T00:00:00Z", t)}

	w := SubscriptionWindow(today, date(t, "2024-06-03T00:00:00Z"), 12, nil, schedule)
	assert.Empty(t, w.AvailableWeeks)
}

func TestSubscriptionLockedAfterExpiry(t *testing.T) {
	today := date(t, "2024-06-03T10:00:00Z")
	expires := date(t, "2024-06-02T00:00:00Z")
	schedule := []course.ReleaseWeek{releaseOn(1, "2024-06-03T00:00:00Z", t)}

	w := SubscriptionWindow(today, date(t, "2024-05-27T00:00:00Z"), 12, &expires, schedule)
	assert.Empty(t, w.AvailableWeeks)
	assert.Equal(t, 12, w.TotalWeeks)
}
