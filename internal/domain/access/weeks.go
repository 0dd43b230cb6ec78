package access

import (
	"math"
	"time"

	"github.com/jinzhu/now"
)

// Course weeks are Monday-aligned everywhere in this package.
var weekCfg = &now.Config{WeekStartDay: time.Monday}

// MondayOf returns midnight of the Monday of t's week.
func MondayOf(t time.Time) time.Time {
	return weekCfg.With(t).BeginningOfWeek()
}

// SundayOf returns midnight of the Sunday closing t's week.
func SundayOf(t time.Time) time.Time {
	return MondayOf(t).AddDate(0, 0, 6)
}

// WeeksBetween counts Monday boundaries crossed going from a to b.
// Same week gives 0, next week 1, and so on. Rounded through days so a
// DST shift cannot skew the count.
func WeeksBetween(a, b time.Time) int {
	days := int(math.Round(MondayOf(b).Sub(MondayOf(a)).Hours() / 24))
	return days / 7
}
