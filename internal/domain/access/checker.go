package access

import (
	"time"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/entitlement"
)

// HasAccess decides whether a user may open a course right now, given the
// latest grant for (user, course, content type) — nil when none exists.
//
// The user-global freeze is deliberately not consulted here; callers gate
// the whole platform on it one layer up, keeping per-course checks and
// account-wide suspension orthogonal.
func HasAccess(nowAt time.Time, c course.Course, grant *entitlement.Grant) bool {
	if c.IsFree() {
		return true
	}
	if grant == nil {
		return false
	}
	if grant.Expired(nowAt) {
		return false
	}
	if grant.FrozenAt(nowAt) {
		return false
	}
	return true
}
