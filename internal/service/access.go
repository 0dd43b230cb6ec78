package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"course-platform/internal/domain/access"
	"course-platform/internal/domain/course"
)

// ScheduleStore is the read-only slice of the course catalog the
// availability computation needs. Satisfied by store.CourseStore.
type ScheduleStore interface {
	ReleaseSchedule(courseID string) ([]course.ReleaseWeek, error)
}

// AccessChecker answers "may this user open this course right now".
type AccessChecker struct {
	grants GrantStore
	now    func() time.Time
}

func NewAccessChecker(grants GrantStore) *AccessChecker {
	return &AccessChecker{grants: grants, now: time.Now}
}

func (c *AccessChecker) HasAccess(userID uint, crs course.Course) (bool, error) {
	if crs.IsFree() {
		return true, nil
	}
	g, err := c.grants.FindLatest(userID, crs.ID, crs.ContentType)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":      userID,
			"course_id":    crs.ID,
			"content_type": crs.ContentType,
		}).WithError(err).Error("access check failed")
		return false, err
	}
	return access.HasAccess(c.now(), crs, g), nil
}

// AvailabilityService computes the unlockable week set for a user on a
// course. Empty windows are valid results; errors are reserved for
// persistence faults.
type AvailabilityService struct {
	grants   GrantStore
	schedule ScheduleStore
	now      func() time.Time
}

func NewAvailabilityService(grants GrantStore, schedule ScheduleStore) *AvailabilityService {
	return &AvailabilityService{grants: grants, schedule: schedule, now: time.Now}
}

// Exec picks the algorithm by content type. The expiry comes from the
// user's latest grant — the latest, not the active one, so a lapsed
// expiry yields an empty window instead of unlimited access. A free
// course has no grant and therefore no expiry.
func (s *AvailabilityService) Exec(userID uint, courseID string, startDate time.Time, contentType string, durationWeeks int) (access.Window, error) {
	nowAt := s.now()

	grant, err := s.grants.FindLatest(userID, courseID, contentType)
	if err != nil {
		return access.Window{}, s.fault(userID, courseID, contentType, err)
	}
	var expiresAt *time.Time
	if grant != nil {
		expiresAt = grant.ExpiresAt
	}

	if contentType == course.ContentSubscription {
		schedule, err := s.schedule.ReleaseSchedule(courseID)
		if err != nil {
			return access.Window{}, s.fault(userID, courseID, contentType, err)
		}
		return access.SubscriptionWindow(nowAt, startDate, durationWeeks, expiresAt, schedule), nil
	}
	return access.FixedCourseWindow(nowAt, startDate, durationWeeks, expiresAt), nil
}

func (s *AvailabilityService) fault(userID uint, courseID, contentType string, err error) error {
	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"course_id":    courseID,
		"content_type": contentType,
	}).WithError(err).Error("failed to compute availability")
	return fmt.Errorf("failed to compute availability: %w", err)
}
