package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"course-platform/internal/domain/course"
)

// CourseStore reads catalog data owned by course-content management.
// This engine never writes through it.
type CourseStore struct {
	db *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db}
}

func (s *CourseStore) FindByID(id string) (*course.Course, error) {
	var c course.Course
	err := s.db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find course %s: %w", id, err)
	}
	return &c, nil
}

// ReleaseSchedule returns the course's drip schedule ordered by week.
func (s *CourseStore) ReleaseSchedule(courseID string) ([]course.ReleaseWeek, error) {
	var rows []course.ReleaseWeek
	err := s.db.
		Where("course_id = ?", courseID).
		Order("week_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("release schedule course=%s: %w", courseID, err)
	}
	return rows, nil
}

// FindEnrollment returns the user's newest enrollment on the course; the
// engine only consumes its StartDate.
func (s *CourseStore) FindEnrollment(userID uint, courseID string) (*course.Enrollment, error) {
	var e course.Enrollment
	err := s.db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at DESC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find enrollment user=%d course=%s: %w", userID, courseID, err)
	}
	return &e, nil
}
