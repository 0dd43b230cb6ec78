package course

import "time"

// Content types decide which availability algorithm applies.
const (
	ContentFixedCourse  = "fixed_course"
	ContentSubscription = "subscription"
)

// Product access levels.
const (
	AccessFree = "free"
	AccessPaid = "paid"
)

// Course is owned by course-content management; this engine only reads it.
type Course struct {
	ID            string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string `gorm:"not null" json:"title"`
	ContentType   string `gorm:"type:varchar(20);not null" json:"content_type"`
	DurationWeeks int    `gorm:"not null;default:0" json:"duration_weeks"`
	ProductAccess string `gorm:"type:varchar(10);not null;default:'paid'" json:"product_access"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Course) IsFree() bool {
	return c.ProductAccess == AccessFree
}

// ReleaseWeek is one row of a subscription course's drip schedule.
type ReleaseWeek struct {
	ID         string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID   string    `gorm:"type:uuid;not null;index" json:"course_id"`
	WeekNumber int       `gorm:"not null" json:"week_number"`
	ReleaseAt  time.Time `gorm:"not null" json:"release_at"`
}

// Enrollment lives in the enrollment aggregate; the engine only needs StartDate.
type Enrollment struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_enrollments_user_course" json:"user_id"`
	CourseID  string    `gorm:"type:uuid;not null;index:idx_enrollments_user_course" json:"course_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`

	CreatedAt time.Time `json:"created_at"`
}
