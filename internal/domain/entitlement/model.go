package entitlement

import (
	"time"
)

// Why a grant exists.
const (
	ReasonPaid   = "paid"
	ReasonFree   = "free"
	ReasonManual = "manual"
)

// Grant is one access-grant event for a (user, course, content type) key.
// Rows are never deleted; the newest row by CreatedAt is the canonical one,
// older rows stay for audit.
type Grant struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index:idx_grants_user_course" json:"user_id"`
	CourseID    string `gorm:"type:uuid;not null;index:idx_grants_user_course" json:"course_id"`
	ContentType string `gorm:"type:varchar(20);not null;index:idx_grants_user_course" json:"content_type"`

	Reason       string  `gorm:"type:varchar(10);not null" json:"reason"`
	AdminID      *uint   `gorm:"column:admin_id" json:"admin_id,omitempty"`
	EnrollmentID *string `gorm:"type:uuid;column:enrollment_id" json:"enrollment_id,omitempty"`

	ExpiresAt      *time.Time `gorm:"column:expires_at;index" json:"expires_at,omitempty"`
	SetupCompleted bool       `gorm:"not null;default:false" json:"setup_completed"`

	Freezes        FreezeList `gorm:"type:jsonb;not null" json:"freezes"`
	FreezeDaysUsed int        `gorm:"not null;default:0" json:"freeze_days_used"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the grant's expiry has strictly passed.
// A nil ExpiresAt means unlimited access.
func (g Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && now.After(*g.ExpiresAt)
}

// FrozenAt reports whether now falls inside any of the grant's own
// freeze periods (bounds inclusive).
func (g Grant) FrozenAt(now time.Time) bool {
	for _, f := range g.Freezes {
		if f.Contains(now) {
			return true
		}
	}
	return false
}
