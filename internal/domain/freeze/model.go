package freeze

import "time"

// UserFreeze suspends every course of a user at once. It is soft-canceled:
// cancellation stamps CanceledAt/CanceledBy and the row stays for audit.
type UserFreeze struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`

	StartAt time.Time `gorm:"not null" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	CreatedBy *uint     `gorm:"column:created_by" json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	CanceledAt *time.Time `gorm:"column:canceled_at" json:"canceled_at,omitempty"`
	CanceledBy *uint      `gorm:"column:canceled_by" json:"canceled_by,omitempty"`
}

// ActiveAt reports whether the freeze gates access at t: not canceled and
// t inside [StartAt, EndAt], bounds inclusive.
func (f UserFreeze) ActiveAt(t time.Time) bool {
	if f.CanceledAt != nil {
		return false
	}
	return !t.Before(f.StartAt) && !t.After(f.EndAt)
}
