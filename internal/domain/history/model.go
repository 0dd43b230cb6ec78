package history

import (
	"encoding/json"
	"time"
)

// Actions recorded against a grant.
const (
	ActionGrant        = "grant"
	ActionExtend       = "extend"
	ActionClose        = "close"
	ActionChangePeriod = "change_period"
	ActionFreeze       = "freeze"
	ActionFreezeCancel = "freeze_cancel"
	ActionSave         = "save"
)

// Entry is one immutable audit row. Never updated, never deleted.
type Entry struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	UserAccessID string `gorm:"type:uuid;not null;index;column:user_access_id" json:"user_access_id"`
	Action       string `gorm:"type:varchar(20);not null" json:"action"`
	AdminID      *uint  `gorm:"column:admin_id" json:"admin_id,omitempty"`

	Payload json.RawMessage `gorm:"type:jsonb;not null;default:'{}'" json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// Payload builds the JSON snapshot of changed fields. Timestamps go in as
// RFC3339 strings so payloads stay readable and stable across drivers.
func Payload(fields map[string]interface{}) json.RawMessage {
	norm := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch t := v.(type) {
		case time.Time:
			norm[k] = t.Format(time.RFC3339)
		case *time.Time:
			if t == nil {
				norm[k] = nil
			} else {
				norm[k] = t.Format(time.RFC3339)
			}
		default:
			norm[k] = v
		}
	}
	b, err := json.Marshal(norm)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
