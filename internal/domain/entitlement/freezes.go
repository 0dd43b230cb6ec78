package entitlement

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FreezePeriod is a course-scoped suspension embedded in a grant.
// Distinct from freeze.UserFreeze, which suspends the whole account.
type FreezePeriod struct {
	ID        string    `json:"id"`
	Start     time.Time `json:"-"`
	End       time.Time `json:"-"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// Contains reports whether t falls inside the period, bounds inclusive.
func (p FreezePeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Days is the calendar length of the period, counting both endpoints.
func (p FreezePeriod) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// FreezeList is stored as a single jsonb column on the grant row rather
// than a child table. The envelope carries a version so the layout can
// change without a relational migration:
//
//	{"v":1,"periods":[{"id":...,"start":...,"end":...},...]}
//
// Timestamps are RFC3339 strings. Reading is lenient: entries that fail
// to decode are dropped so one corrupt period never blocks an access
// check on an otherwise valid grant. A bare JSON array (the pre-envelope
// layout) is still accepted.
type FreezeList []FreezePeriod

const freezeListVersion = 1

type freezeListEnvelope struct {
	Version int               `json:"v"`
	Periods []json.RawMessage `json:"periods"`
}

type freezePeriodJSON struct {
	ID        string `json:"id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	CreatedBy *uint  `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (l FreezeList) MarshalJSON() ([]byte, error) {
	env := freezeListEnvelope{Version: freezeListVersion, Periods: make([]json.RawMessage, 0, len(l))}
	for _, p := range l {
		raw, err := json.Marshal(freezePeriodJSON{
			ID:        p.ID,
			Start:     p.Start.Format(time.RFC3339),
			End:       p.End.Format(time.RFC3339),
			CreatedBy: p.CreatedBy,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}
		env.Periods = append(env.Periods, raw)
	}
	return json.Marshal(env)
}

func (l *FreezeList) UnmarshalJSON(data []byte) error {
	var env freezeListEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Periods == nil {
		// Legacy layout: a bare array of periods.
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			*l = FreezeList{}
			return nil
		}
		env.Periods = raws
	}

	out := make(FreezeList, 0, len(env.Periods))
	for _, raw := range env.Periods {
		if p, ok := decodeFreezePeriod(raw); ok {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

func decodeFreezePeriod(raw json.RawMessage) (FreezePeriod, bool) {
	var pj freezePeriodJSON
	if err := json.Unmarshal(raw, &pj); err != nil {
		return FreezePeriod{}, false
	}
	start, err := time.Parse(time.RFC3339, pj.Start)
	if err != nil {
		return FreezePeriod{}, false
	}
	end, err := time.Parse(time.RFC3339, pj.End)
	if err != nil {
		return FreezePeriod{}, false
	}
	p := FreezePeriod{ID: pj.ID, Start: start, End: end, CreatedBy: pj.CreatedBy}
	if pj.CreatedAt != "" {
		if created, err := time.Parse(time.RFC3339, pj.CreatedAt); err == nil {
			p.CreatedAt = created
		}
	}
	return p, true
}

// Value / Scan let gorm store the list in a jsonb column.

func (l FreezeList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FreezeList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = FreezeList{}
		return nil
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported freeze list source type %T", src)
	}
}
