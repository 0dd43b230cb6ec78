package service

import (
	"time"

	"github.com/google/uuid"

	"course-platform/internal/domain/freeze"
)

// UserFreezeStore is what FreezeRegistry needs from persistence.
// Satisfied by store.UserFreezeStore.
type UserFreezeStore interface {
	Create(f *freeze.UserFreeze) error
	FindByID(id string) (*freeze.UserFreeze, error)
	Update(f *freeze.UserFreeze) error
	FindActive(userID uint, nowAt time.Time) (*freeze.UserFreeze, error)
	ListByUser(userID uint) ([]freeze.UserFreeze, error)
}

// FreezeRegistry manages account-wide suspensions. It does not check new
// freezes for overlap with existing ones — the admin flow owns that, and
// FindActive stays well-defined under overlap by picking the most
// recently started match.
type FreezeRegistry struct {
	freezes UserFreezeStore
	now     func() time.Time
}

func NewFreezeRegistry(freezes UserFreezeStore) *FreezeRegistry {
	return &FreezeRegistry{freezes: freezes, now: time.Now}
}

func (r *FreezeRegistry) Create(userID uint, start, end time.Time, createdBy *uint) (*freeze.UserFreeze, error) {
	f := &freeze.UserFreeze{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartAt:   start,
		EndAt:     end,
		CreatedBy: createdBy,
	}
	if err := r.freezes.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Cancel stamps the freeze canceled; the row stays for audit. Canceling
// an already-canceled freeze is a no-op returning the current state.
func (r *FreezeRegistry) Cancel(freezeID string, canceledBy *uint) (*freeze.UserFreeze, error) {
	f, err := r.freezes.FindByID(freezeID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFreezeNotFound
	}
	if f.CanceledAt != nil {
		return f, nil
	}

	nowAt := r.now()
	f.CanceledAt = &nowAt
	f.CanceledBy = canceledBy
	if err := r.freezes.Update(f); err != nil {
		return nil, err
	}
	return f, nil
}

// FindActive returns the freeze gating the user right now, or nil.
func (r *FreezeRegistry) FindActive(userID uint) (*freeze.UserFreeze, error) {
	return r.freezes.FindActive(userID, r.now())
}

func (r *FreezeRegistry) ListByUser(userID uint) ([]freeze.UserFreeze, error) {
	return r.freezes.ListByUser(userID)
}
