package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-platform/internal/domain/freeze"
)

// fakeUserFreezeStore mirrors the selection rule of the real store:
// most recently started, uncanceled, covering freeze wins.
type fakeUserFreezeStore struct {
	rows map[string]freeze.UserFreeze
}

func newFakeUserFreezeStore() *fakeUserFreezeStore {
	return &fakeUserFreezeStore{rows: map[string]freeze.UserFreeze{}}
}

func (f *fakeUserFreezeStore) Create(fr *freeze.UserFreeze) error {
	f.rows[fr.ID] = *fr
	return nil
}

func (f *fakeUserFreezeStore) FindByID(id string) (*freeze.UserFreeze, error) {
	if fr, ok := f.rows[id]; ok {
		cp := fr
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserFreezeStore) Update(fr *freeze.UserFreeze) error {
	f.rows[fr.ID] = *fr
	return nil
}

func (f *fakeUserFreezeStore) FindActive(userID uint, nowAt time.Time) (*freeze.UserFreeze, error) {
	var best *freeze.UserFreeze
	for _, fr := range f.rows {
		fr := fr
		if fr.UserID != userID || !fr.ActiveAt(nowAt) {
			continue
		}
		if best == nil || fr.StartAt.After(best.StartAt) {
			best = &fr
		}
	}
	return best, nil
}

func (f *fakeUserFreezeStore) ListByUser(userID uint) ([]freeze.UserFreeze, error) {
	var out []freeze.UserFreeze
	for _, fr := range f.rows {
		if fr.UserID == userID {
			out = append(out, fr)
		}
	}
	return out, nil
}

func newRegistry(store *fakeUserFreezeStore, nowAt time.Time) *FreezeRegistry {
	reg := NewFreezeRegistry(store)
	reg.now = func() time.Time { return nowAt }
	return reg
}

func TestFreezeRegistryCreateAndFindActive(t *testing.T) {
	store := newFakeUserFreezeStore()
	nowAt := fixedNow(t)
	reg := newRegistry(store, nowAt)

	admin := uint(9)
	f, err := reg.Create(1, nowAt.AddDate(0, 0, -1), nowAt.AddDate(0, 0, 6), &admin)
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, &admin, f.CreatedBy)

	active, err := reg.FindActive(1)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, f.ID, active.ID)

	// Another user stays unaffected.
	other, err := reg.FindActive(2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestFreezeRegistryOverlapPicksMostRecentlyStarted(t *testing.T) {
	store := newFakeUserFreezeStore()
	nowAt := fixedNow(t)
	reg := newRegistry(store, nowAt)

	// Overlaps are not rejected; the admin flow owns that rule.
	_, err := reg.Create(1, nowAt.AddDate(0, 0, -10), nowAt.AddDate(0, 0, 10), nil)
	require.NoError(t, err)
	newer, err := reg.Create(1, nowAt.AddDate(0, 0, -1), nowAt.AddDate(0, 0, 5), nil)
	require.NoError(t, err)

	active, err := reg.FindActive(1)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, newer.ID, active.ID)
}

func TestFreezeRegistryCancel(t *testing.T) {
	store := newFakeUserFreezeStore()
	nowAt := fixedNow(t)
	reg := newRegistry(store, nowAt)

	f, err := reg.Create(1, nowAt.AddDate(0, 0, -1), nowAt.AddDate(0, 0, 6), nil)
	require.NoError(t, err)

	admin := uint(9)
	canceled, err := reg.Cancel(f.ID, &admin)
	require.NoError(t, err)
	require.NotNil(t, canceled.CanceledAt)
	assert.Equal(t, &admin, canceled.CanceledBy)

	// A canceled freeze no longer gates.
	active, err := reg.FindActive(1)
	require.NoError(t, err)
	assert.Nil(t, active)

	// Canceling again is a no-op, not an error.
	again, err := reg.Cancel(f.ID, nil)
	require.NoError(t, err)
	assert.True(t, again.CanceledAt.Equal(*canceled.CanceledAt))

	_, err = reg.Cancel("missing", nil)
	assert.ErrorIs(t, err, ErrFreezeNotFound)
}
