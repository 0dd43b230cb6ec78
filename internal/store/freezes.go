package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"course-platform/internal/domain/freeze"
)

// UserFreezeStore persists account-wide freezes.
type UserFreezeStore struct {
	db *gorm.DB
}

func NewUserFreezeStore(db *gorm.DB) *UserFreezeStore {
	return &UserFreezeStore{db: db}
}

func (s *UserFreezeStore) Create(f *freeze.UserFreeze) error {
	if err := s.db.Create(f).Error; err != nil {
		return fmt.Errorf("create user freeze user=%d: %w", f.UserID, err)
	}
	return nil
}

func (s *UserFreezeStore) FindByID(id string) (*freeze.UserFreeze, error) {
	var f freeze.UserFreeze
	err := s.db.Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user freeze %s: %w", id, err)
	}
	return &f, nil
}

// Update stamps cancellation fields; freezes are never deleted.
func (s *UserFreezeStore) Update(f *freeze.UserFreeze) error {
	if err := s.db.Save(f).Error; err != nil {
		return fmt.Errorf("update user freeze %s: %w", f.ID, err)
	}
	return nil
}

// FindActive returns the most recently started freeze covering nowAt,
// or (nil, nil) when the user is not frozen.
func (s *UserFreezeStore) FindActive(userID uint, nowAt time.Time) (*freeze.UserFreeze, error) {
	var f freeze.UserFreeze
	err := s.db.
		Where("user_id = ? AND canceled_at IS NULL", userID).
		Where("start_at <= ? AND end_at >= ?", nowAt, nowAt).
		Order("start_at DESC").
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active freeze user=%d: %w", userID, err)
	}
	return &f, nil
}

// ListByUser returns all of a user's freezes, newest first, canceled
// included (admin screens show the full history).
func (s *UserFreezeStore) ListByUser(userID uint) ([]freeze.UserFreeze, error) {
	var rows []freeze.UserFreeze
	err := s.db.
		Where("user_id = ?", userID).
		Order("start_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list freezes user=%d: %w", userID, err)
	}
	return rows, nil
}
