package store

import (
	"fmt"

	"gorm.io/gorm"

	"course-platform/internal/domain/history"
)

// HistoryStore is append-only; entries are never updated or deleted.
type HistoryStore struct {
	db *gorm.DB
}

func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func (s *HistoryStore) Append(e history.Entry) error {
	if err := s.db.Create(&e).Error; err != nil {
		return fmt.Errorf("append history for grant %s: %w", e.UserAccessID, err)
	}
	return nil
}

// ListByGrant returns the audit trail for one grant, oldest first.
func (s *HistoryStore) ListByGrant(grantID string) ([]history.Entry, error) {
	var rows []history.Entry
	err := s.db.
		Where("user_access_id = ?", grantID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list history for grant %s: %w", grantID, err)
	}
	return rows, nil
}
