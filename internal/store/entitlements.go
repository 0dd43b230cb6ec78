package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-platform/internal/domain/entitlement"
	"course-platform/internal/domain/history"
)

// EntitlementStore persists grants and writes one audit row per save.
type EntitlementStore struct {
	db      *gorm.DB
	history *HistoryStore
}

func NewEntitlementStore(db *gorm.DB) *EntitlementStore {
	return &EntitlementStore{db: db, history: NewHistoryStore(db)}
}

// FindByID fetches a grant row; (nil, nil) when it does not exist.
func (s *EntitlementStore) FindByID(id string) (*entitlement.Grant, error) {
	var g entitlement.Grant
	err := s.db.Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find grant %s: %w", id, err)
	}
	return &g, nil
}

// FindLatest returns the newest grant row for the exact
// (user, course, content type) key, expired or not.
func (s *EntitlementStore) FindLatest(userID uint, courseID, contentType string) (*entitlement.Grant, error) {
	var g entitlement.Grant
	err := s.db.
		Where("user_id = ? AND course_id = ? AND content_type = ?", userID, courseID, contentType).
		Order("created_at DESC").
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest grant user=%d course=%s: %w", userID, courseID, err)
	}
	return &g, nil
}

// FindActive returns the newest unexpired grant for the course across
// content types. Freeze state is not evaluated here; that belongs to the
// access check.
func (s *EntitlementStore) FindActive(userID uint, courseID string, nowAt time.Time) (*entitlement.Grant, error) {
	var g entitlement.Grant
	err := s.db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Where("expires_at IS NULL OR expires_at > ?", nowAt).
		Order("created_at DESC").
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active grant user=%d course=%s: %w", userID, courseID, err)
	}
	return &g, nil
}

// FindAllActive lists the user's unexpired grants, newest row per
// (course, content type) key.
func (s *EntitlementStore) FindAllActive(userID uint, nowAt time.Time) ([]entitlement.Grant, error) {
	var rows []entitlement.Grant
	err := s.db.
		Where("user_id = ?", userID).
		Where("expires_at IS NULL OR expires_at > ?", nowAt).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find active grants user=%d: %w", userID, err)
	}
	return lo.UniqBy(rows, func(g entitlement.Grant) string {
		return g.CourseID + "|" + g.ContentType
	}), nil
}

// Save upserts the grant by id and appends one history row describing the
// mutation. The history write is best-effort: if it fails after the grant
// row went in, the failure is logged and the save still counts.
func (s *EntitlementStore) Save(g *entitlement.Grant, action string, adminID *uint, payload map[string]interface{}) (*entitlement.Grant, error) {
	if g.Freezes == nil {
		g.Freezes = entitlement.FreezeList{}
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(g).Error; err != nil {
		return nil, fmt.Errorf("save grant %s: %w", g.ID, err)
	}

	entry := history.Entry{
		ID:           uuid.NewString(),
		UserAccessID: g.ID,
		Action:       action,
		AdminID:      adminID,
		Payload:      history.Payload(payload),
	}
	if err := s.history.Append(entry); err != nil {
		logrus.WithFields(logrus.Fields{
			"grant_id": g.ID,
			"user_id":  g.UserID,
			"action":   action,
		}).WithError(err).Error("history append failed after grant save")
	}
	return g, nil
}
