package service

import (
	"time"

	"github.com/google/uuid"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/entitlement"
	"course-platform/internal/domain/history"
)

// GrantStore is what the services need from the entitlement persistence
// layer. Satisfied by store.EntitlementStore.
type GrantStore interface {
	FindByID(id string) (*entitlement.Grant, error)
	FindLatest(userID uint, courseID, contentType string) (*entitlement.Grant, error)
	FindActive(userID uint, courseID string, nowAt time.Time) (*entitlement.Grant, error)
	FindAllActive(userID uint, nowAt time.Time) ([]entitlement.Grant, error)
	Save(g *entitlement.Grant, action string, adminID *uint, payload map[string]interface{}) (*entitlement.Grant, error)
}

// GrantService owns every entitlement mutation. Each one goes through
// GrantStore.Save, which appends the matching audit row.
type GrantService struct {
	grants GrantStore
	now    func() time.Time
}

func NewGrantService(grants GrantStore) *GrantService {
	return &GrantService{grants: grants, now: time.Now}
}

type GrantParams struct {
	UserID       uint
	CourseID     string
	ContentType  string
	Reason       string
	AdminID      *uint
	EnrollmentID *string
	ExpiresAt    *time.Time
}

// Grant records the result of a successful purchase or a manual admin
// grant as a fresh entitlement row.
//
// Subscriptions have no workout-day-selection onboarding, so their
// SetupCompleted is always true. Fixed courses start with it false unless
// the previous grant was still un-expired and already set up — a user who
// re-purchases mid-course is not forced through onboarding again.
func (s *GrantService) Grant(p GrantParams) (*entitlement.Grant, error) {
	nowAt := s.now()

	latest, err := s.grants.FindLatest(p.UserID, p.CourseID, p.ContentType)
	if err != nil {
		return nil, err
	}
	if latest != nil && (latest.ExpiresAt == nil || latest.ExpiresAt.After(nowAt)) {
		return nil, ErrAccessAlreadyActive
	}

	setupCompleted := false
	if p.ContentType == course.ContentSubscription {
		setupCompleted = true
	} else if latest != nil && latest.SetupCompleted && !latest.Expired(nowAt) {
		setupCompleted = true
	}

	g := &entitlement.Grant{
		ID:             uuid.NewString(),
		UserID:         p.UserID,
		CourseID:       p.CourseID,
		ContentType:    p.ContentType,
		Reason:         p.Reason,
		AdminID:        p.AdminID,
		EnrollmentID:   p.EnrollmentID,
		ExpiresAt:      p.ExpiresAt,
		SetupCompleted: setupCompleted,
		Freezes:        entitlement.FreezeList{},
		FreezeDaysUsed: 0,
	}

	return s.grants.Save(g, history.ActionGrant, p.AdminID, map[string]interface{}{
		"user_id":         p.UserID,
		"course_id":       p.CourseID,
		"content_type":    p.ContentType,
		"reason":          p.Reason,
		"expires_at":      p.ExpiresAt,
		"setup_completed": setupCompleted,
	})
}

// Extend moves the grant's expiry. A nil ExpiresAt on the grant becomes a
// dated one; ordering against the old value is the caller's concern.
func (s *GrantService) Extend(grantID string, expiresAt time.Time, adminID *uint) (*entitlement.Grant, error) {
	return s.updatePeriod(grantID, &expiresAt, adminID, history.ActionExtend)
}

// ChangePeriod sets an arbitrary expiry, including back to unlimited.
func (s *GrantService) ChangePeriod(grantID string, expiresAt *time.Time, adminID *uint) (*entitlement.Grant, error) {
	return s.updatePeriod(grantID, expiresAt, adminID, history.ActionChangePeriod)
}

// Close expires the grant immediately.
func (s *GrantService) Close(grantID string, adminID *uint) (*entitlement.Grant, error) {
	nowAt := s.now()
	return s.updatePeriod(grantID, &nowAt, adminID, history.ActionClose)
}

func (s *GrantService) updatePeriod(grantID string, expiresAt *time.Time, adminID *uint, action string) (*entitlement.Grant, error) {
	g, err := s.grants.FindByID(grantID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGrantNotFound
	}
	g.ExpiresAt = expiresAt
	return s.grants.Save(g, action, adminID, map[string]interface{}{
		"expires_at": expiresAt,
	})
}

// CompleteSetup marks the one-time onboarding step done.
func (s *GrantService) CompleteSetup(grantID string, adminID *uint) (*entitlement.Grant, error) {
	g, err := s.grants.FindByID(grantID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGrantNotFound
	}
	g.SetupCompleted = true
	return s.grants.Save(g, history.ActionSave, adminID, map[string]interface{}{
		"setup_completed": true,
	})
}

// AddFreeze appends a course-scoped freeze period to the grant.
// consumeDays is how much of the user's freeze allowance this period
// spends; the counter is maintained here for callers, never re-derived
// from the period list.
func (s *GrantService) AddFreeze(grantID string, start, end time.Time, createdBy *uint, consumeDays int) (*entitlement.Grant, error) {
	g, err := s.grants.FindByID(grantID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGrantNotFound
	}

	period := entitlement.FreezePeriod{
		ID:        uuid.NewString(),
		Start:     start,
		End:       end,
		CreatedBy: createdBy,
		CreatedAt: s.now(),
	}
	g.Freezes = append(g.Freezes, period)
	g.FreezeDaysUsed += consumeDays

	return s.grants.Save(g, history.ActionFreeze, createdBy, map[string]interface{}{
		"freeze_id":        period.ID,
		"start":            period.Start,
		"end":              period.End,
		"freeze_days_used": g.FreezeDaysUsed,
	})
}

// CancelFreeze removes a course-scoped freeze period from the grant.
// The consumed allowance is not refunded here; admins adjust it through
// their own flow when a refund is warranted.
func (s *GrantService) CancelFreeze(grantID, freezeID string, adminID *uint) (*entitlement.Grant, error) {
	g, err := s.grants.FindByID(grantID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGrantNotFound
	}

	kept := make(entitlement.FreezeList, 0, len(g.Freezes))
	found := false
	for _, p := range g.Freezes {
		if p.ID == freezeID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return nil, ErrFreezeNotFound
	}
	g.Freezes = kept

	return s.grants.Save(g, history.ActionFreezeCancel, adminID, map[string]interface{}{
		"freeze_id": freezeID,
	})
}

// ActiveGrants lists the user's unexpired grants across courses.
func (s *GrantService) ActiveGrants(userID uint) ([]entitlement.Grant, error) {
	return s.grants.FindAllActive(userID, s.now())
}

// ActiveGrant returns the user's unexpired grant on one course, if any.
func (s *GrantService) ActiveGrant(userID uint, courseID string) (*entitlement.Grant, error) {
	return s.grants.FindActive(userID, courseID, s.now())
}
