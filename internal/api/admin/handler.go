package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/entitlement"
	"course-platform/internal/service"
	"course-platform/internal/store"
)

// Handler serves the admin entitlement and freeze endpoints.
type Handler struct {
	grants  *service.GrantService
	freezes *service.FreezeRegistry
	history *store.HistoryStore
}

func NewHandler(grants *service.GrantService, freezes *service.FreezeRegistry, history *store.HistoryStore) *Handler {
	return &Handler{grants: grants, freezes: freezes, history: history}
}

type grantRequest struct {
	UserID       uint       `json:"user_id" binding:"required"`
	CourseID     string     `json:"course_id" binding:"required"`
	ContentType  string     `json:"content_type" binding:"required"`
	Reason       string     `json:"reason" binding:"required"`
	EnrollmentID *string    `json:"enrollment_id"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type periodRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

type freezeRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
	// Days overrides how much freeze allowance the period consumes.
	// Omitted means "calendar length of the period".
	Days *int `json:"days"`
}

type userFreezeRequest struct {
	UserID uint      `json:"user_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

func adminID(c *gin.Context) *uint {
	if id := c.GetUint("user_id"); id != 0 {
		return &id
	}
	return nil
}

// POST /admin/access
func (h *Handler) GrantAccess(c *gin.Context) {
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	switch req.ContentType {
	case course.ContentFixedCourse, course.ContentSubscription:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown content type"})
		return
	}
	switch req.Reason {
	case entitlement.ReasonPaid, entitlement.ReasonFree, entitlement.ReasonManual:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown grant reason"})
		return
	}

	grant, err := h.grants.Grant(service.GrantParams{
		UserID:       req.UserID,
		CourseID:     req.CourseID,
		ContentType:  req.ContentType,
		Reason:       req.Reason,
		AdminID:      adminID(c),
		EnrollmentID: req.EnrollmentID,
		ExpiresAt:    req.ExpiresAt,
	})
	if errors.Is(err, service.ErrAccessAlreadyActive) {
		c.JSON(http.StatusConflict, gin.H{"error": "Access already exists", "code": "access_already_exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant access"})
		return
	}
	c.JSON(http.StatusCreated, grant)
}

// POST /admin/access/:id/extend
func (h *Handler) ExtendAccess(c *gin.Context) {
	var req periodRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ExpiresAt == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at is required"})
		return
	}
	grant, err := h.grants.Extend(c.Param("id"), *req.ExpiresAt, adminID(c))
	h.respondGrant(c, grant, err)
}

// POST /admin/access/:id/change-period
func (h *Handler) ChangePeriod(c *gin.Context) {
	var req periodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	grant, err := h.grants.ChangePeriod(c.Param("id"), req.ExpiresAt, adminID(c))
	h.respondGrant(c, grant, err)
}

// POST /admin/access/:id/close
func (h *Handler) CloseAccess(c *gin.Context) {
	grant, err := h.grants.Close(c.Param("id"), adminID(c))
	h.respondGrant(c, grant, err)
}

// POST /admin/access/:id/setup-complete
func (h *Handler) CompleteSetup(c *gin.Context) {
	grant, err := h.grants.CompleteSetup(c.Param("id"), adminID(c))
	h.respondGrant(c, grant, err)
}

// POST /admin/access/:id/freezes
func (h *Handler) AddFreeze(c *gin.Context) {
	var req freezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.End.Before(req.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Freeze end must not precede start"})
		return
	}

	days := entitlement.FreezePeriod{Start: req.Start, End: req.End}.Days()
	if req.Days != nil {
		days = *req.Days
	}

	grant, err := h.grants.AddFreeze(c.Param("id"), req.Start, req.End, adminID(c), days)
	h.respondGrant(c, grant, err)
}

// DELETE /admin/access/:id/freezes/:freezeId
func (h *Handler) CancelFreeze(c *gin.Context) {
	grant, err := h.grants.CancelFreeze(c.Param("id"), c.Param("freezeId"), adminID(c))
	h.respondGrant(c, grant, err)
}

// GET /admin/access/:id/history
func (h *Handler) GetHistory(c *gin.Context) {
	entries, err := h.history.ListByGrant(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// POST /admin/freezes
func (h *Handler) CreateUserFreeze(c *gin.Context) {
	var req userFreezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.End.Before(req.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Freeze end must not precede start"})
		return
	}

	f, err := h.freezes.Create(req.UserID, req.Start, req.End, adminID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create freeze"})
		return
	}
	c.JSON(http.StatusCreated, f)
}

// POST /admin/freezes/:id/cancel
func (h *Handler) CancelUserFreeze(c *gin.Context) {
	f, err := h.freezes.Cancel(c.Param("id"), adminID(c))
	if errors.Is(err, service.ErrFreezeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Freeze not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel freeze"})
		return
	}
	c.JSON(http.StatusOK, f)
}

// GET /admin/users/:id/freezes
func (h *Handler) ListUserFreezes(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	rows, err := h.freezes.ListByUser(uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load freezes"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) respondGrant(c *gin.Context, grant *entitlement.Grant, err error) {
	switch {
	case errors.Is(err, service.ErrGrantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
	case errors.Is(err, service.ErrFreezeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Freeze not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	default:
		c.JSON(http.StatusOK, grant)
	}
}
