package access

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-platform/internal/service"
	"course-platform/internal/store"
)

// Handler serves the user-facing access and availability endpoints.
type Handler struct {
	checker      *service.AccessChecker
	availability *service.AvailabilityService
	grants       *service.GrantService
	freezes      *service.FreezeRegistry
	courses      *store.CourseStore
}

func NewHandler(
	checker *service.AccessChecker,
	availability *service.AvailabilityService,
	grants *service.GrantService,
	freezes *service.FreezeRegistry,
	courses *store.CourseStore,
) *Handler {
	return &Handler{
		checker:      checker,
		availability: availability,
		grants:       grants,
		freezes:      freezes,
		courses:      courses,
	}
}

// GET /courses/:id/access
func (h *Handler) CheckAccess(c *gin.Context) {
	userID := c.GetUint("user_id")

	crs, err := h.courses.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course"})
		return
	}
	if crs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	ok, err := h.checker.HasAccess(userID, *crs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_access": ok})
}

// GET /courses/:id/weeks
//
// The route sits behind the course-access guard, so a denied user never
// reaches this point; an empty window here means "nothing released yet"
// or "access lapsed", which the week picker renders as locked content.
func (h *Handler) GetAvailableWeeks(c *gin.Context) {
	userID := c.GetUint("user_id")

	crs, err := h.courses.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course"})
		return
	}
	if crs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	enrollment, err := h.courses.FindEnrollment(userID, crs.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load enrollment"})
		return
	}
	if enrollment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Enrollment not found"})
		return
	}

	window, err := h.availability.Exec(userID, crs.ID, enrollment.StartDate, crs.ContentType, crs.DurationWeeks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		return
	}
	c.JSON(http.StatusOK, window)
}

// POST /courses/:id/setup-complete
//
// Marks the one-time onboarding (workout-day selection) done on the
// caller's own active grant.
func (h *Handler) CompleteSetup(c *gin.Context) {
	userID := c.GetUint("user_id")

	grant, err := h.grants.ActiveGrant(userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load access"})
		return
	}
	if grant == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active access for this course"})
		return
	}

	updated, err := h.grants.CompleteSetup(grant.ID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete setup"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GET /me/access
func (h *Handler) ListMyAccess(c *gin.Context) {
	userID := c.GetUint("user_id")

	grants, err := h.grants.ActiveGrants(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load access"})
		return
	}
	c.JSON(http.StatusOK, grants)
}

// GET /me/freeze
//
// The active account-wide freeze, if any. The frontend gates the whole
// platform on this, one layer above per-course access checks.
func (h *Handler) GetMyFreeze(c *gin.Context) {
	userID := c.GetUint("user_id")

	f, err := h.freezes.FindActive(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load freeze"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"freeze": f})
}
