package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-platform/internal/service"
	"course-platform/internal/store"
)

// RequireCourseAccess gates course-content routes. The account-wide
// freeze is checked first, one layer above the per-course decision, so
// the two stay orthogonal; then the course's own grant and freeze state
// decide.
func RequireCourseAccess(checker *service.AccessChecker, freezes *service.FreezeRegistry, courses *store.CourseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		if f, err := freezes.FindActive(userID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check freeze state"})
			return
		} else if f != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Account is frozen until " + f.EndAt.Format("2006-01-02"),
				"code":  "account_frozen",
			})
			return
		}

		crs, err := courses.FindByID(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course"})
			return
		}
		if crs == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}

		ok, err := checker.HasAccess(userID, *crs)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "No access to this course. Purchase it or wait for your freeze to end.",
				"code":  "no_access",
			})
			return
		}

		c.Next()
	}
}
