package routes

import (
	accessapi "course-platform/internal/api/access"
	adminapi "course-platform/internal/api/admin"
	"course-platform/internal/app/http/middleware"
	"course-platform/internal/service"
	"course-platform/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires stores, services and handlers by hand and mounts
// every route. No DI container; the construction order below is the
// whole dependency graph.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	entitlements := store.NewEntitlementStore(db)
	userFreezes := store.NewUserFreezeStore(db)
	historyStore := store.NewHistoryStore(db)
	courses := store.NewCourseStore(db)

	grants := service.NewGrantService(entitlements)
	freezes := service.NewFreezeRegistry(userFreezes)
	checker := service.NewAccessChecker(entitlements)
	availability := service.NewAvailabilityService(entitlements, courses)

	accessHandler := accessapi.NewHandler(checker, availability, grants, freezes, courses)
	adminHandler := adminapi.NewHandler(grants, freezes, historyStore)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me/access", accessHandler.ListMyAccess)
	auth.GET("/me/freeze", accessHandler.GetMyFreeze)
	auth.GET("/courses/:id/access", accessHandler.CheckAccess)
	auth.POST("/courses/:id/setup-complete", accessHandler.CompleteSetup)

	// Course content: account freeze and per-course access enforced
	guarded := auth.Group("/")
	guarded.Use(middleware.RequireCourseAccess(checker, freezes, courses))
	guarded.GET("/courses/:id/weeks", accessHandler.GetAvailableWeeks)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"), middleware.SanitizeAndCleanInputMiddleware())
	admin.POST("/access", adminHandler.GrantAccess)
	admin.POST("/access/:id/extend", adminHandler.ExtendAccess)
	admin.POST("/access/:id/change-period", adminHandler.ChangePeriod)
	admin.POST("/access/:id/close", adminHandler.CloseAccess)
	admin.POST("/access/:id/setup-complete", adminHandler.CompleteSetup)
	admin.POST("/access/:id/freezes", adminHandler.AddFreeze)
	admin.DELETE("/access/:id/freezes/:freezeId", adminHandler.CancelFreeze)
	admin.GET("/access/:id/history", adminHandler.GetHistory)
	admin.POST("/freezes", adminHandler.CreateUserFreeze)
	admin.POST("/freezes/:id/cancel", adminHandler.CancelUserFreeze)
	admin.GET("/users/:id/freezes", adminHandler.ListUserFreezes)
}
