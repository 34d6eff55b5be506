package user

import (
	"github.com/DOINGGOODPROJECTS/timetracking/internal/middleware"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", middleware.RBACAuthorize(rbacService, "profile", "update"), h.UpdateProfile)
		profile.PUT("/preferences", middleware.RBACAuthorize(rbacService, "profile", "update"), h.UpdatePreferences)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), h.List)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Update)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Delete)
	}
}
