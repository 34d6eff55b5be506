package timesheet

import (
	"github.com/DOINGGOODPROJECTS/timetracking/internal/middleware"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	sheet := r.Group("/timesheet")
	sheet.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		sheet.GET("", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.Get)
		sheet.GET("/summary", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.Summary)
	}
}
