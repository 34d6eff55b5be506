package report

import (
	"github.com/DOINGGOODPROJECTS/timetracking/internal/middleware"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		reports.POST("",
			middleware.RBACAuthorize(rbacService, "report", "create"),
			middleware.Idempotency(rdb),
			h.Generate,
		)
		reports.GET("", middleware.RBACAuthorize(rbacService, "report", "read"), h.List)
		reports.GET("/:id/download", middleware.RBACAuthorize(rbacService, "report", "read"), h.Download)
		reports.DELETE("/:id", middleware.RBACAuthorize(rbacService, "report", "delete"), h.Delete)
	}
}
