package timerecord

import (
	"github.com/DOINGGOODPROJECTS/timetracking/internal/middleware"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	records := r.Group("/time-records")
	records.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		records.GET("", middleware.RBACAuthorize(rbacService, "time-record", "read"), h.List)
		records.POST("/check-in",
			middleware.RBACAuthorize(rbacService, "time-record", "create"),
			middleware.Idempotency(rdb),
			h.CheckIn,
		)
		records.POST("/check-out",
			middleware.RBACAuthorize(rbacService, "time-record", "create"),
			middleware.Idempotency(rdb),
			h.CheckOut,
		)
	}
}
