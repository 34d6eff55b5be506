package app

import (
	"github.com/DOINGGOODPROJECTS/timetracking/internal/auth"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/messaging/kafka"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/middleware"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/rbac"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/report"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/counter"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timesheet"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	clockStateRepo := user.NewClockStateRepository(gormDB)
	recordRepo := timerecord.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, recordRepo)
	clockService := timerecord.NewService(gormDB, recordRepo, clockStateRepo, timerecord.ClassifierFromEnv())
	userService := user.NewService(gormDB, userRepo, recordRepo, rdb)
	timesheetService := timesheet.NewService(userRepo, recordRepo)
	reportService := report.NewService(gormDB, reportRepo, userRepo, recordRepo, counterRepo, outboxRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	clockHandler := timerecord.NewHandlerWithRedis(clockService, rdb)
	userHandler := user.NewHandler(userService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	reportHandler := report.NewHandlerWithRedis(reportService, rdb)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		timerecord.RegisterRoutes(api, clockHandler, rbacService, rdb)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService, rdb)
	}

	return nil
}
