package app

import (
	"os"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/messaging/kafka"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/report"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/connection"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure and registers every module on the
// router. Migration and demo seeding are opt-in via env so production
// deployments can keep schema changes out of startup.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	if os.Getenv("DB_AUTO_MIGRATE") == "true" {
		if err := migrate(gormDB); err != nil {
			return err
		}
		logger.Info("schema migrated")
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(gormDB); err != nil {
			return err
		}
		logger.Info("demo data seeded")
	}

	return registerModules(router, gormDB, redisClient)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&timerecord.TimeRecord{},
		&report.Report{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}

	// user_counters is driven by raw UPSERT SQL, not a gorm model.
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS user_counters (
			user_id uuid NOT NULL,
			counter_type varchar(50) NOT NULL,
			last_value bigint NOT NULL DEFAULT 0,
			updated_at timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, counter_type)
		)
	`).Error
}
