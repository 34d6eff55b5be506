package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/events"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/messaging/kafka"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/messaging/kafka/consumer"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/report"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/connection"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/counter"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"

	"go.uber.org/zap"
)

// RunConsumer renders queued reports from the report_requested topic until it
// receives a stop signal.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reportService := report.NewService(
		gormDB,
		report.NewRepository(gormDB),
		user.NewRepository(gormDB),
		timerecord.NewRepository(gormDB),
		counter.NewRepository(gormDB),
		kafka.NewOutboxRepository(gormDB),
		redisClient,
	)

	reader := connection.NewKafkaReader(kafkaBroker, "timetracking-reports", events.ReportRequestedTopic)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeReportRequested(ctx, reader, reportService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
