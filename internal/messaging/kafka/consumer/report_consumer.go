package consumer

import (
	"context"
	"encoding/json"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/events"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/report"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeReportRequested renders queued reports. A failed render is written
// onto the report row and the message is committed; only infrastructure
// errors leave the message uncommitted for redelivery.
func ConsumeReportRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	reportService report.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.report_requested")
	log.Info("report consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("report consumer stopped")
				return
			}
			log.Error("fetch report message failed", zap.Error(err))
			continue
		}

		var event events.ReportRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode report_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reportService.Render(ctx, event); err != nil {
			log.Error("render report failed",
				zap.String("report_id", event.ReportID),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit report message failed", zap.Error(err))
			continue
		}

		log.Info("report event processed",
			zap.String("report_id", event.ReportID),
			zap.String("request_id", event.RequestID),
		)
	}
}
