package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/events"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/i18n"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/messaging/kafka"
	reporterrors "github.com/DOINGGOODPROJECTS/timetracking/internal/report/errors"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/contextutil"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/counter"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timesheet"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"
	usererrors "github.com/DOINGGOODPROJECTS/timetracking/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PayloadKeyPrefix caches rendered files; they expire after a day and the
// client is told to regenerate.
const (
	PayloadKeyPrefix = "reports:payload:"
	payloadTTL       = 24 * time.Hour
)

func PayloadKey(reportID string) string {
	return PayloadKeyPrefix + reportID
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, actorID string, actorIsAdmin bool, req GenerateReportRequest) (ReportResponse, error)
	List(ctx context.Context, actorID string, actorIsAdmin bool, targetID string) ([]ReportResponse, error)
	Download(ctx context.Context, actorID string, actorIsAdmin bool, id string) (filename, contentType string, payload []byte, err error)
	Delete(ctx context.Context, actorID string, actorIsAdmin bool, id string) error
	Render(ctx context.Context, event events.ReportRequestedEvent) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	users   user.Repository
	records timerecord.Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	records timerecord.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		users:   users,
		records: records,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		now:     time.Now,
		logger:  l,
	}
}

// Generate accepts the request, writes a pending report row and its outbox
// event in one transaction, and returns immediately. Rendering happens in
// the consumer.
func (s *service) Generate(ctx context.Context, actorID string, actorIsAdmin bool, req GenerateReportRequest) (ReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	requestedBy, err := uuid.Parse(actorID)
	if err != nil {
		return ReportResponse{}, usererrors.ErrInvalidUserID
	}

	targetID := actorID
	if req.UserID != "" && req.UserID != actorID {
		if !actorIsAdmin {
			return ReportResponse{}, reporterrors.ErrNotOwner
		}
		targetID = req.UserID
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, usererrors.ErrUserNotFound
		}
		return ReportResponse{}, err
	}

	start, end, err := s.resolveRange(req)
	if err != nil {
		return ReportResponse{}, err
	}

	seq, err := s.counter.GetNextValue(ctx, targetID, "report_number")
	if err != nil {
		return ReportResponse{}, err
	}
	name := fmt.Sprintf("%s #%d", i18n.Translate(target.Language, "reports."+req.Period), seq)

	rep := &Report{
		ID:          uuid.New(),
		UserID:      target.ID,
		RequestedBy: requestedBy,
		Name:        name,
		Period:      req.Period,
		Format:      req.Format,
		StartDate:   start,
		EndDate:     end,
		Status:      StatusPending,
	}

	event := events.ReportRequestedEvent{
		EventType:   "report_requested",
		RequestID:   rid,
		ReportID:    rep.ID.String(),
		UserID:      targetID,
		RequestedBy: actorID,
		Period:      req.Period,
		Format:      req.Format,
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		OccurredAt:  s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return ReportResponse{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, rep); err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "report",
			AggregateID:   rep.ID.String(),
			EventType:     event.EventType,
			Topic:         events.ReportRequestedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if err != nil {
		s.logger.Error("generate report persist failed",
			zap.String("request_id", rid),
			zap.String("user_id", targetID),
			zap.Error(err),
		)
		return ReportResponse{}, err
	}

	s.logger.Info("report queued",
		zap.String("request_id", rid),
		zap.String("report_id", rep.ID.String()),
		zap.String("period", req.Period),
	)
	return mapToResponse(*rep), nil
}

func (s *service) List(ctx context.Context, actorID string, actorIsAdmin bool, targetID string) ([]ReportResponse, error) {
	if targetID == "" {
		targetID = actorID
	}
	if targetID != actorID && !actorIsAdmin {
		return []ReportResponse{}, nil
	}

	reps, err := s.repo.ListByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	res := make([]ReportResponse, len(reps))
	for i, r := range reps {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Download(ctx context.Context, actorID string, actorIsAdmin bool, id string) (string, string, []byte, error) {
	rep, err := s.getOwned(ctx, actorID, actorIsAdmin, id)
	if err != nil {
		return "", "", nil, err
	}
	if rep.Status != StatusReady {
		return "", "", nil, reporterrors.ErrReportNotReady
	}

	payload, err := s.rdb.Get(ctx, PayloadKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", nil, reporterrors.ErrPayloadExpired
		}
		return "", "", nil, err
	}

	contentType := "application/pdf"
	if rep.Format == FormatCSV {
		contentType = "text/csv"
	}
	filename := fmt.Sprintf("%s.%s", rep.Name, rep.Format)

	return filename, contentType, payload, nil
}

func (s *service) Delete(ctx context.Context, actorID string, actorIsAdmin bool, id string) error {
	rep, err := s.getOwned(ctx, actorID, actorIsAdmin, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, rep.ID.String()); err != nil {
		return err
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, PayloadKey(id))
	}
	return nil
}

// Render is called by the consumer. It builds the timesheet for the report's
// range, renders the requested format, caches the payload and marks the row
// ready. Failures are written back onto the row so the client can see them.
func (s *service) Render(ctx context.Context, event events.ReportRequestedEvent) error {
	rep, err := s.repo.FindByID(ctx, event.ReportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// deleted between request and render; nothing to do
			return nil
		}
		return err
	}

	payload, size, renderErr := s.render(ctx, rep)
	if renderErr != nil {
		msg := renderErr.Error()
		if len(msg) > 500 {
			msg = msg[:500]
		}
		rep.Status = StatusFailed
		rep.ErrorMessage = &msg
		if err := s.repo.Update(ctx, rep); err != nil {
			return err
		}
		s.logger.Error("render report failed",
			zap.String("report_id", rep.ID.String()),
			zap.Error(renderErr),
		)
		return nil
	}

	if err := s.rdb.Set(ctx, PayloadKey(rep.ID.String()), payload, payloadTTL).Err(); err != nil {
		return err
	}

	rep.Status = StatusReady
	rep.FileSize = &size
	rep.ErrorMessage = nil
	if err := s.repo.Update(ctx, rep); err != nil {
		return err
	}

	s.logger.Info("report rendered",
		zap.String("report_id", rep.ID.String()),
		zap.String("format", rep.Format),
		zap.Int64("size", size),
	)
	return nil
}

func (s *service) render(ctx context.Context, rep *Report) ([]byte, int64, error) {
	u, err := s.users.FindByID(ctx, rep.UserID.String())
	if err != nil {
		return nil, 0, err
	}

	records, err := s.records.ListByUserBetween(ctx, rep.UserID.String(), rep.StartDate, rep.EndDate)
	if err != nil {
		return nil, 0, err
	}

	entries := timesheet.BuildTimesheet(records, u.Name)

	var payload []byte
	switch rep.Format {
	case FormatCSV:
		payload, err = buildReportCSV(entries)
	default:
		payload, err = buildReportPDF(reportLines(rep, u.Name, entries))
	}
	if err != nil {
		return nil, 0, err
	}

	return payload, int64(len(payload)), nil
}

func reportLines(rep *Report, employeeName string, entries []timesheet.Entry) []string {
	lines := []string{
		rep.Name,
		fmt.Sprintf("%s  (%s - %s)", employeeName, rep.StartDate.Format("2006-01-02"), rep.EndDate.Format("2006-01-02")),
		"",
	}

	deref := func(s *string, fallback string) string {
		if s == nil {
			return fallback
		}
		return *s
	}

	for _, e := range entries {
		lines = append(lines, fmt.Sprintf(
			"%s  %s - %s  %s  [%s]",
			e.Date,
			deref(e.CheckIn, "--:--:--"),
			deref(e.CheckOut, "--:--:--"),
			deref(e.TotalHours, "-"),
			e.Status,
		))
	}

	if len(entries) == 0 {
		lines = append(lines, "No records in this period")
	}
	return lines
}

func (s *service) getOwned(ctx context.Context, actorID string, actorIsAdmin bool, id string) (*Report, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, reporterrors.ErrReportNotFound
	}

	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reporterrors.ErrReportNotFound
		}
		return nil, err
	}

	if rep.UserID.String() != actorID && rep.RequestedBy.String() != actorID && !actorIsAdmin {
		return nil, reporterrors.ErrNotOwner
	}
	return rep, nil
}

// resolveRange turns a period into inclusive date bounds. Relative periods
// end today; custom requires both bounds.
func (s *service) resolveRange(req GenerateReportRequest) (time.Time, time.Time, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch req.Period {
	case PeriodDaily:
		return today, today, nil
	case PeriodWeekly:
		offset := int(today.Weekday()) - int(time.Monday)
		if today.Weekday() == time.Sunday {
			offset = 6
		}
		return today.AddDate(0, 0, -offset), today, nil
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), today, nil
	case PeriodCustom:
		if req.StartDate == "" || req.EndDate == "" {
			return time.Time{}, time.Time{}, reporterrors.ErrInvalidDateRange
		}
		start, err := time.ParseInLocation("2006-01-02", req.StartDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, reporterrors.ErrInvalidDateRange
		}
		end, err := time.ParseInLocation("2006-01-02", req.EndDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, reporterrors.ErrInvalidDateRange
		}
		if start.After(end) {
			return time.Time{}, time.Time{}, reporterrors.ErrInvalidDateRange
		}
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, reporterrors.ErrInvalidPeriod
	}
}

func mapToResponse(r Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID.String(),
		UserID:       r.UserID.String(),
		Name:         r.Name,
		Period:       r.Period,
		Format:       r.Format,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Status:       r.Status,
		FileSize:     r.FileSize,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}
