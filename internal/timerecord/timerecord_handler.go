package timerecord

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/i18n"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/apperror"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

// releaseIdempotencyLock frees the in-flight lock set by the idempotency
// middleware once the handler has finished, success or not.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk, ok := c.Get("idempotency_lock_key"); ok {
		if lockKey, ok := lk.(string); ok && lockKey != "" {
			h.rdb.Del(c.Request.Context(), lockKey)
		}
	}
}

// fillIdempotencyCache stores the successful response so retries with the
// same Idempotency-Key replay it instead of re-executing.
func (h *Handler) fillIdempotencyCache(c *gin.Context, res any) {
	if h.rdb == nil {
		return
	}
	if ck, ok := c.Get("idempotency_cache_key"); ok {
		if cacheKey, ok := ck.(string); ok && cacheKey != "" {
			if payload, marshalErr := json.Marshal(res); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err()
			}
		}
	}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// bindClockRequest tolerates an empty body: a clock action without location
// is valid.
func bindClockRequest(c *gin.Context, req *ClockRequest) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return apperror.MapValidationError(err)
	}
	return nil
}

func (h *Handler) CheckIn(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	userID := c.GetString("user_id_validated")
	lang := c.GetString("language")

	var req ClockRequest
	if err := bindClockRequest(c, &req); err != nil {
		writeServiceError(c, err)
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	res := ClockResponse{
		Record:  rec,
		Message: i18n.Translate(lang, "clock.checkedIn"),
	}
	h.fillIdempotencyCache(c, res)
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	userID := c.GetString("user_id_validated")
	lang := c.GetString("language")

	var req ClockRequest
	if err := bindClockRequest(c, &req); err != nil {
		writeServiceError(c, err)
		return
	}

	rec, err := h.service.CheckOut(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	res := ClockResponse{
		Record:  rec,
		Message: i18n.Translate(lang, "clock.checkedOut"),
	}
	h.fillIdempotencyCache(c, res)
	response.Success(c, http.StatusCreated, res, nil)
}

// List returns the acting user's clock history. Admins may read any user's
// history via the user_id query parameter.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	if target := c.Query("user_id"); target != "" && c.GetBool("is_admin") {
		userID = target
	}

	rows, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(rows))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, rows[start:end], &meta)
}
