package report

import (
	"encoding/json"
	"net/http"
	"time"

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Generate(c *gin.Context) {
	if h.rdb != nil {
		if lk, ok := c.Get("idempotency_lock_key"); ok {
			if lockKey, ok := lk.(string); ok && lockKey != "" {
				defer h.rdb.Del(c.Request.Context(), lockKey)
			}
		}
	}

	actorID := c.GetString("user_id_validated")

	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Generate(c.Request.Context(), actorID, c.GetBool("is_admin"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// A retried Idempotency-Key must replay this row, not queue a second one.
	if h.rdb != nil {
		if ck, ok := c.Get("idempotency_cache_key"); ok {
			if cacheKey, ok := ck.(string); ok && cacheKey != "" {
				if payload, marshalErr := json.Marshal(res); marshalErr == nil {
					_ = h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err()
				}
			}
		}
	}

	// 202: the row exists but the file is rendered asynchronously
	response.Success(c, http.StatusAccepted, res, nil)
}

func (h *Handler) List(c *gin.Context) {
	actorID := c.GetString("user_id_validated")

	res, err := h.service.List(c.Request.Context(), actorID, c.GetBool("is_admin"), c.Query("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Download(c *gin.Context) {
	actorID := c.GetString("user_id_validated")

	filename, contentType, payload, err := h.service.Download(
		c.Request.Context(), actorID, c.GetBool("is_admin"), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

func (h *Handler) Delete(c *gin.Context) {
	actorID := c.GetString("user_id_validated")

	if err := h.service.Delete(c.Request.Context(), actorID, c.GetBool("is_admin"), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
