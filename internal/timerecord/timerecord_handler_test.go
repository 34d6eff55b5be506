package timerecord_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/middleware"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	timerecorderrors "github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeClockService struct {
	checkInFn  func(ctx context.Context, userID string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error)
	checkOutFn func(ctx context.Context, userID string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error)
	listFn     func(ctx context.Context, userID string) ([]timerecord.TimeRecordResponse, error)
}

func (f *fakeClockService) CheckIn(ctx context.Context, userID string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
	return f.checkInFn(ctx, userID, req)
}

func (f *fakeClockService) CheckOut(ctx context.Context, userID string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
	return f.checkOutFn(ctx, userID, req)
}

func (f *fakeClockService) ListForUser(ctx context.Context, userID string) ([]timerecord.TimeRecordResponse, error) {
	return f.listFn(ctx, userID)
}

func setupRouter(svc timerecord.Service, userID string, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", userID)
		c.Set("is_admin", isAdmin)
		c.Set("language", "fr")
	})

	h := timerecord.NewHandler(svc)
	r.POST("/time-records/check-in", h.CheckIn)
	r.POST("/time-records/check-out", h.CheckOut)
	r.GET("/time-records", h.List)
	return r
}

func TestHandler_CheckIn(t *testing.T) {
	userID := uuid.NewString()

	t.Run("created with localized message", func(t *testing.T) {
		svc := &fakeClockService{
			checkInFn: func(ctx context.Context, uid string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
				assert.Equal(t, userID, uid)
				return timerecord.TimeRecordResponse{
					ID:     uuid.NewString(),
					Type:   timerecord.TypeCheckIn,
					Status: timerecord.StatusOnTime,
				}, nil
			},
		}
		r := setupRouter(svc, userID, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/time-records/check-in", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Ok   bool `json:"ok"`
			Data struct {
				Message string `json:"message"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, "Pointage d'arrivée enregistré", body.Data.Message)
	})

	t.Run("duplicate arrival maps to 409", func(t *testing.T) {
		svc := &fakeClockService{
			checkInFn: func(ctx context.Context, uid string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
				return timerecord.TimeRecordResponse{}, timerecorderrors.ErrAlreadyCheckedIn
			},
		}
		r := setupRouter(svc, userID, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/time-records/check-in", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("location payload is forwarded", func(t *testing.T) {
		var got *timerecord.Location
		svc := &fakeClockService{
			checkInFn: func(ctx context.Context, uid string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
				got = req.Location
				return timerecord.TimeRecordResponse{}, nil
			},
		}
		r := setupRouter(svc, userID, false)

		body := `{"location":{"latitude":48.8566,"longitude":2.3522}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/time-records/check-in", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotNil(t, got)
		assert.Equal(t, 48.8566, *got.Latitude)
	})
}

func setupIdempotentRouter(svc timerecord.Service, rdb *redis.Client, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", userID)
		c.Set("language", "fr")
	})

	h := timerecord.NewHandlerWithRedis(svc, rdb)
	r.POST("/time-records/check-in", middleware.Idempotency(rdb), h.CheckIn)
	return r
}

func TestHandler_CheckIn_Idempotency(t *testing.T) {
	userID := uuid.NewString()
	cacheKey := fmt.Sprintf("idemp:/time-records/check-in:%s:key-1", userID)
	lockKey := cacheKey + ":lock"

	t.Run("retry with the same key replays the first response", func(t *testing.T) {
		calls := 0
		svc := &fakeClockService{
			checkInFn: func(ctx context.Context, uid string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
				calls++
				return timerecord.TimeRecordResponse{
					ID:     uuid.NewString(),
					Type:   timerecord.TypeCheckIn,
					Status: timerecord.StatusOnTime,
				}, nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		r := setupIdempotentRouter(svc, rdb, userID)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.Regexp().ExpectSet(cacheKey, `.*Pointage.*`, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/time-records/check-in", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)

		redisMock.ExpectGet(cacheKey).SetVal(`{"message":"Pointage d'arrivée enregistré"}`)

		w2 := httptest.NewRecorder()
		req2 := httptest.NewRequest(http.MethodPost, "/time-records/check-in", nil)
		req2.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w2, req2)

		assert.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, 1, calls, "replay must not re-execute the handler")
		assert.Contains(t, w2.Body.String(), "Pointage d'arrivée enregistré")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected with PROCESSING", func(t *testing.T) {
		calls := 0
		svc := &fakeClockService{
			checkInFn: func(ctx context.Context, uid string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
				calls++
				return timerecord.TimeRecordResponse{}, nil
			},
		}

		rdb, redisMock := redismock.NewClientMock()
		r := setupIdempotentRouter(svc, rdb, userID)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/time-records/check-in", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestHandler_CheckOut(t *testing.T) {
	userID := uuid.NewString()

	t.Run("missing arrival maps to 422", func(t *testing.T) {
		svc := &fakeClockService{
			checkOutFn: func(ctx context.Context, uid string, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
				return timerecord.TimeRecordResponse{}, timerecorderrors.ErrNotCheckedIn
			},
		}
		r := setupRouter(svc, userID, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/time-records/check-out", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}

func TestHandler_List(t *testing.T) {
	userID := uuid.NewString()
	otherID := uuid.NewString()

	rows := []timerecord.TimeRecordResponse{
		{ID: uuid.NewString(), Date: "2026-03-03"},
		{ID: uuid.NewString(), Date: "2026-03-02"},
	}

	t.Run("non-admin cannot switch target user", func(t *testing.T) {
		var askedFor string
		svc := &fakeClockService{
			listFn: func(ctx context.Context, uid string) ([]timerecord.TimeRecordResponse, error) {
				askedFor = uid
				return rows, nil
			},
		}
		r := setupRouter(svc, userID, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/time-records?user_id="+otherID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, askedFor)
	})

	t.Run("admin reads another user's records", func(t *testing.T) {
		var askedFor string
		svc := &fakeClockService{
			listFn: func(ctx context.Context, uid string) ([]timerecord.TimeRecordResponse, error) {
				askedFor = uid
				return rows, nil
			},
		}
		r := setupRouter(svc, userID, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/time-records?user_id="+otherID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, otherID, askedFor)
	})

	t.Run("pagination meta reflects the slice", func(t *testing.T) {
		svc := &fakeClockService{
			listFn: func(ctx context.Context, uid string) ([]timerecord.TimeRecordResponse, error) {
				return rows, nil
			},
		}
		r := setupRouter(svc, userID, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/time-records?page=1&page_size=1", nil)
		r.ServeHTTP(w, req)

		var body struct {
			Data []timerecord.TimeRecordResponse `json:"data"`
			Meta struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"totalPages"`
			} `json:"meta"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data, 1)
		assert.EqualValues(t, 2, body.Meta.Total)
		assert.Equal(t, 2, body.Meta.TotalPages)
	})
}
