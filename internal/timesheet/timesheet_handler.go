package timesheet

import (
	"net/http"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/apperror"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	actorID := c.GetString("user_id_validated")

	entries, err := h.service.GetTimesheet(
		c.Request.Context(),
		actorID,
		c.GetBool("is_admin"),
		c.Query("user_id"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	res, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}
