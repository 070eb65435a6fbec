package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limaJavier/classcomposer/pkg/model"
	"github.com/limaJavier/classcomposer/pkg/service"
)

// ComposePayload carries the catalog snapshot inline with the request
type ComposePayload struct {
	Catalog json.RawMessage `json:"catalog" binding:"required"`
	service.ComposeRequest
}

type ScheduleHandler struct {
	schedules *service.ScheduleService
	metrics   *Metrics
	logger    *zap.Logger
}

func NewScheduleHandler(schedules *service.ScheduleService, metrics *Metrics, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{schedules: schedules, metrics: metrics, logger: logger}
}

// POST /api/v1/schedules
func (h *ScheduleHandler) Compose(c *gin.Context) {
	var payload ComposePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, &APIError{Code: "INVALID_REQUEST", Message: "invalid payload: " + err.Error(), Status: http.StatusBadRequest})
		return
	}

	catalog, err := model.InputFromBytes(payload.Catalog)
	if err != nil {
		h.fail(c, apiErrorFrom(err))
		return
	}

	result, err := h.schedules.Compose(catalog, payload.ComposeRequest)
	if err != nil {
		h.fail(c, apiErrorFrom(err))
		return
	}

	h.metrics.ObserveCompose(result)
	respondJSON(c, http.StatusOK, result)
}

func (h *ScheduleHandler) fail(c *gin.Context, apiError *APIError) {
	h.metrics.ObserveComposeError(apiError.Code)
	h.logger.Debug("compose request rejected",
		zap.String("code", apiError.Code),
		zap.String("message", apiError.Message),
		zap.String("request_id", requestIdValue(c)),
	)
	respondError(c, apiError)
}
