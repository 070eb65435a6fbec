package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/limaJavier/classcomposer/pkg/model"
	"github.com/limaJavier/classcomposer/pkg/service"
)

type Envelope struct {
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code      string  `json:"code"`
	Message   string  `json:"message"`
	Status    int     `json:"status"`
	SectionId *uint64 `json:"sectionId,omitempty"`
	Field     string  `json:"field,omitempty"`
}

// Maps composer and request errors onto HTTP statuses
func apiErrorFrom(err error) *APIError {
	apiError := &APIError{Code: "INTERNAL_ERROR", Message: err.Error(), Status: http.StatusInternalServerError}

	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		apiError.Code, apiError.Status = "INVALID_REQUEST", http.StatusBadRequest
	case errors.Is(err, model.ErrMalformedInput):
		apiError.Code, apiError.Status = "MALFORMED_INPUT", http.StatusBadRequest
	case errors.Is(err, model.ErrUnparsableTime):
		apiError.Code, apiError.Status = "UNPARSABLE_TIME", http.StatusBadRequest
	case errors.Is(err, model.ErrUnknownReference):
		apiError.Code, apiError.Status = "UNKNOWN_REFERENCE", http.StatusUnprocessableEntity
	}

	var parseError *model.ParseError
	if errors.As(err, &parseError) {
		apiError.Field = parseError.Field
		if parseError.HasSection() {
			sectionId := parseError.SectionId
			apiError.SectionId = &sectionId
		}
	}

	return apiError
}

func respondJSON(c *gin.Context, status int, data any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

func respondError(c *gin.Context, apiError *APIError) {
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(apiError.Status, Envelope{Error: apiError})
}
