package api

import (
	"errors"
	"net/http"

	"github.com/Tarunp72/SMART-SDLC/internal/connectors"
	"github.com/Tarunp72/SMART-SDLC/internal/domain"
	"github.com/Tarunp72/SMART-SDLC/internal/extract"
	"github.com/Tarunp72/SMART-SDLC/internal/middleware"
	"github.com/Tarunp72/SMART-SDLC/internal/pipeline"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func writeError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, domain.APIErrorResponse{
		Error: domain.APIError{
			Code:      code,
			Message:   message,
			RequestID: middleware.GetRequestID(c),
		},
	})
}

func writeTaskError(c *gin.Context, err error) {
	var (
		emptyErr      *pipeline.EmptyInputError
		unreadableErr *extract.UnreadableDocumentError
		backendErr    *pipeline.BackendError
	)
	switch {
	case errors.As(err, &emptyErr):
		writeError(c, http.StatusBadRequest, "empty_input", emptyErr.Error())
	case errors.As(err, &unreadableErr):
		writeError(c, http.StatusBadRequest, "unreadable_document", "uploaded file is not a readable PDF document")
	case errors.As(err, &backendErr):
		writeError(c, http.StatusBadGateway, "backend_error", "model backend "+backendErr.Backend+" failed to complete the request")
	default:
		logrus.WithFields(logrus.Fields{
			"component":  "api",
			"request_id": middleware.GetRequestID(c),
		}).WithError(err).Error("unexpected task failure")
		writeError(c, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func connectorOperationError(err error, operation string) (status int, code string, message string) {
	switch {
	case errors.Is(err, connectors.ErrUnauthorized):
		return http.StatusBadGateway, "connector_upstream_unauthorized", "connector upstream credentials are invalid"
	case errors.Is(err, connectors.ErrForbidden):
		return http.StatusForbidden, "connector_forbidden", "connector access is forbidden for this document"
	case errors.Is(err, connectors.ErrDocumentNotFound):
		return http.StatusNotFound, "connector_document_not_found", "connector document was not found"
	case errors.Is(err, connectors.ErrUnavailable):
		return http.StatusServiceUnavailable, "connector_service_unavailable", "connector service is unavailable"
	case errors.Is(err, connectors.ErrNotImplemented):
		return http.StatusNotImplemented, "connector_not_implemented", "connector " + operation + " is not implemented"
	default:
		return http.StatusInternalServerError, "internal_error", err.Error()
	}
}
