package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Tarunp72/SMART-SDLC/internal/connectors"
	"github.com/Tarunp72/SMART-SDLC/internal/domain"
	"github.com/Tarunp72/SMART-SDLC/internal/metrics"
	"github.com/Tarunp72/SMART-SDLC/internal/middleware"
	"github.com/Tarunp72/SMART-SDLC/internal/pipeline"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *handlers) importDocument(c *gin.Context) {
	var req domain.ConnectorImportRequest
	if !bindJSON(c, &req, "connector import") {
		return
	}

	document, ok := h.fetchDocument(c, req.DocumentID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.ConnectorImportResponse{
		Connector: h.deps.Connector.Name(),
		Document:  document,
	})
}

// analyzeImportedRequirements runs requirement analysis on a connector
// document instead of an uploaded file.
func (h *handlers) analyzeImportedRequirements(c *gin.Context) {
	var req domain.RequirementImportRequest
	if !bindJSON(c, &req, "requirements import") {
		return
	}

	document, ok := h.fetchDocument(c, req.DocumentID)
	if !ok {
		return
	}

	response, err := h.deps.Pipeline.AnalyzeRequirements(c.Request.Context(), pipeline.RequirementsInput{
		DocumentText: document.Content,
		Instructions: req.Prompt,
	})
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlers) exportContent(c *gin.Context) {
	var req domain.ConnectorExportRequest
	if !bindJSON(c, &req, "connector export") {
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		writeError(c, http.StatusBadRequest, "missing_document_id", "document_id is required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(c, http.StatusBadRequest, "missing_content", "content is required")
		return
	}
	mode, err := connectors.ParseExportMode(req.Mode)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_export_mode", "mode must be replace or append")
		return
	}
	if !h.requireConnector(c, "export") {
		return
	}

	err = h.observeConnector(c, "export", req.DocumentID, func() error {
		return h.deps.Connector.ExportContent(c.Request.Context(), connectors.ExportRequest{
			DocumentID: req.DocumentID,
			Content:    req.Content,
			Mode:       mode,
		})
	})
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, domain.ConnectorExportResponse{
		Connector: h.deps.Connector.Name(),
		Exported:  true,
	})
}

func (h *handlers) fetchDocument(c *gin.Context, documentID string) (domain.Document, bool) {
	if strings.TrimSpace(documentID) == "" {
		writeError(c, http.StatusBadRequest, "missing_document_id", "document_id is required")
		return domain.Document{}, false
	}
	if !h.requireConnector(c, "import") {
		return domain.Document{}, false
	}

	var document domain.Document
	err := h.observeConnector(c, "import", documentID, func() error {
		var importErr error
		document, importErr = h.deps.Connector.ImportDocument(c.Request.Context(), connectors.ImportRequest{
			DocumentID: strings.TrimSpace(documentID),
		})
		return importErr
	})
	return document, err == nil
}

func (h *handlers) requireConnector(c *gin.Context, operation string) bool {
	if h.deps.Connector.Name() != "none" {
		return true
	}
	metrics.RecordConnectorCall("none", operation, "error", "connector_unavailable", 0)
	writeError(c, http.StatusBadRequest, "connector_unavailable", "no connector is configured")
	return false
}

// observeConnector runs a connector call with logs and metrics, writing the
// mapped error response when it fails.
func (h *handlers) observeConnector(c *gin.Context, operation string, documentID string, call func() error) error {
	started := time.Now()
	name := h.deps.Connector.Name()
	entry := logrus.WithFields(logrus.Fields{
		"component":   "connector",
		"request_id":  middleware.GetRequestID(c),
		"connector":   name,
		"operation":   operation,
		"document_id": strings.TrimSpace(documentID),
	})

	err := call()
	duration := time.Since(started)
	if err != nil {
		status, code, message := connectorOperationError(err, operation)
		metrics.RecordConnectorCall(name, operation, "error", code, duration)
		entry.WithFields(logrus.Fields{
			"status":      "error",
			"error_code":  code,
			"duration_ms": duration.Milliseconds(),
		}).WithError(err).Warn("connector call failed")
		writeError(c, status, code, message)
		return err
	}

	metrics.RecordConnectorCall(name, operation, "success", "none", duration)
	entry.WithFields(logrus.Fields{
		"status":      "success",
		"duration_ms": duration.Milliseconds(),
	}).Info("connector call finished")
	return nil
}
