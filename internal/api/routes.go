package api

import (
	"net/http"

	"github.com/Tarunp72/SMART-SDLC/internal/connectors"
	"github.com/Tarunp72/SMART-SDLC/internal/domain"
	"github.com/Tarunp72/SMART-SDLC/internal/extract"
	"github.com/Tarunp72/SMART-SDLC/internal/llm"
	"github.com/Tarunp72/SMART-SDLC/internal/metrics"
	"github.com/Tarunp72/SMART-SDLC/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// DocumentExtractor turns an uploaded document into plain text.
type DocumentExtractor interface {
	Extract(data []byte) (string, error)
}

type Dependencies struct {
	Pipeline  *pipeline.Pipeline
	Extractor DocumentExtractor
	Connector connectors.Connector

	Backend            llm.Selection
	RequestedConnector string
	ContextWindow      int
	MaxUploadBytes     int64
}

type handlers struct {
	deps Dependencies
}

func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	if deps.Extractor == nil {
		deps.Extractor = extract.NewExtractor()
	}
	if deps.Connector == nil {
		deps.Connector = connectors.NewNoopConnector()
	}
	if deps.RequestedConnector == "" {
		deps.RequestedConnector = "none"
	}
	h := &handlers{deps: deps}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/api/capabilities", h.capabilities)

	router.POST("/api/analyze-requirements", h.analyzeRequirements)
	router.POST("/api/analyze-requirements/import", h.analyzeImportedRequirements)
	router.POST("/api/generate-design", h.generateDesign)
	router.POST("/api/generate-code", h.generateCode)
	router.POST("/api/explain-code", h.explainCode)
	router.POST("/api/generate-tests", h.generateTests)
	router.POST("/api/fix-bug", h.fixBug)
	router.POST("/api/chat", h.chat)

	router.POST("/api/connectors/import", h.importDocument)
	router.POST("/api/connectors/export", h.exportContent)
}

func (h *handlers) capabilities(c *gin.Context) {
	activeConnector := h.deps.Connector.Name()
	connectorEnabled := activeConnector != "none"

	c.JSON(http.StatusOK, domain.CapabilitiesResponse{
		Runtime: domain.RuntimeCapabilities{
			RequestedBackend:   h.deps.Backend.Requested,
			ActiveBackend:      h.deps.Backend.Active,
			BackendFallback:    h.deps.Backend.Fallback,
			RequestedConnector: h.deps.RequestedConnector,
			ActiveConnector:    activeConnector,
			ConnectorFallback:  h.deps.RequestedConnector != activeConnector,
			ContextWindow:      h.deps.ContextWindow,
		},
		Features: domain.FeatureFlags{
			DocumentImport: connectorEnabled,
			DocumentExport: connectorEnabled,
		},
		Tasks:     domain.AllTasks(),
		Languages: domain.SupportedLanguages(),
	})
}
