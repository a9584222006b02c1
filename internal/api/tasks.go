package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/domain"
	"github.com/Tarunp72/SMART-SDLC/internal/pipeline"
	"github.com/gin-gonic/gin"
)

func (h *handlers) analyzeRequirements(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	text, err := h.deps.Extractor.Extract(data)
	if err != nil {
		writeTaskError(c, err)
		return
	}

	response, err := h.deps.Pipeline.AnalyzeRequirements(c.Request.Context(), pipeline.RequirementsInput{
		DocumentText: text,
		Instructions: c.PostForm("prompt"),
	})
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// readUpload reads the multipart "file" field, enforcing the upload limit.
func (h *handlers) readUpload(c *gin.Context) ([]byte, bool) {
	limit := h.deps.MaxUploadBytes
	if limit > 0 {
		if c.Request.ContentLength > limit {
			writeError(c, http.StatusRequestEntityTooLarge, "document_too_large", "uploaded document exceeds the size limit")
			return nil, false
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(c, http.StatusRequestEntityTooLarge, "document_too_large", "uploaded document exceeds the size limit")
		case errors.Is(err, http.ErrMissingFile):
			writeError(c, http.StatusBadRequest, "missing_file", "file is required")
		default:
			writeError(c, http.StatusBadRequest, "invalid_payload", "expected a multipart upload with a file field")
		}
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_payload", "uploaded file could not be read")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_payload", "uploaded file could not be read")
		return nil, false
	}
	return data, true
}

func (h *handlers) generateDesign(c *gin.Context) {
	var req domain.DesignRequest
	if !bindJSON(c, &req, "design") {
		return
	}

	response, err := h.deps.Pipeline.GenerateDesign(c.Request.Context(), pipeline.DesignInput{
		Prompt:     req.Prompt,
		DesignType: req.DesignType,
	})
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlers) generateCode(c *gin.Context) {
	var req domain.CodeGenerationRequest
	if !bindJSON(c, &req, "code generation") {
		return
	}
	language, ok := parseLanguageField(c, req.Language)
	if !ok {
		return
	}

	response, err := h.deps.Pipeline.GenerateCode(c.Request.Context(), pipeline.CodeGenerationInput{
		Prompt:   req.Prompt,
		Language: language,
	})
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlers) explainCode(c *gin.Context) {
	in, ok := bindCodeInput(c)
	if !ok {
		return
	}
	response, err := h.deps.Pipeline.ExplainCode(c.Request.Context(), in)
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlers) generateTests(c *gin.Context) {
	in, ok := bindCodeInput(c)
	if !ok {
		return
	}
	response, err := h.deps.Pipeline.GenerateTests(c.Request.Context(), in)
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlers) fixBug(c *gin.Context) {
	in, ok := bindCodeInput(c)
	if !ok {
		return
	}
	response, err := h.deps.Pipeline.FixBug(c.Request.Context(), in)
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlers) chat(c *gin.Context) {
	var req domain.ChatRequest
	if !bindJSON(c, &req, "chat") {
		return
	}

	response, err := h.deps.Pipeline.Chat(c.Request.Context(), pipeline.ChatInput{
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func bindJSON(c *gin.Context, dst any, what string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_payload", "invalid "+what+" payload")
		return false
	}
	return true
}

func bindCodeInput(c *gin.Context) (pipeline.CodeInput, bool) {
	var req domain.CodeRequest
	if !bindJSON(c, &req, "code") {
		return pipeline.CodeInput{}, false
	}
	language, ok := parseLanguageField(c, req.Language)
	if !ok {
		return pipeline.CodeInput{}, false
	}
	return pipeline.CodeInput{Code: req.Code, Language: language}, true
}

// parseLanguageField leaves a blank language for the pipeline to reject as
// empty input; anything else must name a supported language.
func parseLanguageField(c *gin.Context, raw string) (domain.Language, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", true
	}
	language, err := domain.ParseLanguage(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, "unsupported_language", err.Error())
		return "", false
	}
	return language, true
}
