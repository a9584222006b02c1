package connectors

import (
	"context"
	"errors"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/domain"
)

var ErrNotImplemented = errors.New("connector operation not implemented")
var ErrUnavailable = errors.New("connector unavailable")
var ErrUnauthorized = errors.New("connector unauthorized")
var ErrForbidden = errors.New("connector forbidden")
var ErrDocumentNotFound = errors.New("connector document not found")
var ErrInvalidMode = errors.New("connector export mode invalid")

type ExportMode string

const (
	ExportReplace ExportMode = "replace"
	ExportAppend  ExportMode = "append"
)

// ParseExportMode defaults a blank mode to replace.
func ParseExportMode(raw string) (ExportMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ExportReplace):
		return ExportReplace, nil
	case string(ExportAppend):
		return ExportAppend, nil
	default:
		return "", ErrInvalidMode
	}
}

type ImportRequest struct {
	DocumentID string
}

type ExportRequest struct {
	DocumentID string
	Content    string
	Mode       ExportMode
}

// Connector reads requirement documents from, and writes generated artifacts to,
// an external document store.
type Connector interface {
	Name() string
	ImportDocument(ctx context.Context, req ImportRequest) (domain.Document, error)
	ExportContent(ctx context.Context, req ExportRequest) error
}
