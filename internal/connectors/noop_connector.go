package connectors

import (
	"context"

	"github.com/Tarunp72/SMART-SDLC/internal/domain"
)

// NoopConnector is active when no document store is configured.
type NoopConnector struct{}

func NewNoopConnector() *NoopConnector {
	return &NoopConnector{}
}

func (n *NoopConnector) Name() string {
	return "none"
}

func (n *NoopConnector) ImportDocument(_ context.Context, _ ImportRequest) (domain.Document, error) {
	return domain.Document{}, ErrNotImplemented
}

func (n *NoopConnector) ExportContent(_ context.Context, _ ExportRequest) error {
	return ErrNotImplemented
}
