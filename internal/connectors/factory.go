package connectors

import (
	"github.com/Tarunp72/SMART-SDLC/internal/config"
	"github.com/Tarunp72/SMART-SDLC/internal/logging"
)

// NewConnectorFromConfig returns the configured connector, or the no-op
// connector when none is configured or it cannot be built.
func NewConnectorFromConfig(cfg *config.Config) Connector {
	switch cfg.Connector.Provider {
	case "google_docs":
		connector, err := NewGoogleDocsConnector(cfg.GoogleDocs)
		if err == nil {
			return connector
		}
		logging.Component("connector").
			WithError(err).
			WithField("connector", "google_docs").
			Warn("connector unavailable, document import and export disabled")
	}
	return NewNoopConnector()
}
