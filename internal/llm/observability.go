package llm

import (
	"context"
	"time"

	"github.com/Tarunp72/SMART-SDLC/internal/metrics"
	"github.com/Tarunp72/SMART-SDLC/internal/middleware"
	"github.com/sirupsen/logrus"
)

type instrumentedBackend struct {
	inner   Backend
	timeout time.Duration
}

// Instrument wraps a backend with the per-call timeout, logging and metrics.
// A zero timeout leaves the caller's deadline untouched.
func Instrument(backend Backend, timeout time.Duration) Backend {
	if already, ok := backend.(*instrumentedBackend); ok {
		return already
	}
	return &instrumentedBackend{inner: backend, timeout: timeout}
}

func (b *instrumentedBackend) Name() string {
	return b.inner.Name()
}

func (b *instrumentedBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	started := time.Now()
	entry := logrus.WithFields(logrus.Fields{
		"component":  "backend",
		"request_id": middleware.GetRequestIDFromContext(ctx),
		"backend":    b.inner.Name(),
		"task":       req.Task,
	})
	entry.WithField("prompt_chars", len(req.Prompt)).Debug("completion started")

	text, err := b.inner.Complete(ctx, req)

	status := "success"
	category := errorCategory(err)
	if err != nil {
		status = "error"
	}

	duration := time.Since(started)
	metrics.RecordBackendCall(b.inner.Name(), req.Task, status, category, duration)

	entry = entry.WithFields(logrus.Fields{
		"status":         status,
		"error_category": category,
		"duration_ms":    duration.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("completion failed")
	} else {
		entry.WithField("completion_chars", len(text)).Info("completion finished")
	}

	return text, err
}
