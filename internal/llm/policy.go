package llm

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when a backend answers without any choice to read.
var ErrEmptyCompletion = errors.New("backend returned no completion")

const (
	categoryNone        = "none"
	categoryTimeout     = "timeout"
	categoryCanceled    = "canceled"
	categoryRateLimited = "rate_limited"
	categoryUpstream5xx = "upstream_5xx"
	categoryUpstream4xx = "upstream_4xx"
	categoryEmpty       = "empty_output"
	categoryTransport   = "transport"
	categoryUnknown     = "unknown"
)

// errorCategory buckets a backend failure for logs and metrics. Failures are
// never retried; the category only describes what happened.
func errorCategory(err error) string {
	if err == nil {
		return categoryNone
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return categoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return categoryCanceled
	}
	if errors.Is(err, ErrEmptyCompletion) {
		return categoryEmpty
	}

	if status := upstreamStatus(err); status != 0 {
		switch {
		case status == http.StatusTooManyRequests:
			return categoryRateLimited
		case status >= http.StatusInternalServerError:
			return categoryUpstream5xx
		case status >= http.StatusBadRequest:
			return categoryUpstream4xx
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return categoryTimeout
		}
		return categoryTransport
	}

	return categoryUnknown
}

func upstreamStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var requestErr *openai.RequestError
	if errors.As(err, &requestErr) {
		return requestErr.HTTPStatusCode
	}
	return 0
}
