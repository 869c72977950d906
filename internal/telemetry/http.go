package telemetry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/renderguard/renderguard/internal/infrastructure/logging"
)

// HTTPSink posts fault reports to an external collector. Delivery is
// asynchronous and best-effort: transport failures are logged and dropped,
// never surfaced to the boundary that reported the fault.
type HTTPSink struct {
	endpoint string
	client   *retryablehttp.Client
	logger   *logging.Logger
}

// NewHTTPSink creates a sink posting to the given endpoint.
func NewHTTPSink(endpoint string, logger *logging.Logger) *HTTPSink {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil

	return &HTTPSink{
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

// Report delivers r in the background. Errors are swallowed.
func (s *HTTPSink) Report(r Report) {
	go s.send(r)
}

func (s *HTTPSink) send(r Report) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Warn("telemetry delivery panicked", zap.Any("panic", rec))
		}
	}()

	payload, err := json.Marshal(r)
	if err != nil {
		s.logger.Warn("failed to encode fault report", zap.Error(err))
		return
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		s.logger.Warn("failed to build fault report request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("failed to deliver fault report",
			zap.String("endpoint", s.endpoint),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.logger.Warn("fault report rejected",
			zap.String("endpoint", s.endpoint),
			zap.Int("status", resp.StatusCode))
	}
}
