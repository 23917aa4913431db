// Package mlclient talks to the external career classification service.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"career-quiz/internal/domain"
	"career-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	predictPath    = "/predict"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512

	// A reply carries at most five predictions; anything near this size is not one.
	maxResponseBody = 1 << 20
)

// Client implements domain.MLClassifier over HTTP. It does not retry and does
// not re-sort the predictions it receives.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a classifier client for baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ domain.MLClassifier = (*Client)(nil)

type predictRequest struct {
	Features []float64 `json:"features"`
}

// predictResponse distinguishes an absent or null prediction list from an empty one.
type predictResponse struct {
	PredictedMajor string                 `json:"predicted_major"`
	TopPredictions *[]domain.MLPrediction `json:"top_5_predictions"`
}

// Predict posts the feature vector and decodes the ranked predictions.
func (c *Client) Predict(ctx context.Context, features []float64) (*domain.MLResultResponse, error) {
	if c.baseURL == "" {
		return nil, errors.New("ml service base url is not configured")
	}

	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return nil, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call ml service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("read ml response: %w", err)
	}
	if len(respBody) > maxResponseBody {
		return nil, fmt.Errorf("ml response exceeds %d bytes", maxResponseBody)
	}

	logger.Get().Debug("ML service responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ml service returned status %d: %s", resp.StatusCode, snippet(respBody))
	}

	var decoded predictResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode ml response: %w", err)
	}
	if decoded.TopPredictions == nil {
		return nil, fmt.Errorf("decode ml response: top_5_predictions is missing: %s", snippet(respBody))
	}

	result := &domain.MLResultResponse{
		PredictedMajor: decoded.PredictedMajor,
		TopPredictions: *decoded.TopPredictions,
	}
	if result.TopPredictions == nil {
		result.TopPredictions = []domain.MLPrediction{}
	}
	return result, nil
}

func snippet(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
