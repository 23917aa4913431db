// Package llm adapts langchaingo chat models to domain.LLMTransport.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"career-quiz/internal/config"
	"career-quiz/internal/domain"
	"career-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const defaultTimeout = 60 * time.Second

// Transport sends single-prompt chat completions through a langchaingo model.
type Transport struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
}

var _ domain.LLMTransport = (*Transport)(nil)

// NewTransport wraps an existing langchaingo model.
func NewTransport(model llms.Model, temperature float64, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Transport{model: model, temperature: temperature, timeout: timeout}
}

// NewTransportFromConfig builds the model selected by cfg.Provider.
func NewTransportFromConfig(cfg config.LLMConfig) (*Transport, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var (
		model llms.Model
		err   error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model), ollama.WithHTTPClient(httpClient)}
		if cfg.ServerURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
		}
		model, err = ollama.New(opts...)
	case "openai":
		if cfg.APIKey == "" {
			return nil, errors.New("openai API key cannot be empty")
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model), openai.WithHTTPClient(httpClient)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err = openai.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s LLM client: %w", cfg.Provider, err)
	}

	return NewTransport(model, cfg.Temperature, cfg.Timeout), nil
}

// SendPrompt returns the model's raw text reply. A timeout is reported as a transport failure.
func (t *Transport) SendPrompt(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, t.model, prompt, llms.WithTemperature(t.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Get().Error("LLM request timed out", zap.Duration("timeout", t.timeout))
			return "", fmt.Errorf("LLM request timed out after %s: %w", t.timeout, context.DeadlineExceeded)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}
