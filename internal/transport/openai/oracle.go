// Package openai implements the oracle provider against the OpenAI API
// (or any compatible endpoint).
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/ProjectLunareth/Codex/internal/domain"
	"github.com/ProjectLunareth/Codex/internal/metrics"
)

const systemPrompt = "You are the oracle of a codex of mystical and esoteric " +
	"documents. Answer briefly and concretely, grounding your answer on the " +
	"provided passage when one is given."

// Oracle is a generative provider using the OpenAI-compatible API.
type Oracle struct {
	client          *openai.Client
	completionModel string
	imageModel      string
	speechModel     string
	voice           string
	logger          *zap.Logger
}

// Config holds the oracle provider settings.
type Config struct {
	APIKey          string
	BaseURL         string
	CompletionModel string
	ImageModel      string
	SpeechModel     string
	Voice           string
	Logger          *zap.Logger
}

// NewOracle creates an OpenAI-compatible oracle provider.
func NewOracle(cfg *Config) *Oracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Oracle{
		client:          openai.NewClientWithConfig(clientCfg),
		completionModel: cfg.CompletionModel,
		imageModel:      cfg.ImageModel,
		speechModel:     cfg.SpeechModel,
		voice:           cfg.Voice,
		logger:          cfg.Logger,
	}
}

// Complete answers a query, optionally grounded on a corpus passage.
func (o *Oracle) Complete(ctx context.Context, query, grounding string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if grounding != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: "Passage:\n" + grounding,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.completionModel,
		Messages: messages,
	})
	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues("consult", "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.OracleRequestsTotal.WithLabelValues("consult", "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrOracleProviderError)
	}

	metrics.OracleRequestsTotal.WithLabelValues("consult", "success").Inc()
	o.logger.Debug("oracle completion",
		zap.String("model", o.completionModel),
		zap.Duration("duration", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage renders the prompt and returns the image URL.
func (o *Oracle) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Model:          o.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues("sigil", "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Data) == 0 {
		metrics.OracleRequestsTotal.WithLabelValues("sigil", "error").Inc()
		return "", fmt.Errorf("empty image response: %w", domain.ErrOracleProviderError)
	}

	metrics.OracleRequestsTotal.WithLabelValues("sigil", "success").Inc()
	return resp.Data[0].URL, nil
}

// Synthesize renders the text as MP3 audio.
func (o *Oracle) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.speechModel),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues("echo", "error").Inc()
		return nil, parseAPIError(err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues("echo", "error").Inc()
		return nil, fmt.Errorf("read speech response: %w", domain.ErrOracleProviderError)
	}

	metrics.OracleRequestsTotal.WithLabelValues("echo", "success").Inc()
	return audio, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (o *Oracle) HealthCheck(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrOracleProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrOracleProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("oracle API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("oracle API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("oracle API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("oracle request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
